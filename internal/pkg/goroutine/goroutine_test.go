package goroutine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestManager_CollectsErrors(t *testing.T) {
	g := NewManager(4)
	boom := errors.New("consumer stopped")

	var ran atomic.Int32
	g.Go(context.Background(), func(context.Context) error {
		ran.Add(1)
		return nil
	})
	g.Go(context.Background(), func(context.Context) error {
		ran.Add(1)
		return boom
	})

	err := g.Wait()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(2), ran.Load())
}

func TestManager_RecoversPanic(t *testing.T) {
	g := NewManager(1)

	g.Go(context.Background(), func(context.Context) error {
		panic("handler exploded")
	})

	assert.NoError(t, g.Wait())
}

func TestManager_SkipsAfterWait(t *testing.T) {
	g := NewManager(1)
	assert.NoError(t, g.Wait())

	var ran atomic.Bool
	g.Go(context.Background(), func(context.Context) error {
		ran.Store(true)
		return nil
	})

	assert.False(t, ran.Load())
}

func TestManager_CanceledContext(t *testing.T) {
	g := NewManager(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Bool
	g.Go(ctx, func(context.Context) error {
		ran.Store(true)
		return nil
	})

	assert.NoError(t, g.Wait())
	assert.False(t, ran.Load())
}

func TestManager_Nil(t *testing.T) {
	var g *Manager
	g.Go(context.Background(), func(context.Context) error { return nil })
	assert.NoError(t, g.Wait())
}
