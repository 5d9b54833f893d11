package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	data   map[string]string
	getErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value any, _ time.Duration) *redis.BoolCmd {
	if _, ok := f.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.data[key] = value.(string)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	f.data[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestStateTracker_Acquire(t *testing.T) {
	ctx := context.Background()
	fr := newFakeRedis()
	s := New(fr)

	state, err := s.Acquire(ctx, "k1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, StateNone, state)

	state, err = s.Acquire(ctx, "k1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, StateInProgress, state)

	require.NoError(t, s.MarkCompleted(ctx, "k1", time.Hour))
	state, err = s.Acquire(ctx, "k1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, state)

	fr.data["idempotency:bad"] = "garbage"
	state, err = s.Acquire(ctx, "bad", time.Minute)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, StateError, state)
}

func TestStateTracker_Exec(t *testing.T) {
	ctx := context.Background()

	t.Run("runs once", func(t *testing.T) {
		s := New(newFakeRedis())
		calls := 0
		fn := func(context.Context) error { calls++; return nil }

		require.NoError(t, s.Exec(ctx, "register:a@x.com", fn))
		assert.ErrorIs(t, s.Exec(ctx, "register:a@x.com", fn), ErrAlreadyCompleted)
		assert.Equal(t, 1, calls)
	})

	t.Run("failure releases the key", func(t *testing.T) {
		fr := newFakeRedis()
		s := New(fr)
		boom := errors.New("boom")

		err := s.Exec(ctx, "k", func(context.Context) error { return boom }, WithLockDuration(time.Second), WithStateTTL(time.Second))
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, fr.data)

		assert.NoError(t, s.Exec(ctx, "k", func(context.Context) error { return nil }))
	})

	t.Run("in progress", func(t *testing.T) {
		fr := newFakeRedis()
		fr.data["idempotency:k"] = StateInProgress.String()
		s := New(fr)

		assert.ErrorIs(t, s.Exec(ctx, "k", func(context.Context) error { return nil }), ErrAlreadyInProgress)
	})

	t.Run("redis error", func(t *testing.T) {
		fr := newFakeRedis()
		fr.data["idempotency:k"] = StateInProgress.String()
		fr.getErr = errors.New("conn reset")
		s := New(fr)

		assert.EqualError(t, s.Exec(ctx, "k", func(context.Context) error { return nil }), "conn reset")
	})
}
