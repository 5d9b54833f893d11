package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNATS_RequiresURL(t *testing.T) {
	_, err := NewNATS(NATSConfig{})
	assert.ErrorIs(t, err, ErrNATSURLRequired)
}

func TestNewConsumeOptions(t *testing.T) {
	co := newConsumeOptions(nil, WithConcurrency(0), WithAutoAck(true), WithQueueGroup("notification"))
	assert.Equal(t, 1, co.concurrency)
	assert.True(t, co.autoAck)
	assert.Equal(t, "notification", co.queueGroup)

	assert.Equal(t, 10, newConsumeOptions(WithConcurrency(10)).concurrency)
}

func TestToNATSMsg(t *testing.T) {
	m := toNATSMsg("auth_otp_issued", OutgoingMessage{
		Body: []byte(`{"email":"a@x.com"}`),
		Headers: []Header{
			{Key: "cID", Value: []byte("cid-1")},
			{Key: "", Value: []byte("dropped")},
		},
	})

	assert.Equal(t, "auth_otp_issued", m.Subject)
	assert.Equal(t, "cid-1", m.Header.Get("cID"))
	assert.Len(t, m.Header, 1)

	wrapped := newNATSMessage(m, receivedAt())
	assert.Equal(t, "cid-1", wrapped.Header("cID"))
	assert.Equal(t, []Header{{Key: "cID", Value: []byte("cid-1")}}, wrapped.Headers())
	assert.JSONEq(t, `{"email":"a@x.com"}`, string(wrapped.Body()))
}

func TestDispatch(t *testing.T) {
	newMsg := func() *natsMessage { return newNATSMessage(nats.NewMsg("s"), receivedAt()) }

	t.Run("auto ack on success", func(t *testing.T) {
		msg := newMsg()
		dispatch(context.Background(), msg, func(context.Context, Message) error { return nil }, true)
		assert.True(t, msg.hasResponded())
	})

	t.Run("auto nack on error and panic", func(t *testing.T) {
		msg := newMsg()
		dispatch(context.Background(), msg, func(context.Context, Message) error { panic("boom") }, true)
		assert.True(t, msg.hasResponded())

		msg = newMsg()
		dispatch(context.Background(), msg, func(context.Context, Message) error { return errors.New("x") }, true)
		assert.True(t, msg.hasResponded())
	})

	t.Run("manual ack leaves message alone", func(t *testing.T) {
		msg := newMsg()
		dispatch(context.Background(), msg, func(context.Context, Message) error { return nil }, false)
		assert.False(t, msg.hasResponded())
	})
}

func TestNATSMessage_AckOnce(t *testing.T) {
	msg := newNATSMessage(nats.NewMsg("s"), receivedAt())

	require.NoError(t, msg.Ack(context.Background()))
	require.NoError(t, msg.Nack(context.Background()))
	assert.True(t, msg.hasResponded())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, newNATSMessage(nats.NewMsg("s"), receivedAt()).Ack(ctx), context.Canceled)
}

func receivedAt() time.Time { return time.Unix(1_700_000_000, 0) }
