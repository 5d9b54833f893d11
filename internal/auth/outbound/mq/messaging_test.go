package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/turftime/internal/auth/entity"
	"github.com/shandysiswandi/turftime/internal/auth/usecase"
	"github.com/shandysiswandi/turftime/internal/pkg/instrument"
	"github.com/shandysiswandi/turftime/internal/pkg/messaging"
	"github.com/shandysiswandi/turftime/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	subject string
	msg     messaging.OutgoingMessage
	err     error
}

func (c *capturePublisher) Publish(_ context.Context, subject string, msg messaging.OutgoingMessage) (messaging.PublishResult, error) {
	c.subject, c.msg = subject, msg
	return messaging.PublishResult{Subject: subject}, c.err
}

func TestMessaging_SendOTP(t *testing.T) {
	expires := time.Date(2026, 1, 2, 10, 5, 0, 0, time.UTC)
	pub := &capturePublisher{}
	m := NewMessaging(pub, instrument.NewNoop())

	ctx := instrument.SetCorrelationID(context.Background(), "cid-1")
	err := m.SendOTP(ctx, usecase.OTPNotification{
		AccountID: "id-1",
		Email:     "a@x.io",
		Name:      "A",
		Code:      "123456",
		Purpose:   entity.PurposeReset,
		ExpiresAt: expires,
		TTL:       5 * time.Minute,
	})
	require.NoError(t, err)

	assert.Equal(t, event.OTPIssuedDestination, pub.subject)
	assert.Equal(t, []messaging.Header{{Key: "cID", Value: []byte("cid-1")}}, pub.msg.Headers)

	var got event.OTPIssuedMessage
	require.NoError(t, json.Unmarshal(pub.msg.Body, &got))
	assert.Equal(t, event.OTPIssuedMessage{
		AccountID:  "id-1",
		Email:      "a@x.io",
		Name:       "A",
		Code:       "123456",
		Purpose:    "reset",
		ExpiresAt:  expires,
		TTLMinutes: 5,
	}, got)
}

func TestMessaging_SendOTP_PublishError(t *testing.T) {
	pub := &capturePublisher{err: errors.New("nats: connection closed")}
	m := NewMessaging(pub, instrument.NewNoop())

	err := m.SendOTP(context.Background(), usecase.OTPNotification{Purpose: entity.PurposeSignup})
	assert.EqualError(t, err, "nats: connection closed")
}
