package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/turftime/internal/auth/usecase"
	"github.com/shandysiswandi/turftime/internal/pkg/instrument"
	"github.com/shandysiswandi/turftime/internal/pkg/messaging"
	"github.com/shandysiswandi/turftime/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

// Messaging hands issued codes to the notification module over the broker.
type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) SendOTP(ctx context.Context, msg usecase.OTPNotification) error {
	ctx, span := m.ins.Tracer("auth.outbound.mq").Start(ctx, "SendOTP")
	defer span.End()

	body, err := json.Marshal(event.OTPIssuedMessage{
		AccountID:  msg.AccountID,
		Email:      msg.Email,
		Name:       msg.Name,
		Code:       msg.Code,
		Purpose:    msg.Purpose.String(),
		ExpiresAt:  msg.ExpiresAt,
		TTLMinutes: int(msg.TTL.Minutes()),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.OTPIssuedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
