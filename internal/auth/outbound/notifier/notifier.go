// Package notifier delivers issued codes to the notification module in
// process, without a broker.
package notifier

import (
	"context"

	"github.com/shandysiswandi/turftime/internal/auth/usecase"
	"github.com/shandysiswandi/turftime/internal/pkg/instrument"
	"github.com/shandysiswandi/turftime/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

type otpSender interface {
	SendOTP(ctx context.Context, msg event.OTPIssuedMessage) error
}

type Direct struct {
	sender otpSender
	ins    instrument.Instrumentation
}

func NewDirect(sender otpSender, ins instrument.Instrumentation) *Direct {
	return &Direct{sender: sender, ins: ins}
}

func (d *Direct) SendOTP(ctx context.Context, msg usecase.OTPNotification) error {
	ctx, span := d.ins.Tracer("auth.outbound.notifier").Start(ctx, "SendOTP")
	defer span.End()

	if err := d.sender.SendOTP(ctx, event.OTPIssuedMessage{
		AccountID:  msg.AccountID,
		Email:      msg.Email,
		Name:       msg.Name,
		Code:       msg.Code,
		Purpose:    msg.Purpose.String(),
		ExpiresAt:  msg.ExpiresAt,
		TTLMinutes: int(msg.TTL.Minutes()),
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
