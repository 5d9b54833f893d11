package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/turftime/internal/notification/entity"
	"github.com/shandysiswandi/turftime/internal/pkg/goerror"
	"github.com/shandysiswandi/turftime/internal/pkg/mail"
)

const defaultTTLMinutes = 5

type SendOTPInput struct {
	AccountID  string
	Email      string `validate:"required,email"`
	Name       string
	Code       string `validate:"required"`
	Purpose    string `validate:"required,oneof=signup login reset"`
	TTLMinutes int    `validate:"gte=0"`
}

// SendOTP emails a one-time code. Failures are logged and returned; nothing is
// retried.
func (s *Usecase) SendOTP(ctx context.Context, in SendOTPInput) error {
	ctx, span := s.startSpan(ctx, "SendOTP")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "account_id", in.AccountID, "error", err)
		return goerror.NewInvalidInput(err)
	}

	key, _ := entity.TriggerKeyFromPurpose(in.Purpose)
	tpl := s.templates[key]

	ttl := in.TTLMinutes
	if ttl <= 0 {
		ttl = defaultTTLMinutes
	}

	body, err := s.renderTemplate(key.String(), tpl.Body, map[string]any{
		"code":        in.Code,
		"name":        in.Name,
		"ttl_minutes": ttl,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to render email body", "account_id", in.AccountID, "trigger_key", key.String(), "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMail.Send(ctx, mail.Message{
		To:       []string{in.Email},
		Subject:  tpl.Subject,
		HTMLBody: body,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send otp email", "account_id", in.AccountID, "trigger_key", key.String(), "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "otp email sent", "account_id", in.AccountID, "trigger_key", key.String())
	return nil
}
