package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/turftime/internal/auth/entity"
	"github.com/shandysiswandi/turftime/internal/pkg/goerror"
)

type VerifyOTPInput struct {
	Email string `validate:"required,email"`
	OTP   string `validate:"required,max=16"`
}

// VerifyOTP confirms a signup code and marks the account verified.
func (s *Usecase) VerifyOTP(ctx context.Context, in VerifyOTPInput) error {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
	defer span.End()

	in.Email = strings.TrimSpace(in.Email)
	in.OTP = strings.TrimSpace(in.OTP)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "verify otp for unknown email", "email", in.Email)
		return goerror.NewBusinessReason(entity.ErrAccountNotFound, "User not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.challenge.Validate(acc, entity.PurposeSignup, in.OTP); err != nil {
		slog.WarnContext(ctx, "signup otp rejected", "account_id", acc.ID, "reason", err.Error())
		return challengeError(err, "No OTP found. Please request a new one.")
	}

	if err := s.repoDB.MarkVerified(ctx, acc.ID); err != nil {
		slog.ErrorContext(ctx, "failed to repo mark account verified", "account_id", acc.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
