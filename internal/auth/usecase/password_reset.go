package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/turftime/internal/auth/entity"
	"github.com/shandysiswandi/turftime/internal/pkg/goerror"
)

type ResetPasswordInput struct {
	Email       string `validate:"required,email"`
	OTP         string `validate:"required,max=16"`
	NewPassword string `validate:"required,password"`
}

// ResetPassword sets a new password when the reset code matches. Missing,
// wrong and expired codes are reported the same way.
func (s *Usecase) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	ctx, span := s.startSpan(ctx, "ResetPassword")
	defer span.End()

	in.Email = strings.TrimSpace(in.Email)
	in.OTP = strings.TrimSpace(in.OTP)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "reset password for unknown email", "email", in.Email)
		return goerror.NewBusinessReason(entity.ErrAccountNotFound, "User not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.challenge.Validate(acc, entity.PurposeReset, in.OTP); err != nil {
		slog.WarnContext(ctx, "reset otp rejected", "account_id", acc.ID, "reason", err.Error())
		return goerror.NewBusinessReason(entity.ErrInvalidOrExpired, "Invalid or expired OTP", goerror.CodeBadRequest)
	}

	passwordHash, err := s.password.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.ResetPassword(ctx, acc.ID, string(passwordHash)); err != nil {
		slog.ErrorContext(ctx, "failed to repo reset password", "account_id", acc.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
