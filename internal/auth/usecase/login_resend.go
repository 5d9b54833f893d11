package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/turftime/internal/auth/entity"
	"github.com/shandysiswandi/turftime/internal/pkg/goerror"
)

type ResendOTPLoginInput struct {
	Email string `validate:"required,email"`
}

// ResendOTPLogin replaces the login code of a verified account. It stores the
// code through the same digest as every other flow, so the resent code is
// accepted by VerifyOTPLogin.
func (s *Usecase) ResendOTPLogin(ctx context.Context, in ResendOTPLoginInput) error {
	ctx, span := s.startSpan(ctx, "ResendOTPLogin")
	defer span.End()

	in.Email = strings.TrimSpace(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}
	if acc == nil || !acc.IsVerified {
		slog.WarnContext(ctx, "resend login otp for unknown or unverified email", "email", in.Email)
		return goerror.NewBusinessReason(entity.ErrAccountNotFound, "User not found or not verified", goerror.CodeNotFound)
	}

	return s.issueAndNotify(ctx, acc, entity.PurposeLogin, s.setChallenge(acc, entity.PurposeLogin))
}
