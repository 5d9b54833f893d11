package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/turftime/internal/auth/entity"
	"github.com/shandysiswandi/turftime/internal/pkg/goerror"
)

type ResendOTPInput struct {
	Email string `validate:"required,email"`
}

// ResendOTP issues a new signup code for an account that is not verified yet.
func (s *Usecase) ResendOTP(ctx context.Context, in ResendOTPInput) error {
	ctx, span := s.startSpan(ctx, "ResendOTP")
	defer span.End()

	in.Email = strings.TrimSpace(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "resend otp for unknown email", "email", in.Email)
		return goerror.NewBusinessReason(entity.ErrAccountNotFound, "User not found.", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if acc.IsVerified {
		return goerror.NewBusinessReason(entity.ErrAlreadyVerified, "This email is already verified.", goerror.CodeConflict)
	}

	return s.issueAndNotify(ctx, acc, entity.PurposeSignup, s.setChallenge(acc, entity.PurposeSignup))
}
