package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/turftime/internal/auth/entity"
	"github.com/shandysiswandi/turftime/internal/pkg/goerror"
)

type ForgotPasswordInput struct {
	Email string `validate:"required,email"`
}

// ForgotPassword emails a reset code. It uses its own slot, so a pending
// signup or login code is not affected.
func (s *Usecase) ForgotPassword(ctx context.Context, in ForgotPasswordInput) error {
	ctx, span := s.startSpan(ctx, "ForgotPassword")
	defer span.End()

	in.Email = strings.TrimSpace(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "forgot password for unknown email", "email", in.Email)
		return goerror.NewBusinessReason(entity.ErrAccountNotFound, "User not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	return s.issueAndNotify(ctx, acc, entity.PurposeReset, s.setChallenge(acc, entity.PurposeReset))
}
