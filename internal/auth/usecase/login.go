package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/turftime/internal/auth/entity"
	"github.com/shandysiswandi/turftime/internal/pkg/goerror"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,max=72"`
}

// Login checks the password and, for verified accounts, emails a login code.
// No session is issued here; see VerifyOTPLogin.
//
// The password is checked before the verified flag, so an unverified account
// is only revealed to someone who knows its password.
func (s *Usecase) Login(ctx context.Context, in LoginInput) error {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Email = strings.TrimSpace(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "login for unknown email", "email", in.Email)
		return errInvalidCredentials()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if !s.password.Verify(acc.PasswordHash, in.Password) {
		slog.WarnContext(ctx, "login with wrong password", "account_id", acc.ID)
		return errInvalidCredentials()
	}

	if !acc.IsVerified {
		return goerror.NewBusinessReason(entity.ErrNotVerified, "Please verify your email first", goerror.CodeForbidden)
	}

	return s.issueAndNotify(ctx, acc, entity.PurposeLogin, s.setChallenge(acc, entity.PurposeLogin))
}

func errInvalidCredentials() error {
	return goerror.NewBusinessReason(entity.ErrInvalidCredentials, "Invalid credentials", goerror.CodeUnauthorized)
}
