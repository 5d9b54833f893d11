package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/turftime/internal/auth/entity"
	"github.com/shandysiswandi/turftime/internal/pkg/goerror"
)

const msgNoLoginOTP = "No login OTP found. Please login again."

type VerifyOTPLoginInput struct {
	Email string `validate:"required,email"`
	OTP   string `validate:"required,max=16"`
}

type VerifyOTPLoginOutput struct {
	Token   string
	Profile entity.Profile
}

// VerifyOTPLogin completes a login: it consumes the login code and returns a
// session token. A code can be used once.
func (s *Usecase) VerifyOTPLogin(ctx context.Context, in VerifyOTPLoginInput) (*VerifyOTPLoginOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyOTPLogin")
	defer span.End()

	in.Email = strings.TrimSpace(in.Email)
	in.OTP = strings.TrimSpace(in.OTP)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "verify login otp for unknown email", "email", in.Email)
		return nil, goerror.NewBusinessReason(entity.ErrNoActiveChallenge, msgNoLoginOTP, goerror.CodeBadRequest)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	// the signup code shares the slot; it must not open a session
	if !acc.IsVerified {
		slog.WarnContext(ctx, "verify login otp on unverified account", "account_id", acc.ID)
		return nil, goerror.NewBusinessReason(entity.ErrNotVerified, "Please verify your email first", goerror.CodeForbidden)
	}

	if err := s.challenge.Validate(acc, entity.PurposeLogin, in.OTP); err != nil {
		slog.WarnContext(ctx, "login otp rejected", "account_id", acc.ID, "reason", err.Error())
		return nil, challengeError(err, msgNoLoginOTP)
	}

	if err := s.repoDB.ClearChallenge(ctx, acc.ID, entity.PurposeLogin); err != nil {
		slog.ErrorContext(ctx, "failed to repo clear login otp", "account_id", acc.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	token, err := s.jwt.Generate(acc.ID, acc.Role.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate session token", "account_id", acc.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &VerifyOTPLoginOutput{Token: token, Profile: acc.Profile()}, nil
}
