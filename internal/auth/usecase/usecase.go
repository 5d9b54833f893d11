package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/turftime/internal/auth/entity"
	"github.com/shandysiswandi/turftime/internal/pkg/goerror"
	"github.com/shandysiswandi/turftime/internal/pkg/hash"
	"github.com/shandysiswandi/turftime/internal/pkg/instrument"
	"github.com/shandysiswandi/turftime/internal/pkg/jwt"
	"github.com/shandysiswandi/turftime/internal/pkg/uid"
	"github.com/shandysiswandi/turftime/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// OTPNotification asks the notifier to deliver a freshly issued code.
type OTPNotification struct {
	AccountID string
	Email     string
	Name      string
	Code      string
	Purpose   entity.Purpose
	ExpiresAt time.Time
	TTL       time.Duration
}

type repoNotifier interface {
	SendOTP(ctx context.Context, msg OTPNotification) error
}

type repoDB interface {
	GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetAccountByID(ctx context.Context, id string) (*entity.Account, error)

	// CreateAccount inserts acc; a taken email yields goerror.ErrConflict.
	CreateAccount(ctx context.Context, acc entity.Account) error
	// UpdateRegistration rewrites name, phone, password hash and the OTP slot.
	UpdateRegistration(ctx context.Context, acc entity.Account) error

	SetChallenge(ctx context.Context, id string, p entity.Purpose, ch entity.Challenge) error
	ClearChallenge(ctx context.Context, id string, p entity.Purpose) error

	// MarkVerified sets the verified flag and clears the OTP slot in one write.
	MarkVerified(ctx context.Context, id string) error
	// ResetPassword stores the new hash and clears the reset slot in one write.
	ResetPassword(ctx context.Context, id, passwordHash string) error
}

type challenger interface {
	Issue(acc *entity.Account, p entity.Purpose) (string, error)
	Validate(acc *entity.Account, p entity.Purpose, code string) error
	TTL() time.Duration
}

type Usecase struct {
	repoDB       repoDB
	repoNotifier repoNotifier
	challenge    challenger
	validator    validator.Validator
	password     hash.Hash
	uid          uid.StringID
	jwt          jwt.JWT
	ins          instrument.Instrumentation
}

type Dependency struct {
	RepoDB       repoDB
	RepoNotifier repoNotifier
	Challenge    challenger
	Validator    validator.Validator
	Password     hash.Hash
	UID          uid.StringID
	JWT          jwt.JWT
	Instrument   instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:       dep.RepoDB,
		repoNotifier: dep.RepoNotifier,
		challenge:    dep.Challenge,
		validator:    dep.Validator,
		password:     dep.Password,
		uid:          dep.UID,
		jwt:          dep.JWT,
		ins:          dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

// issueAndNotify issues a code for p on acc, persists it through persist and
// hands the plaintext to the notifier. A failed delivery is logged only: the
// client can ask for a resend.
func (s *Usecase) issueAndNotify(ctx context.Context, acc *entity.Account, p entity.Purpose, persist func(ctx context.Context) error) error {
	code, err := s.challenge.Issue(acc, p)
	if err != nil {
		slog.ErrorContext(ctx, "failed to issue otp", "account_id", acc.ID, "purpose", p.String(), "error", err)
		return goerror.NewServer(err)
	}

	if err := persist(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to repo persist otp", "account_id", acc.ID, "purpose", p.String(), "error", err)
		return goerror.NewServer(err)
	}

	ch := acc.Challenge(p)
	if err := s.repoNotifier.SendOTP(ctx, OTPNotification{
		AccountID: acc.ID,
		Email:     acc.Email,
		Name:      acc.Name,
		Code:      code,
		Purpose:   p,
		ExpiresAt: ch.ExpiresAt,
		TTL:       s.challenge.TTL(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to deliver otp", "account_id", acc.ID, "purpose", p.String(), "error", err)
	}

	return nil
}

func (s *Usecase) setChallenge(acc *entity.Account, p entity.Purpose) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return s.repoDB.SetChallenge(ctx, acc.ID, p, *acc.Challenge(p))
	}
}

// challengeError turns an engine failure into the client facing error.
// noActiveMsg differs per flow.
func challengeError(err error, noActiveMsg string) error {
	switch {
	case errors.Is(err, entity.ErrNoActiveChallenge):
		return goerror.NewBusinessReason(entity.ErrNoActiveChallenge, noActiveMsg, goerror.CodeBadRequest)
	case errors.Is(err, entity.ErrInvalidCode):
		return goerror.NewBusinessReason(entity.ErrInvalidCode, "Invalid OTP", goerror.CodeBadRequest)
	case errors.Is(err, entity.ErrExpired):
		return goerror.NewBusinessReason(entity.ErrExpired, "OTP expired", goerror.CodeBadRequest)
	default:
		return goerror.NewServer(err)
	}
}
