package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/turftime/internal/auth/entity"
	"github.com/shandysiswandi/turftime/internal/pkg/goerror"
)

type RegisterInput struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,password"`
	Role     string `validate:"omitempty,oneof=user admin turfOwner"`
	Phone    string `validate:"omitempty,phone"`
}

type RegisterOutput struct {
	// Created is false when an unverified account was refreshed instead.
	Created bool
}

// Register creates an unverified account and emails a signup code. Registering
// again with an unverified email refreshes name, phone and password and sends
// a new code; the role chosen first is kept.
func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if acc != nil && acc.IsVerified {
		slog.WarnContext(ctx, "register attempt on verified account", "account_id", acc.ID)
		return nil, errAlreadyRegistered()
	}

	passwordHash, err := s.password.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	if acc != nil {
		acc.Name = in.Name
		acc.Phone = in.Phone
		acc.PasswordHash = string(passwordHash)

		err := s.issueAndNotify(ctx, acc, entity.PurposeSignup, func(ctx context.Context) error {
			return s.repoDB.UpdateRegistration(ctx, *acc)
		})
		if err != nil {
			return nil, err
		}

		return &RegisterOutput{Created: false}, nil
	}

	acc = &entity.Account{
		ID:           s.uid.Generate(),
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		Role:         entity.RoleOrDefault(in.Role),
		PasswordHash: string(passwordHash),
	}

	var conflict bool
	err = s.issueAndNotify(ctx, acc, entity.PurposeSignup, func(ctx context.Context) error {
		err := s.repoDB.CreateAccount(ctx, *acc)
		if errors.Is(err, goerror.ErrConflict) {
			conflict = true
		}
		return err
	})
	if conflict {
		slog.WarnContext(ctx, "register lost race on email", "email", in.Email)
		return nil, errAlreadyRegistered()
	}
	if err != nil {
		return nil, err
	}

	return &RegisterOutput{Created: true}, nil
}

func errAlreadyRegistered() error {
	return goerror.NewBusinessReason(entity.ErrAlreadyRegistered, "This email is already registered.", goerror.CodeConflict)
}
