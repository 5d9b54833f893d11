package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/turftime/internal/auth/entity"
	"github.com/shandysiswandi/turftime/internal/pkg/goerror"
	"github.com/shandysiswandi/turftime/internal/pkg/jwt"
)

// Profile returns the account behind the session token in ctx.
func (s *Usecase) Profile(ctx context.Context) (*entity.Profile, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil || clm.UserID == "" {
		return nil, errUnauthenticated()
	}

	acc, err := s.repoDB.GetAccountByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "session token for missing account", "account_id", clm.UserID)
		return nil, errUnauthenticated()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by id", "account_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	p := acc.Profile()
	return &p, nil
}

func errUnauthenticated() error {
	return goerror.NewBusinessReason(entity.ErrUnauthenticated, "Authentication required", goerror.CodeUnauthorized)
}
