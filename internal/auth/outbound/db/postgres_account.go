package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/turftime/internal/auth/entity"
)

func (s *Postgres) GetAccountByEmail(ctx context.Context, email string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByEmail")
	defer func() { endSpan(span, err) }()

	acc, err := scanAccount(s.conn.QueryRow(ctx, queryGetAccountByEmail, email))
	if err != nil {
		return nil, s.mapError(err)
	}

	return acc, nil
}

func (s *Postgres) GetAccountByID(ctx context.Context, id string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByID")
	defer func() { endSpan(span, err) }()

	acc, err := scanAccount(s.conn.QueryRow(ctx, queryGetAccountByID, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return acc, nil
}

func (s *Postgres) CreateAccount(ctx context.Context, acc entity.Account) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAccount")
	defer func() { endSpan(span, err) }()

	otpDigest, otpExpiresAt := challengeColumns(acc.OTP)
	resetDigest, resetExpiresAt := challengeColumns(acc.ResetOTP)

	_, err = s.conn.Exec(ctx, queryCreateAccount,
		acc.ID,
		acc.Name,
		acc.Email,
		acc.Phone,
		acc.Role.String(),
		acc.PasswordHash,
		acc.IsVerified,
		otpDigest,
		otpExpiresAt,
		resetDigest,
		resetExpiresAt,
		s.clock.Now().UTC(),
	)

	return s.mapError(err)
}

func (s *Postgres) UpdateRegistration(ctx context.Context, acc entity.Account) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateRegistration")
	defer func() { endSpan(span, err) }()

	otpDigest, otpExpiresAt := challengeColumns(acc.OTP)

	return s.exec(ctx, queryUpdateRegistration,
		acc.ID,
		acc.Name,
		acc.Phone,
		acc.PasswordHash,
		otpDigest,
		otpExpiresAt,
		s.clock.Now().UTC(),
	)
}

func (s *Postgres) SetChallenge(ctx context.Context, id string, p entity.Purpose, ch entity.Challenge) (err error) {
	ctx, span := s.startSpan(ctx, "SetChallenge")
	defer func() { endSpan(span, err) }()

	return s.exec(ctx, querySetChallenge(p), id, ch.Digest, ch.ExpiresAt.UTC(), s.clock.Now().UTC())
}

func (s *Postgres) ClearChallenge(ctx context.Context, id string, p entity.Purpose) (err error) {
	ctx, span := s.startSpan(ctx, "ClearChallenge")
	defer func() { endSpan(span, err) }()

	return s.exec(ctx, queryClearChallenge(p), id, s.clock.Now().UTC())
}

func (s *Postgres) MarkVerified(ctx context.Context, id string) (err error) {
	ctx, span := s.startSpan(ctx, "MarkVerified")
	defer func() { endSpan(span, err) }()

	return s.exec(ctx, queryMarkVerified, id, s.clock.Now().UTC())
}

func (s *Postgres) ResetPassword(ctx context.Context, id, passwordHash string) (err error) {
	ctx, span := s.startSpan(ctx, "ResetPassword")
	defer func() { endSpan(span, err) }()

	return s.exec(ctx, queryResetPassword, id, passwordHash, s.clock.Now().UTC())
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var (
		acc            entity.Account
		role           string
		otpDigest      *string
		otpExpiresAt   *time.Time
		resetDigest    *string
		resetExpiresAt *time.Time
	)

	err := row.Scan(
		&acc.ID,
		&acc.Name,
		&acc.Email,
		&acc.Phone,
		&role,
		&acc.PasswordHash,
		&acc.IsVerified,
		&otpDigest,
		&otpExpiresAt,
		&resetDigest,
		&resetExpiresAt,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	acc.Role = entity.RoleOrDefault(role)
	acc.OTP = toChallenge(otpDigest, otpExpiresAt)
	acc.ResetOTP = toChallenge(resetDigest, resetExpiresAt)

	return &acc, nil
}

// challengeColumns maps a slot to its nullable columns.
func challengeColumns(ch *entity.Challenge) (*string, *time.Time) {
	if ch == nil {
		return nil, nil
	}
	digest := ch.Digest
	expiresAt := ch.ExpiresAt.UTC()
	return &digest, &expiresAt
}

// toChallenge keeps half-written slots as they are; the engine reports
// them as no active challenge.
func toChallenge(digest *string, expiresAt *time.Time) *entity.Challenge {
	if digest == nil && expiresAt == nil {
		return nil
	}

	ch := &entity.Challenge{}
	if digest != nil {
		ch.Digest = *digest
	}
	if expiresAt != nil {
		ch.ExpiresAt = *expiresAt
	}
	return ch
}
