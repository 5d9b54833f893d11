package db

import "github.com/shandysiswandi/turftime/internal/auth/entity"

const accountColumns = `id, name, email, phone, role, password_hash, is_verified,
	otp_digest, otp_expires_at, reset_otp_digest, reset_otp_expires_at, created_at, updated_at`

const (
	queryGetAccountByEmail = `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	queryGetAccountByID = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	queryCreateAccount = `INSERT INTO accounts (id, name, email, phone, role, password_hash, is_verified,
	otp_digest, otp_expires_at, reset_otp_digest, reset_otp_expires_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)`

	queryUpdateRegistration = `UPDATE accounts
SET name = $2, phone = $3, password_hash = $4, otp_digest = $5, otp_expires_at = $6, updated_at = $7
WHERE id = $1`

	querySetOTP = `UPDATE accounts SET otp_digest = $2, otp_expires_at = $3, updated_at = $4 WHERE id = $1`

	querySetResetOTP = `UPDATE accounts SET reset_otp_digest = $2, reset_otp_expires_at = $3, updated_at = $4 WHERE id = $1`

	queryClearOTP = `UPDATE accounts SET otp_digest = NULL, otp_expires_at = NULL, updated_at = $2 WHERE id = $1`

	queryClearResetOTP = `UPDATE accounts SET reset_otp_digest = NULL, reset_otp_expires_at = NULL, updated_at = $2 WHERE id = $1`

	queryMarkVerified = `UPDATE accounts
SET is_verified = TRUE, otp_digest = NULL, otp_expires_at = NULL, updated_at = $2
WHERE id = $1`

	queryResetPassword = `UPDATE accounts
SET password_hash = $2, reset_otp_digest = NULL, reset_otp_expires_at = NULL, updated_at = $3
WHERE id = $1`
)

func querySetChallenge(p entity.Purpose) string {
	if p.Slot() == entity.SlotReset {
		return querySetResetOTP
	}
	return querySetOTP
}

func queryClearChallenge(p entity.Purpose) string {
	if p.Slot() == entity.SlotReset {
		return queryClearResetOTP
	}
	return queryClearOTP
}
