package entity

import "github.com/shandysiswandi/turftime/internal/pkg/goerror"

// Reasons reported to API clients. They are errors so the challenge engine and
// the usecases can return and match them directly.
const (
	ErrAccountNotFound    goerror.Reason = "ACCOUNT_NOT_FOUND"
	ErrAlreadyRegistered  goerror.Reason = "ALREADY_REGISTERED"
	ErrAlreadyVerified    goerror.Reason = "ALREADY_VERIFIED"
	ErrInvalidCredentials goerror.Reason = "INVALID_CREDENTIALS"
	ErrNotVerified        goerror.Reason = "NOT_VERIFIED"
	ErrNoActiveChallenge  goerror.Reason = "NO_ACTIVE_CHALLENGE"
	ErrInvalidCode        goerror.Reason = "INVALID_CODE"
	ErrExpired            goerror.Reason = "EXPIRED"
	ErrInvalidOrExpired   goerror.Reason = "INVALID_OR_EXPIRED"
	ErrUnauthenticated    goerror.Reason = "UNAUTHENTICATED"
)
