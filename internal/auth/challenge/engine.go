// Package challenge issues and checks the email one-time codes used by
// signup verification, the login second step and password reset.
package challenge

import (
	"time"

	"github.com/shandysiswandi/turftime/internal/auth/entity"
	"github.com/shandysiswandi/turftime/internal/pkg/clock"
	"github.com/shandysiswandi/turftime/internal/pkg/hash"
	"github.com/shandysiswandi/turftime/internal/pkg/otp"
)

// DefaultTTL is how long an issued code stays valid when no TTL is configured.
const DefaultTTL = 5 * time.Minute

// Engine owns code generation, digesting and expiry. It never persists
// anything: callers write the mutated account in the same update that carries
// their other changes.
type Engine struct {
	codes  otp.Generator
	digest hash.Hash
	clock  clock.Clocker
	ttl    time.Duration
}

// NewEngine builds an Engine. A non-positive ttl falls back to DefaultTTL.
func NewEngine(codes otp.Generator, digest hash.Hash, clk clock.Clocker, ttl time.Duration) *Engine {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Engine{codes: codes, digest: digest, clock: clk, ttl: ttl}
}

// TTL returns the validity window of issued codes.
func (e *Engine) TTL() time.Duration {
	return e.ttl
}

// Issue draws a new code, stores its digest and expiry in the slot of p on
// acc (replacing whatever was there) and returns the plaintext code.
func (e *Engine) Issue(acc *entity.Account, p entity.Purpose) (string, error) {
	code, err := e.codes.Generate()
	if err != nil {
		return "", err
	}

	digest, err := e.digest.Hash(code)
	if err != nil {
		return "", err
	}

	acc.SetChallenge(p, &entity.Challenge{
		Digest:    string(digest),
		ExpiresAt: e.clock.Now().Add(e.ttl),
	})

	return code, nil
}

// Validate checks code against the slot of p. Checks run in a fixed order:
// no challenge, then digest mismatch, then expiry. A wrong code is therefore
// reported as invalid even after expiry. The slot is left untouched.
func (e *Engine) Validate(acc *entity.Account, p entity.Purpose, code string) error {
	if acc == nil {
		return entity.ErrNoActiveChallenge
	}

	ch := acc.Challenge(p)
	if !ch.Present() {
		return entity.ErrNoActiveChallenge
	}

	if !e.digest.Verify(ch.Digest, code) {
		return entity.ErrInvalidCode
	}

	if e.clock.Now().After(ch.ExpiresAt) {
		return entity.ErrExpired
	}

	return nil
}
