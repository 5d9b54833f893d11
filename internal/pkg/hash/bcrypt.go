package hash

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches the cost of hashes already stored for existing accounts.
const DefaultBcryptCost = 10

// ErrTooLong is returned when the peppered plaintext exceeds the 72 bytes bcrypt reads.
var ErrTooLong = errors.New("hash: plaintext exceeds 72 bytes")

// Bcrypt implements Hash using bcrypt. The optional pepper is appended to the
// plaintext and must stay empty to verify hashes created without one.
type Bcrypt struct {
	cost   int
	pepper string
}

// NewBcrypt returns a bcrypt hasher. A cost outside bcrypt's range falls back
// to DefaultBcryptCost.
func NewBcrypt(cost int, pepper string) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &Bcrypt{cost: cost, pepper: pepper}
}

func (h *Bcrypt) Hash(plaintext string) ([]byte, error) {
	input := []byte(plaintext + h.pepper)
	if len(input) > 72 {
		return nil, ErrTooLong
	}
	return bcrypt.GenerateFromPassword(input, h.cost)
}

func (h *Bcrypt) Verify(hashed, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext+h.pepper)) == nil
}
