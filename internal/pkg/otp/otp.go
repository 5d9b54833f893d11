package otp

import (
	"crypto/rand"
	"math"
	"math/big"

	"github.com/pquerna/otp"
)

// Generator creates one-time codes.
type Generator interface {
	Generate() (string, error)
}

// Numeric draws codes uniformly from [0, 10^digits) using crypto/rand and
// keeps leading zeros, so every code has exactly the configured length.
type Numeric struct {
	digits otp.Digits
	max    *big.Int
}

// NewNumeric returns a Numeric generator. Anything other than six or eight
// digits falls back to six.
func NewNumeric(digits otp.Digits) *Numeric {
	if digits != otp.DigitsSix && digits != otp.DigitsEight {
		digits = otp.DigitsSix
	}

	return &Numeric{
		digits: digits,
		max:    big.NewInt(int64(math.Pow10(digits.Length()))),
	}
}

// Generate returns a fresh zero-padded code.
func (n *Numeric) Generate() (string, error) {
	v, err := rand.Int(rand.Reader, n.max)
	if err != nil {
		return "", err
	}

	return n.digits.Format(int32(v.Int64())), nil
}
