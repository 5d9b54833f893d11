package otp

import (
	"strconv"
	"testing"

	"github.com/pquerna/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumeric_Generate(t *testing.T) {
	g := NewNumeric(otp.DigitsSix)

	for range 500 {
		code, err := g.Generate()
		require.NoError(t, err)
		require.Len(t, code, 6)

		v, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 1_000_000)
	}
}

func TestNumeric_FallbackDigits(t *testing.T) {
	code, err := NewNumeric(otp.Digits(4)).Generate()
	require.NoError(t, err)
	assert.Len(t, code, 6)

	code, err = NewNumeric(otp.DigitsEight).Generate()
	require.NoError(t, err)
	assert.Len(t, code, 8)
}

func TestDigitsFormat_KeepsLeadingZeros(t *testing.T) {
	assert.Equal(t, "000042", otp.DigitsSix.Format(42))
	assert.Equal(t, "000000", otp.DigitsSix.Format(0))
}
