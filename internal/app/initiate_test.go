package app

import (
	"os"
	"testing"
	"time"

	"github.com/shandysiswandi/turftime/internal/pkg/clock"
	"github.com/shandysiswandi/turftime/internal/pkg/config"
	"github.com/shandysiswandi/turftime/internal/pkg/jwt"
	"github.com/shandysiswandi/turftime/internal/pkg/uid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWT(t *testing.T) {
	t.Run("shipped config", func(t *testing.T) {
		data, err := os.ReadFile("../../config/config.yaml")
		require.NoError(t, err)

		cfg, err := config.NewViperFromBytes("yaml", data)
		require.NoError(t, err)

		signer, err := newJWT(cfg, clock.New(), uid.NewUUID())
		require.NoError(t, err)

		token, err := signer.Generate("acc-1", "user")
		require.NoError(t, err)

		claims, err := signer.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "acc-1", claims.UserID)
		assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
	})

	t.Run("short secret", func(t *testing.T) {
		cfg, err := config.NewViperFromBytes("yaml", []byte("jwt:\n  secret: short\n"))
		require.NoError(t, err)

		_, err = newJWT(cfg, clock.New(), uid.NewUUID())
		assert.ErrorIs(t, err, jwt.ErrSigningKeyTooShort)
	})
}
