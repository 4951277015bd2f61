package cryptox_test

import (
	"testing"

	"github.com/jrsteele09/wave-console/internal/cryptox"
	"github.com/stretchr/testify/require"
)

func TestSealOpen(t *testing.T) {
	plaintext := []byte(`{"wave_access_token":"a","wave_refresh_token":"r"}`)

	t.Run("round trip", func(t *testing.T) {
		sealed, err := cryptox.Seal(plaintext, []byte("correct horse"))
		require.NoError(t, err)
		require.NotContains(t, string(sealed), "wave_access_token")

		opened, err := cryptox.Open(sealed, []byte("correct horse"))
		require.NoError(t, err)
		require.Equal(t, plaintext, opened)
	})

	t.Run("fresh salt each time", func(t *testing.T) {
		a, err := cryptox.Seal(plaintext, []byte("pw"))
		require.NoError(t, err)
		b, err := cryptox.Seal(plaintext, []byte("pw"))
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	})

	t.Run("wrong passphrase", func(t *testing.T) {
		sealed, err := cryptox.Seal(plaintext, []byte("pw"))
		require.NoError(t, err)
		_, err = cryptox.Open(sealed, []byte("other"))
		require.Error(t, err)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := cryptox.Open([]byte("short"), []byte("pw"))
		require.ErrorIs(t, err, cryptox.ErrSealedDataTooShort)
	})
}
