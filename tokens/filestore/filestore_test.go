package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jrsteele09/wave-console/internal/errors"
	"github.com/jrsteele09/wave-console/tokens"
	"github.com/jrsteele09/wave-console/tokens/filestore"
	"github.com/jrsteele09/wave-console/tokens/storetest"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "tokens.json")
	s := filestore.New(path)

	t.Run("absent before first write", func(t *testing.T) {
		_, err := s.Read(ctx, tokens.Access)
		require.ErrorIs(t, err, errors.ErrTokenNotFound)
	})

	t.Run("write creates the file with both keys", func(t *testing.T) {
		require.NoError(t, s.Write(ctx, tokens.Pair{AccessToken: "A", RefreshToken: "R"}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(data), `"wave_access_token":"A"`)
		require.Contains(t, string(data), `"wave_refresh_token":"R"`)

		if runtime.GOOS != "windows" {
			info, err := os.Stat(path)
			require.NoError(t, err)
			require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
		}
	})

	t.Run("survives a new store instance", func(t *testing.T) {
		reopened := filestore.New(path)
		access, err := reopened.Read(ctx, tokens.Access)
		require.NoError(t, err)
		require.Equal(t, "A", access)
		refresh, err := reopened.Read(ctx, tokens.Refresh)
		require.NoError(t, err)
		require.Equal(t, "R", refresh)
	})

	t.Run("overwrite replaces both", func(t *testing.T) {
		require.NoError(t, s.Write(ctx, tokens.Pair{AccessToken: "A2", RefreshToken: "R"}))
		p, err := tokens.ReadPair(ctx, s)
		require.NoError(t, err)
		require.Equal(t, tokens.Pair{AccessToken: "A2", RefreshToken: "R"}, p)
	})

	t.Run("clear removes both and is idempotent", func(t *testing.T) {
		require.NoError(t, s.Clear(ctx))
		require.NoError(t, s.Clear(ctx))
		require.False(t, tokens.HasAccessToken(ctx, s))
		_, err := s.Read(ctx, tokens.Refresh)
		require.ErrorIs(t, err, errors.ErrTokenNotFound)
	})
}

func TestStore_Sealed(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tokens.json")

	s := filestore.New(path, filestore.WithPassphrase("hunter2"))
	require.NoError(t, s.Write(ctx, tokens.Pair{AccessToken: "secret-access", RefreshToken: "secret-refresh"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "secret-access")

	access, err := s.Read(ctx, tokens.Access)
	require.NoError(t, err)
	require.Equal(t, "secret-access", access)

	wrong := filestore.New(path, filestore.WithPassphrase("nope"))
	_, err = wrong.Read(ctx, tokens.Access)
	require.Error(t, err)
	require.NotErrorIs(t, err, errors.ErrTokenNotFound)
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := filestore.New(path).Read(context.Background(), tokens.Access)
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode")
}

func TestStore_EmptyValues(t *testing.T) {
	storetest.EmptyValuesAreAbsent(t, filestore.New(filepath.Join(t.TempDir(), "tokens.json")))
}
