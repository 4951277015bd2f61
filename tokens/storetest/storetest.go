// Package storetest holds checks every tokens.Store backend must pass.
package storetest

import (
	"context"
	"testing"

	"github.com/jrsteele09/wave-console/internal/errors"
	"github.com/jrsteele09/wave-console/tokens"
	"github.com/stretchr/testify/require"
)

// EmptyValuesAreAbsent checks that an empty token written to s reads back as
// missing, and that a later empty write removes an earlier value.
func EmptyValuesAreAbsent(t *testing.T, s tokens.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Clear(ctx))

	require.NoError(t, s.Write(ctx, tokens.Pair{AccessToken: "A", RefreshToken: ""}))
	access, err := s.Read(ctx, tokens.Access)
	require.NoError(t, err)
	require.Equal(t, "A", access)
	_, err = s.Read(ctx, tokens.Refresh)
	require.ErrorIs(t, err, errors.ErrTokenNotFound)

	require.NoError(t, s.Write(ctx, tokens.Pair{AccessToken: "A", RefreshToken: "R"}))
	require.NoError(t, s.Write(ctx, tokens.Pair{AccessToken: "", RefreshToken: "R"}))
	require.False(t, tokens.HasAccessToken(ctx, s))
	refresh, err := s.Read(ctx, tokens.Refresh)
	require.NoError(t, err)
	require.Equal(t, "R", refresh)

	require.NoError(t, s.Clear(ctx))
}
