package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(t *testing.T, accessTTL, refreshTTL time.Duration) (*Issuer, *Codec) {
	t.Helper()
	codec := newTestCodec(t, testSecret)
	return NewIssuer(codec, accessTTL, refreshTTL), codec
}

func TestIssuer_IssueAccessToken(t *testing.T) {
	issuer, codec := newTestIssuer(t, 3600*time.Second, 24*time.Hour)

	raw, expiresAt, err := issuer.IssueAccessToken("alice@example.com", ClaimMap{
		"userId": NumberClaim(1),
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(3600*time.Second), expiresAt, 2*time.Second)

	claims, err := codec.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, TypeAccess, claims.Type)
	userID, ok := claims.Custom["userId"].AsNumber()
	require.True(t, ok)
	assert.Equal(t, float64(1), userID)
}

func TestIssuer_IssueRefreshToken(t *testing.T) {
	issuer, codec := newTestIssuer(t, time.Hour, 24*time.Hour)

	raw, expiresAt, err := issuer.IssueRefreshToken("alice@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, 2*time.Second)

	claims, err := codec.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, TypeRefresh, claims.Type)
	assert.Empty(t, claims.Custom)
}

func TestIssuer_IssueMFAChallengeToken(t *testing.T) {
	issuer, codec := newTestIssuer(t, time.Hour, 24*time.Hour)

	raw, expiresAt, err := issuer.IssueMFAChallengeToken("alice@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(MFAChallengeTTL), expiresAt, 2*time.Second)

	claims, err := codec.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, TypeMFAChallenge, claims.Type)
	assert.Empty(t, claims.Custom)
}

func TestNewIssuer_DefaultsOnInvalidTTL(t *testing.T) {
	issuer, _ := newTestIssuer(t, 0, -time.Hour)

	assert.Equal(t, defaultAccessTTL, issuer.accessTTL)
	assert.Equal(t, defaultRefreshTTL, issuer.refreshTTL)
}
