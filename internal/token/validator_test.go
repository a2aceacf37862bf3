package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) (*Validator, *Issuer) {
	t.Helper()
	codec := newTestCodec(t, testSecret)
	return NewValidator(codec), NewIssuer(codec, time.Hour, 24*time.Hour)
}

func TestValidator_ExtractSubject(t *testing.T) {
	validator, issuer := newTestValidator(t)

	raw, _, err := issuer.IssueAccessToken("alice@example.com", nil)
	require.NoError(t, err)

	subject, err := validator.ExtractSubject(raw)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)

	_, err = validator.ExtractSubject("garbage")
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestValidator_ExtractExpiry(t *testing.T) {
	validator, issuer := newTestValidator(t)

	raw, expiresAt, err := issuer.IssueAccessToken("alice@example.com", nil)
	require.NoError(t, err)

	got, err := validator.ExtractExpiry(raw)
	require.NoError(t, err)
	assert.WithinDuration(t, expiresAt, got, time.Second)
}

func TestValidator_ExtractType(t *testing.T) {
	validator, issuer := newTestValidator(t)

	access, _, err := issuer.IssueAccessToken("alice@example.com", nil)
	require.NoError(t, err)
	refresh, _, err := issuer.IssueRefreshToken("alice@example.com")
	require.NoError(t, err)
	challenge, _, err := issuer.IssueMFAChallengeToken("alice@example.com")
	require.NoError(t, err)

	kind, err := validator.ExtractType(access)
	require.NoError(t, err)
	assert.Equal(t, TypeAccess, kind)

	kind, err = validator.ExtractType(refresh)
	require.NoError(t, err)
	assert.Equal(t, TypeRefresh, kind)

	kind, err = validator.ExtractType(challenge)
	require.NoError(t, err)
	assert.Equal(t, TypeMFAChallenge, kind)
}

func TestValidator_Extract_TamperedToken(t *testing.T) {
	validator, issuer := newTestValidator(t)

	raw, _, err := issuer.IssueAccessToken("alice@example.com", nil)
	require.NoError(t, err)
	tampered := flipSignature(t, raw)

	_, err = validator.ExtractSubject(tampered)
	assert.ErrorIs(t, err, ErrInvalidSignature)
	_, err = validator.ExtractExpiry(tampered)
	assert.ErrorIs(t, err, ErrInvalidSignature)
	_, err = validator.ExtractType(tampered)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidator_IsExpired(t *testing.T) {
	validator, issuer := newTestValidator(t)
	codec := newTestCodec(t, testSecret)

	fresh, _, err := issuer.IssueAccessToken("alice@example.com", nil)
	require.NoError(t, err)
	stale, _, err := codec.Encode("alice@example.com", TypeAccess, nil, -time.Second)
	require.NoError(t, err)

	assert.False(t, validator.IsExpired(fresh))
	assert.True(t, validator.IsExpired(stale))
	assert.True(t, validator.IsExpired("not even a token"), "unparseable input counts as expired")
}

func TestValidator_IsValid(t *testing.T) {
	validator, issuer := newTestValidator(t)
	codec := newTestCodec(t, testSecret)

	raw, _, err := issuer.IssueAccessToken("alice@example.com", nil)
	require.NoError(t, err)
	stale, _, err := codec.Encode("alice@example.com", TypeAccess, nil, -time.Second)
	require.NoError(t, err)

	assert.True(t, validator.IsValid(raw, "alice@example.com"))
	assert.False(t, validator.IsValid(raw, "bob@example.com"))
	assert.False(t, validator.IsValid(raw, "Alice@example.com"), "subject comparison is case-sensitive")
	assert.False(t, validator.IsValid(stale, "alice@example.com"), "expired tokens are never valid")
	assert.False(t, validator.IsValid(flipSignature(t, raw), "alice@example.com"))
	assert.False(t, validator.IsValid("garbage", "alice@example.com"))
}

func TestValidator_IsType_Isolation(t *testing.T) {
	validator, issuer := newTestValidator(t)

	access, _, err := issuer.IssueAccessToken("alice@example.com", nil)
	require.NoError(t, err)
	refresh, _, err := issuer.IssueRefreshToken("alice@example.com")
	require.NoError(t, err)
	challenge, _, err := issuer.IssueMFAChallengeToken("alice@example.com")
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
		kind Type
		want bool
	}{
		{"access is access", access, TypeAccess, true},
		{"access is not refresh", access, TypeRefresh, false},
		{"access is not challenge", access, TypeMFAChallenge, false},
		{"refresh is refresh", refresh, TypeRefresh, true},
		{"refresh is not access", refresh, TypeAccess, false},
		{"challenge is challenge", challenge, TypeMFAChallenge, true},
		{"challenge is not access", challenge, TypeAccess, false},
		{"challenge is not refresh", challenge, TypeRefresh, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validator.IsType(tt.raw, tt.kind))
		})
	}
}

func TestValidator_IsType_FailClosed(t *testing.T) {
	validator, _ := newTestValidator(t)
	codec := newTestCodec(t, testSecret)

	stale, _, err := codec.Encode("alice@example.com", TypeMFAChallenge, nil, -time.Second)
	require.NoError(t, err)

	assert.False(t, validator.IsType(stale, TypeMFAChallenge), "expired challenge is not accepted")
	assert.False(t, validator.IsType("garbage", TypeAccess))
}
