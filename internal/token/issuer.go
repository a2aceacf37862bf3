package token

import "time"

// MFAChallengeTTL bounds the window between first and second factor. It is
// intentionally not configurable.
const MFAChallengeTTL = 5 * time.Minute

const (
	defaultAccessTTL  = time.Hour
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// Issuer mints the three token kinds with their configured lifetimes. It is
// stateless: nothing is persisted or counted per issue.
type Issuer struct {
	codec      *Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewIssuer builds an issuer. Non-positive lifetimes fall back to defaults.
func NewIssuer(codec *Codec, accessTTL, refreshTTL time.Duration) *Issuer {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &Issuer{codec: codec, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// AccessTTL reports the configured access-token lifetime.
func (i *Issuer) AccessTTL() time.Duration { return i.accessTTL }

// IssueAccessToken mints an access token carrying the given custom claims.
func (i *Issuer) IssueAccessToken(subject string, custom ClaimMap) (string, time.Time, error) {
	return i.codec.Encode(subject, TypeAccess, custom, i.accessTTL)
}

// IssueRefreshToken mints a refresh token. Refresh tokens never carry custom
// claims; their only payload is subject, lifetime and the type tag.
func (i *Issuer) IssueRefreshToken(subject string) (string, time.Time, error) {
	return i.codec.Encode(subject, TypeRefresh, nil, i.refreshTTL)
}

// IssueMFAChallengeToken mints the short-lived token that proves the first
// factor succeeded while the second is pending.
func (i *Issuer) IssueMFAChallengeToken(subject string) (string, time.Time, error) {
	return i.codec.Encode(subject, TypeMFAChallenge, nil, MFAChallengeTTL)
}
