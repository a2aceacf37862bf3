package domain

import "time"

// TokenTypeBearer is the scheme clients present tokens under.
const TokenTypeBearer = "Bearer"

// AuthResult is the outcome of a completed authentication step. Either a
// full token pair is present, or MFARequired is set and MFAToken carries the
// challenge bridging to the second factor. ExpiresIn is the access token
// lifetime in seconds.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresAt    time.Time
	ExpiresIn    int64
	MFARequired  bool
	MFAToken     string
}
