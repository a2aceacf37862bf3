package dto

import (
	"time"

	"github.com/spec-kit/auth-service/internal/domain"
)

// MFAVerifyRequest carries a challenge token plus exactly one proof.
type MFAVerifyRequest struct {
	MFAToken          string `json:"mfa_token"`
	OTPCode           string `json:"otp_code,omitempty"`
	WebAuthnAssertion string `json:"webauthn_assertion,omitempty"`
}

// SendOTPRequest asks for a one-time code against an open challenge.
type SendOTPRequest struct {
	MFAToken string `json:"mfa_token"`
	Channel  string `json:"channel,omitempty"`
}

// RefreshRequest payload for token rotation.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenPairResponse standard response for endpoints that mint tokens.
// ExpiresIn is the access token lifetime in seconds.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// NewTokenPairResponse maps a service result onto the wire shape.
func NewTokenPairResponse(result *domain.AuthResult) TokenPairResponse {
	return TokenPairResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		TokenType:    result.TokenType,
		ExpiresIn:    result.ExpiresIn,
	}
}

// SessionResponse describes the authenticated caller.
type SessionResponse struct {
	Subject    string     `json:"subject"`
	Username   string     `json:"username"`
	Roles      []string   `json:"roles"`
	MFAEnabled bool       `json:"mfa_enabled"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	ExpiresAt  time.Time  `json:"expires_at"`
}

// AuditEventResponse is the admin view of one audit record.
type AuditEventResponse struct {
	ID          string    `json:"id"`
	Subject     string    `json:"subject"`
	EventType   string    `json:"event_type"`
	Description string    `json:"description,omitempty"`
	IP          string    `json:"ip,omitempty"`
	UserAgent   string    `json:"user_agent,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
