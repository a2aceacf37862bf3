package audit

import "time"

// EventType enumerates the auditable authentication outcomes.
type EventType string

const (
	EventLoginSuccess   EventType = "login_success"
	EventLoginFailure   EventType = "login_failure"
	EventMFASuccess     EventType = "mfa_success"
	EventMFAFailure     EventType = "mfa_failure"
	EventMFAOTPSent     EventType = "mfa_otp_sent"
	EventMFAOTPBlocked  EventType = "mfa_otp_blocked"
	EventTokenRefreshed EventType = "token_refreshed"
)

// RequestMeta carries caller attribution captured at the transport edge.
type RequestMeta struct {
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`
}

// Event is one audit trail entry.
type Event struct {
	ID          string    `json:"id"`
	Subject     string    `json:"subject"`
	Type        EventType `json:"type"`
	Description string    `json:"description,omitempty"`
	IP          string    `json:"ip,omitempty"`
	UserAgent   string    `json:"user_agent,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
