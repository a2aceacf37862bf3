package domain

import "time"

// IdentityStatus represents lifecycle states for an account.
type IdentityStatus string

const (
	IdentityStatusActive              IdentityStatus = "ACTIVE"
	IdentityStatusInactive            IdentityStatus = "INACTIVE"
	IdentityStatusLocked              IdentityStatus = "LOCKED"
	IdentityStatusPendingVerification IdentityStatus = "PENDING_VERIFICATION"
)

// MFAMethod enumerates the supported second factors.
type MFAMethod string

const (
	MFAMethodOTPEmail MFAMethod = "OTP_EMAIL"
	MFAMethodOTPSMS   MFAMethod = "OTP_SMS"
	MFAMethodWebAuthn MFAMethod = "WEBAUTHN"
)

// Directory role names.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Identity is the directory record behind a token subject. Credentials are
// not part of this model; primary-factor verification happens outside this
// service.
type Identity struct {
	ID                 string
	Email              string
	Username           string
	PhoneNumber        string
	Status             IdentityStatus
	MFAEnabled         bool
	PreferredMFAMethod MFAMethod
	Roles              []string
	LastLoginAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CanAuthenticate reports whether tokens may be minted for this identity.
func (i *Identity) CanAuthenticate() bool {
	return i.Status == IdentityStatusActive
}
