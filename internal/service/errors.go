package service

import "errors"

var (
	// ErrIdentityNotFound signals an unknown subject where revealing that is
	// acceptable. MFA verification never returns it.
	ErrIdentityNotFound = errors.New("identity not found")

	// ErrIdentityNotActive rejects flows for suspended, locked or pending
	// accounts.
	ErrIdentityNotActive = errors.New("identity is not active")

	// ErrInvalidChallenge rejects MFA operations whose bearer token is not a
	// live, well-formed challenge token.
	ErrInvalidChallenge = errors.New("invalid mfa challenge token")

	// ErrProofRequired rejects verification requests that do not carry
	// exactly one proof. It is a request-shape error, not a verdict on the
	// proof itself.
	ErrProofRequired = errors.New("exactly one mfa proof is required")

	// ErrMFAVerificationFailed is the uniform verdict for every failed
	// verification, whatever the factor or cause. Callers cannot learn which
	// factor failed, or whether the subject exists at that stage.
	ErrMFAVerificationFailed = errors.New("mfa verification failed")

	// ErrInvalidRefreshToken rejects refresh attempts whose token is not a
	// live refresh token bound to a known identity.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrChannelUnavailable signals that no OTP delivery channel could be
	// determined for the identity.
	ErrChannelUnavailable = errors.New("no otp channel available")
)
