package mfa

import "context"

// AssertionVerifier checks a WebAuthn authentication assertion produced by
// an external ceremony. Credential storage and the ceremony cryptography
// live with the implementation, not here; this service only consumes the
// verdict.
type AssertionVerifier interface {
	VerifyAssertion(ctx context.Context, subject, assertion string) (bool, error)
}
