package token

import "time"

// Validator inspects tokens in two registers: strict extractors that
// propagate typed errors, and total boolean gates that fold every failure
// into a deny. Authorization decisions use the gates; flows that need the
// failure cause use the extractors.
type Validator struct {
	codec *Codec
}

// NewValidator builds a validator over the codec.
func NewValidator(codec *Codec) *Validator {
	return &Validator{codec: codec}
}

// ExtractClaims decodes raw and returns the full claim set.
func (v *Validator) ExtractClaims(raw string) (*Claims, error) {
	return v.codec.Decode(raw)
}

// ExtractSubject returns the subject of a valid token.
func (v *Validator) ExtractSubject(raw string) (string, error) {
	claims, err := v.codec.Decode(raw)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExtractExpiry returns the expiry instant of a valid token.
func (v *Validator) ExtractExpiry(raw string) (time.Time, error) {
	claims, err := v.codec.Decode(raw)
	if err != nil {
		return time.Time{}, err
	}
	return claims.ExpiresAt, nil
}

// ExtractType returns the token kind. Untagged tokens are access tokens.
func (v *Validator) ExtractType(raw string) (Type, error) {
	claims, err := v.codec.Decode(raw)
	if err != nil {
		return "", err
	}
	return claims.Type, nil
}

// IsExpired reports whether raw is past its expiry. Fail closed: anything
// that cannot be decoded, including tokens without a readable expiry, counts
// as expired.
func (v *Validator) IsExpired(raw string) bool {
	_, err := v.codec.Decode(raw)
	return err != nil
}

// IsValid reports whether raw is a live token bound to expectedSubject. The
// subject comparison is exact and case-sensitive. Any decode failure is a
// deny.
func (v *Validator) IsValid(raw, expectedSubject string) bool {
	claims, err := v.codec.Decode(raw)
	if err != nil {
		return false
	}
	return claims.Subject == expectedSubject
}

// IsType reports whether raw is a live token of the given kind. Any decode
// failure is a deny.
func (v *Validator) IsType(raw string, kind Type) bool {
	claims, err := v.codec.Decode(raw)
	if err != nil {
		return false
	}
	return claims.Type == kind
}
