package token

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Wire claim names. "type" is absent on access tokens.
const (
	claimSubject  = "sub"
	claimIssuedAt = "iat"
	claimExpiry   = "exp"
	claimType     = "type"
)

var reservedClaimKeys = map[string]struct{}{
	claimSubject:  {},
	claimIssuedAt: {},
	claimExpiry:   {},
	claimType:     {},
}

// Codec encodes and decodes HMAC-signed JWTs. It holds the only copy of the
// key material and never exposes it.
type Codec struct {
	key    []byte
	parser *jwt.Parser
}

// NewCodec builds a codec around derived key material.
func NewCodec(key []byte) *Codec {
	return &Codec{
		key: key,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Encode signs a token for subject. The type tag is written only for
// non-access kinds. Custom claims are flattened into the payload; keys that
// collide with reserved claim names and values outside the supported
// variants are rejected. Apart from the timestamp the output is
// deterministic, so issuing carries no hidden randomness.
func (c *Codec) Encode(subject string, kind Type, custom ClaimMap, ttl time.Duration) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, fmt.Errorf("encode token: subject is required")
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	payload := jwt.MapClaims{
		claimSubject:  subject,
		claimIssuedAt: jwt.NewNumericDate(now),
		claimExpiry:   jwt.NewNumericDate(expiresAt),
	}
	if kind != TypeAccess {
		payload[claimType] = string(kind)
	}
	for key, value := range custom {
		if _, reserved := reservedClaimKeys[key]; reserved {
			return "", time.Time{}, fmt.Errorf("%w: key %q is reserved", ErrUnsupportedClaim, key)
		}
		raw := value.raw()
		if raw == nil {
			return "", time.Time{}, fmt.Errorf("%w: key %q", ErrUnsupportedClaim, key)
		}
		payload[key] = raw
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(c.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Decode verifies the signature and structure of raw before trusting any
// claim, then maps the payload onto Claims. Expired tokens fail with
// ErrExpiredToken even though their claims are readable.
func (c *Codec) Decode(raw string) (*Claims, error) {
	parsed, err := c.parser.Parse(raw, c.keyFunc)
	if err != nil {
		return nil, classifyParseError(err)
	}
	payload, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrMalformedToken
	}
	return claimsFromPayload(payload)
}

func (c *Codec) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method != jwt.SigningMethodHS256 {
		return nil, errors.New("unexpected signing method")
	}
	return c.key, nil
}

// classifyParseError folds the library's error set into the package
// taxonomy. A missing expiry counts as expired: no token is ever treated as
// permanently valid.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return ErrExpiredToken
	default:
		return ErrMalformedToken
	}
}

func claimsFromPayload(payload jwt.MapClaims) (*Claims, error) {
	out := &Claims{Type: TypeAccess, Custom: ClaimMap{}}
	for key, raw := range payload {
		switch key {
		case claimSubject:
			subject, ok := raw.(string)
			if !ok {
				return nil, ErrMalformedToken
			}
			out.Subject = subject
		case claimIssuedAt:
			at, ok := numericDate(raw)
			if !ok {
				return nil, ErrMalformedToken
			}
			out.IssuedAt = at
		case claimExpiry:
			at, ok := numericDate(raw)
			if !ok {
				return nil, ErrMalformedToken
			}
			out.ExpiresAt = at
		case claimType:
			tag, ok := raw.(string)
			if !ok {
				return nil, ErrMalformedToken
			}
			kind := Type(tag)
			if kind != TypeRefresh && kind != TypeMFAChallenge {
				return nil, ErrMalformedToken
			}
			out.Type = kind
		default:
			value, ok := claimValueFromRaw(raw)
			if !ok {
				return nil, ErrMalformedToken
			}
			out.Custom[key] = value
		}
	}
	if out.Subject == "" {
		return nil, ErrMalformedToken
	}
	return out, nil
}

func numericDate(raw any) (time.Time, bool) {
	seconds, ok := raw.(float64)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(seconds), 0), true
}
