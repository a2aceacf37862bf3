package token

import (
	"errors"
	"fmt"
)

// ErrInvalidToken is the umbrella for every decode failure. The specific
// sentinels below wrap it, so errors.Is(err, ErrInvalidToken) holds for all
// of them.
var ErrInvalidToken = errors.New("invalid token")

var (
	// ErrMalformedToken marks input that is not structurally a signed token.
	ErrMalformedToken = fmt.Errorf("%w: malformed", ErrInvalidToken)
	// ErrInvalidSignature marks a structurally valid token whose signature
	// does not verify against the configured key.
	ErrInvalidSignature = fmt.Errorf("%w: signature mismatch", ErrInvalidToken)
	// ErrExpiredToken marks a well-formed, correctly signed token past its
	// expiry. Tokens without a readable expiry are classified here too.
	ErrExpiredToken = fmt.Errorf("%w: expired", ErrInvalidToken)
)

var (
	// ErrUnsupportedClaim is returned when a custom claim cannot be encoded,
	// either because its value is outside the supported variants or because
	// its key collides with a reserved claim name.
	ErrUnsupportedClaim = errors.New("unsupported claim")

	// ErrWeakSecret is returned when the configured signing secret is too
	// short to derive key material from.
	ErrWeakSecret = errors.New("signing secret must be at least 32 bytes")
)
