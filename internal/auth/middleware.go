package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/auth-service/internal/domain"
	"github.com/spec-kit/auth-service/internal/repository"
	"github.com/spec-kit/auth-service/internal/token"
	apperrors "github.com/spec-kit/auth-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	Identity *domain.Identity
	Claims   *token.Claims
}

// HasRole reports whether the directory record carries the given role.
func (p *Principal) HasRole(role string) bool {
	if p == nil || p.Identity == nil {
		return false
	}
	for _, have := range p.Identity.Roles {
		if have == role {
			return true
		}
	}
	return false
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	validator  *token.Validator
	identities repository.IdentityRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(validator *token.Validator, identities repository.IdentityRepository) *AuthMiddleware {
	return &AuthMiddleware{validator: validator, identities: identities}
}

// Handle enforces authentication for protected routes. Only access tokens
// authorize a request; refresh and challenge tokens are rejected here no
// matter how fresh their signatures are.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.validator.ExtractClaims(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}
	if claims.Type != token.TypeAccess {
		return apperrors.NewUnauthorized("invalid token")
	}

	identity, err := m.identities.GetBySubject(c.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("unknown subject")
		}
		return apperrors.MapError(err)
	}
	if !identity.CanAuthenticate() {
		return apperrors.NewUnauthorized("identity not active")
	}

	c.Locals(principalKey, &Principal{Identity: identity, Claims: claims})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
