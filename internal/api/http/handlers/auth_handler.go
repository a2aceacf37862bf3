package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-service/internal/api/dto"
	"github.com/spec-kit/auth-service/internal/audit"
	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/service"
	apperrors "github.com/spec-kit/auth-service/pkg/util/errorutil"
)

// AuthHandler exposes the MFA verification and token rotation endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// VerifyMFA handles POST /auth/mfa/verify.
func (h *AuthHandler) VerifyMFA(c *fiber.Ctx) error {
	var req dto.MFAVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.MFAToken == "" {
		return fiber.NewError(http.StatusBadRequest, "mfa_token required")
	}

	result, err := h.auth.VerifyMFA(c.Context(), service.MFAVerificationInput{
		ChallengeToken:    req.MFAToken,
		OTPCode:           req.OTPCode,
		WebAuthnAssertion: req.WebAuthnAssertion,
		Meta:              requestMeta(c),
	})
	if err != nil {
		return mapAuthError(err)
	}

	return c.JSON(fiber.Map{"data": dto.NewTokenPairResponse(result)})
}

// SendOTP handles POST /auth/mfa/otp/send.
func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	var req dto.SendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.MFAToken == "" {
		return fiber.NewError(http.StatusBadRequest, "mfa_token required")
	}

	if err := h.auth.SendOTP(c.Context(), req.MFAToken, req.Channel, requestMeta(c)); err != nil {
		return mapAuthError(err)
	}

	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": fiber.Map{"status": "sent"}})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.RefreshToken == "" {
		return fiber.NewError(http.StatusBadRequest, "refresh_token required")
	}

	result, err := h.auth.Refresh(c.Context(), req.RefreshToken, requestMeta(c))
	if err != nil {
		return mapAuthError(err)
	}

	return c.JSON(fiber.Map{"data": dto.NewTokenPairResponse(result)})
}

// Session handles GET /auth/session.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	return c.JSON(fiber.Map{"data": dto.SessionResponse{
		Subject:    principal.Claims.Subject,
		Username:   principal.Identity.Username,
		Roles:      principal.Identity.Roles,
		MFAEnabled: principal.Identity.MFAEnabled,
		LastLogin:  principal.Identity.LastLoginAt,
		ExpiresAt:  principal.Claims.ExpiresAt,
	}})
}

// mapAuthError translates service sentinels into transport errors. Every
// verification failure renders with the same status and message so callers
// cannot tell which factor or lookup rejected them.
func mapAuthError(err error) error {
	switch {
	case errors.Is(err, service.ErrProofRequired):
		return apperrors.NewValidationError("exactly one of otp_code or webauthn_assertion is required", nil)
	case errors.Is(err, service.ErrChannelUnavailable):
		return apperrors.NewValidationError("no otp channel available for this identity", nil)
	case errors.Is(err, service.ErrInvalidChallenge), errors.Is(err, service.ErrIdentityNotFound):
		return apperrors.NewUnauthorized("invalid challenge token")
	case errors.Is(err, service.ErrMFAVerificationFailed):
		return apperrors.NewUnauthorized("mfa verification failed")
	case errors.Is(err, service.ErrInvalidRefreshToken), errors.Is(err, service.ErrIdentityNotActive):
		return apperrors.NewUnauthorized("invalid refresh token")
	default:
		return apperrors.MapError(err)
	}
}

func requestMeta(c *fiber.Ctx) audit.RequestMeta {
	return audit.RequestMeta{IP: c.IP(), UserAgent: c.Get("User-Agent")}
}
