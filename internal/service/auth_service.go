package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-service/internal/audit"
	"github.com/spec-kit/auth-service/internal/domain"
	"github.com/spec-kit/auth-service/internal/mfa"
	"github.com/spec-kit/auth-service/internal/observability"
	"github.com/spec-kit/auth-service/internal/repository"
	"github.com/spec-kit/auth-service/internal/token"
)

// AuthService coordinates token issuance, the MFA challenge flow and token
// refresh. Primary-factor verification happens in an external collaborator;
// this service picks up once a subject is trusted.
type AuthService struct {
	identities repository.IdentityRepository
	issuer     *token.Issuer
	validator  *token.Validator
	otp        mfa.OTPProvider
	webauthn   mfa.AssertionVerifier
	sender     mfa.Sender
	recorder   audit.Recorder
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// AuthDependencies encapsulates collaborator requirements for the service.
// WebAuthn and Sender may be left nil in deployments without them; a nil
// WebAuthn verifier fails every assertion.
type AuthDependencies struct {
	IdentityRepo repository.IdentityRepository
	Issuer       *token.Issuer
	Validator    *token.Validator
	OTP          mfa.OTPProvider
	WebAuthn     mfa.AssertionVerifier
	Sender       mfa.Sender
	Recorder     audit.Recorder
	Metrics      *observability.Metrics
	Logger       *zap.Logger
}

// MFAVerificationInput carries the challenge token and exactly one proof.
type MFAVerificationInput struct {
	ChallengeToken    string
	OTPCode           string
	WebAuthnAssertion string
	Meta              audit.RequestMeta
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	if deps.Recorder == nil {
		deps.Recorder = audit.NopRecorder{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &AuthService{
		identities: deps.IdentityRepo,
		issuer:     deps.Issuer,
		validator:  deps.Validator,
		otp:        deps.OTP,
		webauthn:   deps.WebAuthn,
		sender:     deps.Sender,
		recorder:   deps.Recorder,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
}

// CompleteLogin finishes primary authentication for a subject whose first
// factor was already verified externally. Identities with MFA enabled get a
// challenge token instead of a pair.
func (s *AuthService) CompleteLogin(ctx context.Context, subject string, meta audit.RequestMeta) (*domain.AuthResult, error) {
	identity, err := s.identities.GetBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.recordEvent(ctx, subject, audit.EventLoginFailure, "unknown subject", meta)
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}
	if !identity.CanAuthenticate() {
		s.recordEvent(ctx, identity.Email, audit.EventLoginFailure, "identity not active", meta)
		return nil, ErrIdentityNotActive
	}

	if identity.MFAEnabled {
		challenge, _, err := s.issuer.IssueMFAChallengeToken(identity.Email)
		if err != nil {
			return nil, err
		}
		s.metrics.RecordTokenIssued(string(token.TypeMFAChallenge))
		s.recordEvent(ctx, identity.Email, audit.EventLoginSuccess, "mfa challenge issued", meta)
		return &domain.AuthResult{
			TokenType:   domain.TokenTypeBearer,
			MFARequired: true,
			MFAToken:    challenge,
		}, nil
	}

	result, err := s.mintPair(identity)
	if err != nil {
		return nil, err
	}
	s.recordLastLogin(ctx, identity)
	s.recordEvent(ctx, identity.Email, audit.EventLoginSuccess, "", meta)
	return result, nil
}

// VerifyMFA trades a live challenge token plus exactly one proof for a full
// token pair. Every verification failure collapses into
// ErrMFAVerificationFailed so callers cannot probe which factor failed or
// whether the subject exists.
func (s *AuthService) VerifyMFA(ctx context.Context, input MFAVerificationInput) (*domain.AuthResult, error) {
	if !s.validator.IsType(input.ChallengeToken, token.TypeMFAChallenge) {
		return nil, ErrInvalidChallenge
	}

	hasOTP := input.OTPCode != ""
	hasAssertion := input.WebAuthnAssertion != ""
	if hasOTP == hasAssertion {
		return nil, ErrProofRequired
	}

	subject, err := s.validator.ExtractSubject(input.ChallengeToken)
	if err != nil {
		return nil, ErrInvalidChallenge
	}

	identity, err := s.identities.GetBySubject(ctx, subject)
	if err != nil {
		s.recordEvent(ctx, subject, audit.EventMFAFailure, "identity lookup failed", input.Meta)
		return nil, ErrMFAVerificationFailed
	}

	method := "webauthn"
	if hasOTP {
		method = "otp"
	}
	if !s.verifyProof(ctx, subject, input) {
		s.metrics.RecordMFAVerification(method, false)
		s.recordEvent(ctx, subject, audit.EventMFAFailure, method, input.Meta)
		return nil, ErrMFAVerificationFailed
	}

	result, err := s.mintPair(identity)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordMFAVerification(method, true)
	s.recordLastLogin(ctx, identity)
	s.recordEvent(ctx, subject, audit.EventMFASuccess, method, input.Meta)
	return result, nil
}

// verifyProof dispatches to the collaborator for the supplied proof kind.
// Collaborator errors are logged and folded into a deny.
func (s *AuthService) verifyProof(ctx context.Context, subject string, input MFAVerificationInput) bool {
	if input.OTPCode != "" {
		ok, err := s.otp.Verify(ctx, subject, input.OTPCode)
		if err != nil {
			if errors.Is(err, mfa.ErrTooManyAttempts) {
				s.recordEvent(ctx, subject, audit.EventMFAOTPBlocked, "attempt budget exhausted", input.Meta)
			} else {
				s.logger.Error("otp verification", zap.Error(err), zap.String("subject", subject))
			}
			return false
		}
		return ok
	}

	if s.webauthn == nil {
		return false
	}
	ok, err := s.webauthn.VerifyAssertion(ctx, subject, input.WebAuthnAssertion)
	if err != nil {
		s.logger.Error("webauthn verification", zap.Error(err), zap.String("subject", subject))
		return false
	}
	return ok
}

// Refresh trades a live refresh token for a fresh pair. Access claims are
// rebuilt from the directory, so role changes propagate on rotation.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string, meta audit.RequestMeta) (*domain.AuthResult, error) {
	if !s.validator.IsType(refreshToken, token.TypeRefresh) {
		return nil, ErrInvalidRefreshToken
	}
	subject, err := s.validator.ExtractSubject(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	identity, err := s.identities.GetBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if !identity.CanAuthenticate() {
		return nil, ErrIdentityNotActive
	}
	if !s.validator.IsValid(refreshToken, identity.Email) {
		return nil, ErrInvalidRefreshToken
	}

	result, err := s.mintPair(identity)
	if err != nil {
		return nil, err
	}
	s.recordEvent(ctx, identity.Email, audit.EventTokenRefreshed, "", meta)
	return result, nil
}

// SendOTP issues a one-time code for the subject of a live challenge token
// and hands it to the delivery port. The channel defaults to the identity's
// preferred method.
func (s *AuthService) SendOTP(ctx context.Context, challengeToken, channelOverride string, meta audit.RequestMeta) error {
	if !s.validator.IsType(challengeToken, token.TypeMFAChallenge) {
		return ErrInvalidChallenge
	}
	subject, err := s.validator.ExtractSubject(challengeToken)
	if err != nil {
		return ErrInvalidChallenge
	}

	identity, err := s.identities.GetBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrIdentityNotFound
		}
		return err
	}

	channel, ok := mfa.ChannelForMethod(identity.PreferredMFAMethod)
	if channelOverride != "" {
		channel, ok = mfa.ParseChannel(channelOverride)
	}
	if !ok {
		return ErrChannelUnavailable
	}

	code, err := s.otp.Issue(ctx, subject, channel)
	if err != nil {
		return err
	}
	if s.sender != nil {
		if err := s.sender.SendOTP(ctx, subject, channel, code); err != nil {
			return err
		}
	}
	s.recordEvent(ctx, subject, audit.EventMFAOTPSent, string(channel), meta)
	return nil
}

// mintPair issues the access and refresh tokens for identity. Access claims
// come from the directory record.
func (s *AuthService) mintPair(identity *domain.Identity) (*domain.AuthResult, error) {
	access, expiresAt, err := s.issuer.IssueAccessToken(identity.Email, accessClaims(identity))
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.issuer.IssueRefreshToken(identity.Email)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordTokenIssued(string(token.TypeAccess))
	s.metrics.RecordTokenIssued(string(token.TypeRefresh))
	return &domain.AuthResult{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    domain.TokenTypeBearer,
		ExpiresAt:    expiresAt,
		ExpiresIn:    int64(s.issuer.AccessTTL().Seconds()),
	}, nil
}

func accessClaims(identity *domain.Identity) token.ClaimMap {
	return token.ClaimMap{
		"userId":   token.StringClaim(identity.ID),
		"username": token.StringClaim(identity.Username),
		"roles":    token.StringListClaim(identity.Roles),
	}
}

func (s *AuthService) recordEvent(ctx context.Context, subject string, eventType audit.EventType, description string, meta audit.RequestMeta) {
	s.recorder.Record(ctx, audit.Event{
		Subject:     subject,
		Type:        eventType,
		Description: description,
		IP:          meta.IP,
		UserAgent:   meta.UserAgent,
	})
}

func (s *AuthService) recordLastLogin(ctx context.Context, identity *domain.Identity) {
	if err := s.identities.RecordLogin(ctx, identity.ID, time.Now().UTC()); err != nil {
		s.logger.Warn("record last login",
			zap.Error(err),
			zap.String("identity_id", identity.ID))
	}
}
