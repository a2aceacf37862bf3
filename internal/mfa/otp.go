package mfa

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/auth-service/internal/domain"
)

// Channel is a delivery route for one-time codes.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// ErrTooManyAttempts is returned once the per-subject attempt budget is
// spent. The code stays blocked until it expires.
var ErrTooManyAttempts = errors.New("too many otp attempts")

const (
	defaultOTPTTL         = 5 * time.Minute
	defaultOTPMaxAttempts = 3
)

// ParseChannel maps a request value onto a known channel.
func ParseChannel(v string) (Channel, bool) {
	switch Channel(v) {
	case ChannelEmail:
		return ChannelEmail, true
	case ChannelSMS:
		return ChannelSMS, true
	default:
		return "", false
	}
}

// ChannelForMethod picks the delivery channel for an identity's preferred
// method. WebAuthn has no code delivery, so it maps to nothing.
func ChannelForMethod(method domain.MFAMethod) (Channel, bool) {
	switch method {
	case domain.MFAMethodOTPEmail:
		return ChannelEmail, true
	case domain.MFAMethodOTPSMS:
		return ChannelSMS, true
	default:
		return "", false
	}
}

// OTPVerifier is the code-checking collaborator the MFA flow dispatches to.
type OTPVerifier interface {
	Verify(ctx context.Context, subject, code string) (bool, error)
}

// OTPProvider issues codes as well as verifying them.
type OTPProvider interface {
	OTPVerifier
	Issue(ctx context.Context, subject string, channel Channel) (string, error)
}

// OTPStore keeps one-time codes in Redis, one live code per subject and
// channel, with an attempt budget per subject.
type OTPStore struct {
	client      *redis.Client
	ttl         time.Duration
	maxAttempts int
}

// NewOTPStore builds a store. Non-positive settings fall back to defaults.
func NewOTPStore(client *redis.Client, ttl time.Duration, maxAttempts int) *OTPStore {
	if ttl <= 0 {
		ttl = defaultOTPTTL
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultOTPMaxAttempts
	}
	return &OTPStore{client: client, ttl: ttl, maxAttempts: maxAttempts}
}

// Issue generates a fresh 6-digit code for subject on channel, replacing any
// previous one and resetting the attempt budget.
func (s *OTPStore) Issue(ctx context.Context, subject string, channel Channel) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	if err := s.client.Set(ctx, codeKey(subject, channel), code, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	if err := s.client.Del(ctx, attemptsKey(subject)).Err(); err != nil {
		return "", fmt.Errorf("reset otp attempts: %w", err)
	}
	return code, nil
}

// Verify consumes one attempt. The code is checked against every channel, so
// callers need not know where it was delivered. A match consumes the code;
// a miss burns one attempt.
func (s *OTPStore) Verify(ctx context.Context, subject, code string) (bool, error) {
	attempts, err := s.client.Get(ctx, attemptsKey(subject)).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, fmt.Errorf("read otp attempts: %w", err)
	}
	if attempts >= s.maxAttempts {
		return false, ErrTooManyAttempts
	}

	for _, channel := range []Channel{ChannelEmail, ChannelSMS} {
		stored, err := s.client.Get(ctx, codeKey(subject, channel)).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("read otp: %w", err)
		}
		if stored == code {
			if err := s.clear(ctx, subject); err != nil {
				return false, fmt.Errorf("consume otp: %w", err)
			}
			return true, nil
		}
	}

	key := attemptsKey(subject)
	if err := s.client.Incr(ctx, key).Err(); err != nil {
		return false, fmt.Errorf("count otp attempt: %w", err)
	}
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return false, fmt.Errorf("expire otp attempts: %w", err)
	}
	return false, nil
}

func (s *OTPStore) clear(ctx context.Context, subject string) error {
	return s.client.Del(ctx,
		codeKey(subject, ChannelEmail),
		codeKey(subject, ChannelSMS),
		attemptsKey(subject),
	).Err()
}

func codeKey(subject string, channel Channel) string {
	return "otp:" + string(channel) + ":" + subject
}

func attemptsKey(subject string) string {
	return "otp:attempts:" + subject
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.Itoa(int(n.Int64()) + 100000), nil
}
