package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/KasumiMercury/primind-reminder-dispatch/internal/domain"
)

const (
	PurposeUnsubscribe = "reminder_unsubscribe"

	DefaultTTL = 30 * 24 * time.Hour
)

var (
	ErrMissingSecret  = errors.New("unsubscribe secret must be provided")
	ErrWrongPurpose   = errors.New("token purpose mismatch")
	ErrSubjectBinding = errors.New("token subject does not match user claim")
)

// UnsubscribeClaims binds a capability to one user and one purpose.
type UnsubscribeClaims struct {
	Purpose string `json:"typ"`
	UserID  string `json:"uid"`
	jwt.RegisteredClaims
}

type UnsubscribeTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*UnsubscribeTokens)

// WithClock overrides the time source used both for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(t *UnsubscribeTokens) {
		t.now = now
	}
}

func NewUnsubscribeTokens(secret string, ttl time.Duration, opts ...Option) (*UnsubscribeTokens, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	t := &UnsubscribeTokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

func (t *UnsubscribeTokens) Issue(userID domain.UserID) (string, error) {
	if userID.IsZero() {
		return "", domain.ErrInvalidUserID
	}

	now := t.now()

	claims := UnsubscribeClaims{
		Purpose: PurposeUnsubscribe,
		UserID:  userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign unsubscribe token: %w", err)
	}

	return signed, nil
}

// Verify checks signature, expiry and purpose, and returns the user the
// token was issued for.
func (t *UnsubscribeTokens) Verify(tokenString string) (domain.UserID, error) {
	var claims UnsubscribeClaims

	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(_ *jwt.Token) (any, error) {
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return domain.UserID{}, err
	}

	if claims.Purpose != PurposeUnsubscribe {
		return domain.UserID{}, ErrWrongPurpose
	}

	if claims.Subject != "" && claims.Subject != claims.UserID {
		return domain.UserID{}, ErrSubjectBinding
	}

	userID, err := domain.UserIDFromString(claims.UserID)
	if err != nil {
		return domain.UserID{}, err
	}

	return userID, nil
}
