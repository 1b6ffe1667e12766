package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const purposePasswordReset = "password_reset"

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenPurpose  = errors.New("token issued for another purpose")
	ErrMissingHeader = errors.New("authorization header missing")
	ErrHeaderFormat  = errors.New("invalid authorization header format")
)

// JWT issues and parses access and password-reset tokens.
type JWT struct {
	secretKey string
	exp       time.Duration
	resetExp  time.Duration
}

// Opt configures a JWT.
type Opt func(*JWT)

func WithSecretKey(key string) Opt {
	return func(j *JWT) { j.secretKey = key }
}

// WithExpiration sets the lifetime of access tokens.
func WithExpiration(d time.Duration) Opt {
	return func(j *JWT) { j.exp = d }
}

// WithResetExpiration sets the lifetime of password-reset tokens.
func WithResetExpiration(d time.Duration) Opt {
	return func(j *JWT) { j.resetExp = d }
}

// New creates a JWT with one-day access tokens and one-hour reset tokens unless overridden.
func New(opts ...Opt) *JWT {
	j := &JWT{
		exp:      24 * time.Hour,
		resetExp: time.Hour,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Claims carried by an access token.
type Claims struct {
	AccountID uuid.UUID `json:"account_id"`
	SessionID string    `json:"sid"`
	jwt.RegisteredClaims
}

type resetClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Generate signs an access token bound to the account's current session token.
func (j *JWT) Generate(ctx context.Context, accountID uuid.UUID, sessionID string) (string, error) {
	now := time.Now()
	claims := Claims{
		AccountID: accountID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.exp)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.secretKey))
}

// Validate checks signature and expiry only.
func (j *JWT) Validate(ctx context.Context, tokenString string) error {
	_, err := j.GetClaims(ctx, tokenString)
	return err
}

// GetClaims parses an access token.
func (j *JWT) GetClaims(ctx context.Context, tokenString string) (*Claims, error) {
	var claims Claims
	if err := j.parse(tokenString, &claims); err != nil {
		return nil, err
	}
	if claims.AccountID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// GenerateResetToken signs a password-reset token for email.
func (j *JWT) GenerateResetToken(ctx context.Context, email string) (string, error) {
	now := time.Now()
	claims := resetClaims{
		Email:   email,
		Purpose: purposePasswordReset,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.resetExp)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.secretKey))
}

// ParseResetToken returns the e-mail a reset token was issued for.
func (j *JWT) ParseResetToken(ctx context.Context, tokenString string) (string, error) {
	var claims resetClaims
	if err := j.parse(tokenString, &claims); err != nil {
		return "", err
	}
	if claims.Purpose != purposePasswordReset {
		return "", ErrTokenPurpose
	}
	return claims.Email, nil
}

func (j *JWT) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

// GetTokenFromRequest extracts the token string from the Authorization header
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrMissingHeader
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", ErrHeaderFormat
	}

	return parts[1], nil
}
