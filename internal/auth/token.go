package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/vehicle-marketplace/internal/domain"
)

// SessionTTL is the fixed validity window for session tokens. Tokens are
// never renewed by this subsystem; a client re-authenticates after expiry.
const SessionTTL = 7 * 24 * time.Hour

// Verification failure kinds. Callers must keep these distinct internally
// (logging, telemetry) even when the HTTP response collapses them.
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenExpired   = errors.New("token expired")
)

// TokenCodec issues and verifies signed session tokens. The secret is fixed
// at construction and never mutated, so Verify is safe for concurrent use
// without locking.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec builds a codec around the process-wide signing secret.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), ttl: SessionTTL}
}

// Claims is the signed identity payload carried by a session token.
type Claims struct {
	SubjectID string      `json:"sub"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issue stamps the validity window and signs the claims.
func (tc *TokenCodec) Issue(subjectID, email string, role domain.Role) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tc.ttl)
	claims := &Claims{
		SubjectID: subjectID,
		Email:     email,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tc.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify parses and validates a session token. Failures map onto exactly one
// of ErrTokenMalformed, ErrTokenSignature, ErrTokenExpired.
func (tc *TokenCodec) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrTokenSignature
		}
		return tc.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrTokenSignature):
			return nil, ErrTokenSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	if !claims.Role.Valid() {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
