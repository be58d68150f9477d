package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/vehicle-marketplace/internal/domain"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret")

	token, expiresAt, err := codec.Issue("user-1", "owner@example.com", domain.RoleVehicleOwner)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.SubjectID)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Equal(t, domain.RoleVehicleOwner, claims.Role)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)

	window := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, SessionTTL, window)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt.Time, time.Second)
}

func TestVerifyExpiredToken(t *testing.T) {
	codec := NewTokenCodec("test-secret")

	claims := &Claims{
		SubjectID: "user-1",
		Email:     "owner@example.com",
		Role:      domain.RoleVehicleOwner,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-8 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrTokenSignature)
}

func TestVerifyForeignSecret(t *testing.T) {
	issuer := NewTokenCodec("stale-secret")
	codec := NewTokenCodec("current-secret")

	token, _, err := issuer.Issue("user-1", "seller@example.com", domain.RoleSeller)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.ErrorIs(t, err, ErrTokenSignature)
	assert.NotErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrTokenMalformed)
}

func TestVerifyMalformedToken(t *testing.T) {
	codec := NewTokenCodec("test-secret")

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := codec.Verify(raw)
		assert.ErrorIs(t, err, ErrTokenMalformed, "input %q", raw)
	}
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	codec := NewTokenCodec("test-secret")

	claims := &Claims{
		SubjectID: "user-1",
		Role:      domain.Role("SUPERUSER"),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.ErrorIs(t, err, ErrTokenMalformed)
}
