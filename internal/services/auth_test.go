package services

import (
	"testing"
	"time"

	"github.com/YannisFouzi/blind-test-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService(secret, issuer string, ttl time.Duration) *AuthService {
	return &AuthService{secret: []byte(secret), issuer: issuer, tokenTTL: ttl}
}

func TestTokenRoundTrip(t *testing.T) {
	s := newTokenService("test-secret", "blindtest", time.Hour)

	token, err := s.issueToken(&models.Host{ID: 7, Username: "host1"})
	require.NoError(t, err)

	hostID, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), hostID)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	s := newTokenService("test-secret", "blindtest", -time.Minute)

	token, err := s.issueToken(&models.Host{ID: 7})
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	other := newTokenService("other-secret", "blindtest", time.Hour)
	token, err := other.issueToken(&models.Host{ID: 7})
	require.NoError(t, err)

	s := newTokenService("test-secret", "blindtest", time.Hour)
	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsWrongIssuer(t *testing.T) {
	other := newTokenService("test-secret", "someone-else", time.Hour)
	token, err := other.issueToken(&models.Host{ID: 7})
	require.NoError(t, err)

	s := newTokenService("test-secret", "blindtest", time.Hour)
	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	s := newTokenService("test-secret", "blindtest", time.Hour)

	_, err := s.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
