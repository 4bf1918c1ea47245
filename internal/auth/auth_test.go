package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("super-secret", time.Hour)

	tok, err := m.Generate("u-1", "admin", RoleAdmin)
	require.NoError(t, err)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("secret", -time.Second)
	tok, err := m.Generate("u-1", "x", RoleUser)
	require.NoError(t, err)

	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tok, err := NewTokenManager("right", time.Hour).Generate("u-1", "x", RoleUser)
	require.NoError(t, err)

	_, err = NewTokenManager("wrong", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewTokenManager("right", time.Hour).Parse("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.Error(t, ValidatePassword("short"))
}

func TestWriteGate(t *testing.T) {
	assert.True(t, WriteGate(http.MethodGet, "", false))
	assert.True(t, WriteGate(http.MethodOptions, "", false))
	assert.False(t, WriteGate(http.MethodPost, "", false))
	assert.False(t, WriteGate(http.MethodPatch, RoleUser, false))
	assert.True(t, WriteGate(http.MethodPatch, RoleAdmin, false))
	assert.True(t, WriteGate(http.MethodDelete, "", true))
}

func TestTrustedHeader(t *testing.T) {
	h := TrustedHeader{Enabled: true, Name: "X-User-Authenticated", Value: "true"}

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	assert.False(t, h.Matches(r))

	r.Header.Set("X-User-Authenticated", "true")
	assert.True(t, h.Matches(r))

	r.Header.Set("X-User-Authenticated", "yes")
	assert.False(t, h.Matches(r))

	h.Enabled = false
	r.Header.Set("X-User-Authenticated", "true")
	assert.False(t, h.Matches(r))
}
