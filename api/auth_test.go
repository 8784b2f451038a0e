package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GlintPay/storefront/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_Login(t *testing.T) {
	auth, err := NewAuth(config.AdminConfig{Password: "pw", JwtSecret: "secret", TokenTtlHours: 1})
	require.NoError(t, err)

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	auth.Now = func() time.Time { return now }

	_, _, err = auth.Login("nope")
	assert.ErrorIs(t, err, ErrUnauthorized)

	token, expires, err := auth.Login("pw")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expires)
	assert.NoError(t, auth.Verify(token))

	now = now.Add(2 * time.Hour)
	assert.ErrorIs(t, auth.Verify(token), ErrUnauthorized, "expired")
}

func TestAuth_OtherSecretRejected(t *testing.T) {
	issuer, err := NewAuth(config.AdminConfig{Password: "pw", JwtSecret: "one", TokenTtlHours: 1})
	require.NoError(t, err)
	verifier, err := NewAuth(config.AdminConfig{Password: "pw", JwtSecret: "two", TokenTtlHours: 1})
	require.NoError(t, err)

	token, _, err := issuer.Login("pw")
	require.NoError(t, err)

	assert.ErrorIs(t, verifier.Verify(token), ErrUnauthorized)
}

func TestAuth_RandomSecret(t *testing.T) {
	auth, err := NewAuth(config.AdminConfig{Password: "pw", TokenTtlHours: 1})
	require.NoError(t, err)

	assert.Len(t, auth.secret, 32)

	token, _, err := auth.Login("pw")
	require.NoError(t, err)
	assert.NoError(t, auth.Verify(token))
}

func TestAuth_Disabled(t *testing.T) {
	auth, err := NewAuth(config.AdminConfig{})
	require.NoError(t, err)
	assert.False(t, auth.Enabled())

	_, _, err = auth.Login("")
	assert.ErrorIs(t, err, ErrLoginDisabled)

	called := false
	handler := auth.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	assert.True(t, called)
}

func TestAuth_Require(t *testing.T) {
	auth, err := NewAuth(config.AdminConfig{Password: "pw", JwtSecret: "secret", TokenTtlHours: 1})
	require.NoError(t, err)

	token, _, err := auth.Login("pw")
	require.NoError(t, err)

	handler := auth.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	tests := []struct {
		name          string
		authorization string
		want          int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusTeapot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}
