package api

import (
	"crypto/rand"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/GlintPay/storefront/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrLoginDisabled = errors.New("admin login is not configured")
)

const adminSubject = "admin"

// Auth guards the admin routes. Without a configured password every request is let through.
type Auth struct {
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	Now          func() time.Time
}

func NewAuth(cfg config.AdminConfig) (*Auth, error) {
	auth := &Auth{
		ttl: time.Duration(cfg.TokenTtlHours) * time.Hour,
		Now: time.Now,
	}

	if cfg.Password == "" {
		log.Warn().Msg("No admin password configured, admin routes are open")
		return auth, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	auth.passwordHash = hash

	if cfg.JwtSecret != "" {
		auth.secret = []byte(cfg.JwtSecret)
	} else {
		log.Warn().Msg("No JWT secret configured, admin sessions end on restart")
		auth.secret = make([]byte, 32)
		if _, err = rand.Read(auth.secret); err != nil {
			return nil, err
		}
	}

	return auth, nil
}

func (a *Auth) Enabled() bool {
	return len(a.passwordHash) > 0
}

// Login exchanges the admin password for a signed token
func (a *Auth) Login(password string) (string, time.Time, error) {
	if !a.Enabled() {
		return "", time.Time{}, ErrLoginDisabled
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return "", time.Time{}, ErrUnauthorized
	}

	now := a.Now()
	expires := now.Add(a.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   adminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	})

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

func (a *Auth) Verify(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(a.Now), jwt.WithSubject(adminSubject))

	if err != nil || !token.Valid {
		return ErrUnauthorized
	}
	return nil
}

// Require rejects requests without a valid bearer token
func (a *Auth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		scheme, tokenString, ok := strings.Cut(r.Header.Get("Authorization"), " ")
		if !ok || scheme != "Bearer" || a.Verify(tokenString) != nil {
			writeError(w, ErrUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
