package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "taskshare"

// ErrNoSession is returned by Resume when no saved session token exists.
var ErrNoSession = errors.New("no saved session")

// TokenManager issues and validates signed resume tokens so a login can
// survive a process restart. Tokens are HS256 JWTs written to a local file;
// an empty path disables persistence entirely.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	path   string
}

func NewTokenManager(secret string, ttl time.Duration, path string) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, path: path}
}

// Enabled reports whether resume tokens are persisted at all.
func (m *TokenManager) Enabled() bool {
	return m.path != ""
}

// Issue signs a resume token for username.
func (m *TokenManager) Issue(username string) (string, error) {
	if len(m.secret) == 0 {
		return "", errors.New("session secret is empty")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ID:        uuid.NewString(),
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse validates a resume token and returns the username it names.
func (m *TokenManager) Parse(tokenStr string) (string, error) {
	if len(m.secret) == 0 {
		return "", errors.New("session secret is empty")
	}
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return "", err
	}
	if !tok.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

// Save issues a token for username and persists it. A disabled manager is a no-op.
func (m *TokenManager) Save(username string) error {
	if !m.Enabled() {
		return nil
	}
	tok, err := m.Issue(username)
	if err != nil {
		return err
	}
	if err := os.WriteFile(m.path, []byte(tok+"\n"), 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Resume reads the persisted token and returns the username it was issued to.
// A missing file, a disabled manager, or an expired/invalid token yields
// ErrNoSession so callers can treat all three as "start logged out".
func (m *TokenManager) Resume() (string, error) {
	if !m.Enabled() {
		return "", ErrNoSession
	}
	raw, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoSession
		}
		return "", err
	}
	username, err := m.Parse(strings.TrimSpace(string(raw)))
	if err != nil {
		// Stale or tampered token: drop it rather than erroring every start.
		_ = m.Clear()
		return "", ErrNoSession
	}
	return username, nil
}

// Clear removes the persisted token, if any.
func (m *TokenManager) Clear() error {
	if !m.Enabled() {
		return nil
	}
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
