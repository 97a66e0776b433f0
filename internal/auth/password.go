package auth

import (
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"taskshare/internal/apperr"
)

// AllowedSymbols is the fixed symbol set the password policy accepts.
const AllowedSymbols = "@$!%*?&"

// passwordAlphabet restricts passwords to letters, digits and AllowedSymbols,
// with a minimum length of 8.
var passwordAlphabet = regexp.MustCompile(`^[A-Za-z0-9@$!%*?&]{8,}$`)

// ValidatePassword checks the registration password policy: length >= 8,
// at least one letter, one digit and one symbol from AllowedSymbols, and no
// characters outside that alphabet. Returns apperr.ErrWeakPassword otherwise.
func ValidatePassword(password string) error {
	if !passwordAlphabet.MatchString(password) {
		return apperr.ErrWeakPassword
	}
	hasLetter := strings.ContainsFunc(password, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	})
	hasDigit := strings.ContainsFunc(password, func(r rune) bool {
		return r >= '0' && r <= '9'
	})
	if !hasLetter || !hasDigit || !strings.ContainsAny(password, AllowedSymbols) {
		return apperr.ErrWeakPassword
	}
	return nil
}

// HashPassword produces a one-way bcrypt digest of password. cost outside
// bcrypt's valid range falls back to the library default.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
