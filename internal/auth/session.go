package auth

import (
	"taskshare/internal/apperr"
	"taskshare/models"
)

// Session is the single-slot authentication state for the running process.
// It is passed explicitly into every account and task operation instead of
// living as package-level state, so additional sessions could coexist later.
type Session struct {
	user *models.User
}

func NewSession() *Session {
	return &Session{}
}

// User returns the authenticated user, or apperr.ErrNotLoggedIn when the
// session slot is empty.
func (s *Session) User() (*models.User, error) {
	if s.user == nil {
		return nil, apperr.ErrNotLoggedIn
	}
	return s.user, nil
}

// Username returns the active username, or "" when logged out.
func (s *Session) Username() string {
	if s.user == nil {
		return ""
	}
	return s.user.Username
}

func (s *Session) LoggedIn() bool {
	return s.user != nil
}

// SetUser installs u as the active identity, replacing any previous one.
func (s *Session) SetUser(u *models.User) {
	s.user = u
}

// Clear empties the session slot.
func (s *Session) Clear() {
	s.user = nil
}
