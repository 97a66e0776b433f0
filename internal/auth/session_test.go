package auth

import (
	"errors"
	"testing"

	"taskshare/internal/apperr"
	"taskshare/models"
)

func TestSession_EmptySlot(t *testing.T) {
	s := NewSession()
	if s.LoggedIn() {
		t.Fatalf("new session must start logged out")
	}
	if s.Username() != "" {
		t.Fatalf("expected empty username, got %q", s.Username())
	}
	if _, err := s.User(); !errors.Is(err, apperr.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestSession_SetAndClear(t *testing.T) {
	s := NewSession()
	s.SetUser(&models.User{ID: 1, Username: "alice"})
	if !s.LoggedIn() || s.Username() != "alice" {
		t.Fatalf("expected alice logged in")
	}
	u, err := s.User()
	if err != nil || u.Username != "alice" {
		t.Fatalf("user: %v %+v", err, u)
	}
	s.Clear()
	if s.LoggedIn() {
		t.Fatalf("expected session cleared")
	}
}
