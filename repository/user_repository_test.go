package repository

import (
	"context"
	"errors"
	"testing"

	"taskshare/internal/apperr"
	"taskshare/internal/db"
	"taskshare/models"
)

func TestUserRepository_CRUDAndLookups(t *testing.T) {
	d, err := db.Open("file:userrepo?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewUserRepository(d)
	ctx := context.Background()

	// Create
	u, err := repo.Create(ctx, &models.User{Username: "alice", Email: "a@x.com", PasswordHash: "h1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 || u.Username != "alice" || u.Email != "a@x.com" || u.CreatedAt == "" {
		t.Fatalf("unexpected created user: %+v", u)
	}

	// GetByUsername
	g, err := repo.GetByUsername(ctx, "alice")
	if err != nil || g == nil || g.ID != u.ID || g.PasswordHash != "h1" {
		t.Fatalf("get by username: %v %+v", err, g)
	}

	// Missing username -> (nil, nil)
	gone, err := repo.GetByUsername(ctx, "nobody")
	if err != nil || gone != nil {
		t.Fatalf("expected nil for missing user, got %+v err=%v", gone, err)
	}

	// GetByUsernameAndEmail requires both to match the same row
	g2, err := repo.GetByUsernameAndEmail(ctx, "alice", "a@x.com")
	if err != nil || g2 == nil || g2.ID != u.ID {
		t.Fatalf("get by username+email: %v %+v", err, g2)
	}
	mismatch, err := repo.GetByUsernameAndEmail(ctx, "alice", "b@x.com")
	if err != nil || mismatch != nil {
		t.Fatalf("expected nil for mismatched email, got %+v err=%v", mismatch, err)
	}

	// UpdatePasswordHash
	if err := repo.UpdatePasswordHash(ctx, u.ID, "h2"); err != nil {
		t.Fatalf("update password hash: %v", err)
	}
	g3, _ := repo.GetByUsername(ctx, "alice")
	if g3.PasswordHash != "h2" {
		t.Fatalf("hash not updated: %+v", g3)
	}

	// DeleteByUsername
	if err := repo.DeleteByUsername(ctx, "alice"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	deleted, err := repo.GetByUsername(ctx, "alice")
	if err != nil || deleted != nil {
		t.Fatalf("expected user deleted, got %+v err=%v", deleted, err)
	}
}

func TestUserRepository_UniqueConstraints(t *testing.T) {
	d, err := db.Open("file:userrepo_unique?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	repo := NewUserRepository(d)
	ctx := context.Background()

	if _, err := repo.Create(ctx, &models.User{Username: "alice", Email: "a@x.com", PasswordHash: "h"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Same username, different email
	_, err = repo.Create(ctx, &models.User{Username: "alice", Email: "b@x.com", PasswordHash: "h"})
	if !errors.Is(err, apperr.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	// Different username, same email
	_, err = repo.Create(ctx, &models.User{Username: "bob", Email: "a@x.com", PasswordHash: "h"})
	if !errors.Is(err, apperr.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// The failed inserts must not have left rows behind.
	if u, _ := repo.GetByUsername(ctx, "bob"); u != nil {
		t.Fatalf("rejected insert persisted: %+v", u)
	}
}
