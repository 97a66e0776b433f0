package testutil

import (
	"context"
	"database/sql"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"taskshare/internal/auth"
	"taskshare/internal/db"
	"taskshare/models"
	"taskshare/repository"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// A shared-cache named database lets multiple connections see the same data.
// Closing is registered via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// MustCreateUser inserts a user with the given plaintext password hashed at
// bcrypt.MinCost to keep tests fast.
func MustCreateUser(t *testing.T, d *sql.DB, username, password, email string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u, err := repository.NewUserRepository(d).Create(context.Background(), &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("create user %q: %v", username, err)
	}
	return u
}
