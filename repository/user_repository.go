package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"taskshare/internal/apperr"
	"taskshare/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// mapUserUniqueViolation translates sqlite unique-index violations on the
// users table into the duplicate sentinels. The indexes are the backstop for
// the non-atomic availability pre-check in the account service.
func mapUserUniqueViolation(err error) error {
	var serr sqlite3.Error
	if !errors.As(err, &serr) || serr.ExtendedCode != sqlite3.ErrConstraintUnique {
		return err
	}
	msg := serr.Error()
	switch {
	case strings.Contains(msg, "users.username"):
		return apperr.ErrDuplicateUsername
	case strings.Contains(msg, "users.email"):
		return apperr.ErrDuplicateEmail
	}
	return err
}

// Create inserts a new user and returns it with its generated ID.
// Duplicate username/email surface as apperr.ErrDuplicateUsername/Email.
func (r *UserRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if u == nil {
		return nil, errors.New("user is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`,
		u.Username, u.Email, u.PasswordHash)
	if err != nil {
		return nil, mapUserUniqueViolation(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.getByQuery(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE id = ?`, id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.getByQuery(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE username = ?`, username)
}

// GetByUsernameAndEmail is the forgot-password lookup: both values must match
// the same row.
func (r *UserRepository) GetByUsernameAndEmail(ctx context.Context, username, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.getByQuery(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE username = ? AND email = ?`, username, email)
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, hash, id)
	return err
}

func (r *UserRepository) DeleteByUsername(ctx context.Context, username string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE username = ?`, username)
	return err
}

// getByQuery runs a single-row user lookup. A missing row returns (nil, nil).
func (r *UserRepository) getByQuery(ctx context.Context, query string, args ...any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
