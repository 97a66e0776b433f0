package models

// User represents a registered account.
// It maps to the `users` table in SQLite. Username and email are each
// globally unique; the store enforces both with unique indexes.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	CreatedAt    string `db:"created_at" json:"created_at"`
}
