// Package apperr defines the sentinel errors shared by the account and task
// services. Messages double as the user-facing text printed by the menu, so
// they are phrased for people, not logs.
package apperr

import "errors"

var (
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrWeakPassword      = errors.New("password must be at least 8 characters long and contain a letter, a number and a special character")
	// ErrInvalidCredentials deliberately does not say whether the username
	// exists, to avoid username enumeration.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("username not found")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrUnknownUser        = errors.New("username to share with does not exist")
	ErrInvalidSelection   = errors.New("invalid task number")
	ErrNotLoggedIn        = errors.New("you need to log in first")
)
