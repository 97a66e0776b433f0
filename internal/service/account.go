// Package service implements the account and task managers. Every operation
// takes the active Session explicitly; nothing here holds ambient user state.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"taskshare/internal/apperr"
	"taskshare/internal/auth"
	"taskshare/models"
	"taskshare/repository"
)

// AccountService owns the User lifecycle: registration, credential
// verification, password change and recovery, and account deletion with its
// task cascade.
type AccountService struct {
	users  repository.UserRepositoryI
	tasks  repository.TaskRepositoryI
	tokens *auth.TokenManager
	cost   int
	logger *slog.Logger
}

func NewAccountService(
	users repository.UserRepositoryI,
	tasks repository.TaskRepositoryI,
	tokens *auth.TokenManager,
	bcryptCost int,
	logger *slog.Logger,
) *AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{users: users, tasks: tasks, tokens: tokens, cost: bcryptCost, logger: logger}
}

// UsernameTaken reports whether username is already registered. The menu uses
// it to re-prompt during registration; the unique index in the store remains
// the authoritative check.
func (s *AccountService) UsernameTaken(ctx context.Context, username string) (bool, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("lookup username: %w", err)
	}
	return u != nil, nil
}

// Register creates a new account. It fails with apperr.ErrDuplicateUsername
// when the name is taken, apperr.ErrWeakPassword when the password fails the
// policy, and apperr.ErrDuplicateEmail when the store rejects the email.
// The pre-check and insert are not atomic; a losing race still surfaces the
// right sentinel because the repository maps the index violation.
func (s *AccountService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("lookup username: %w", err)
	}
	if existing != nil {
		return nil, apperr.ErrDuplicateUsername
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(password, s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.users.Create(ctx, &models.User{Username: username, Email: email, PasswordHash: hash})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", slog.String("username", username))
	return u, nil
}

// Login verifies credentials and installs the user into sess. Unknown
// usernames and wrong passwords report the same sentinel.
func (s *AccountService) Login(ctx context.Context, sess *auth.Session, username, password string) error {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("lookup username: %w", err)
	}
	if u == nil || !auth.CheckPassword(password, u.PasswordHash) {
		s.logger.Info("login rejected", slog.String("username", username))
		return apperr.ErrInvalidCredentials
	}
	sess.SetUser(u)
	if err := s.tokens.Save(u.Username); err != nil {
		// The login itself succeeded; a stale resume file only costs a re-login later.
		s.logger.Warn("save session token", slog.String("error", err.Error()))
	}
	s.logger.Info("user logged in", slog.String("username", username))
	return nil
}

// Resume restores a previously saved session, if a valid resume token exists
// and its user is still registered. Absence of a token is not an error.
func (s *AccountService) Resume(ctx context.Context, sess *auth.Session) error {
	username, err := s.tokens.Resume()
	if err != nil {
		if errors.Is(err, auth.ErrNoSession) {
			return nil
		}
		return err
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("lookup username: %w", err)
	}
	if u == nil {
		// Account deleted since the token was issued.
		return s.tokens.Clear()
	}
	sess.SetUser(u)
	s.logger.Info("session resumed", slog.String("username", username))
	return nil
}

// ResetPassword changes the password after proving the current one.
func (s *AccountService) ResetPassword(ctx context.Context, username, currentPassword, newPassword string) error {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("lookup username: %w", err)
	}
	if u == nil {
		return apperr.ErrUserNotFound
	}
	if !auth.CheckPassword(currentPassword, u.PasswordHash) {
		return apperr.ErrIncorrectPassword
	}
	return s.updatePassword(ctx, u, newPassword)
}

// ForgotPassword is the recovery path: a matching (username, email) pair
// stands in for the current password. Lower assurance than ResetPassword,
// so recoveries are logged at Warn.
func (s *AccountService) ForgotPassword(ctx context.Context, username, email, newPassword string) error {
	u, err := s.users.GetByUsernameAndEmail(ctx, username, email)
	if err != nil {
		return fmt.Errorf("lookup username and email: %w", err)
	}
	if u == nil {
		return apperr.ErrUserNotFound
	}
	if err := s.updatePassword(ctx, u, newPassword); err != nil {
		return err
	}
	s.logger.Warn("password recovered via email match", slog.String("username", username))
	return nil
}

func (s *AccountService) updatePassword(ctx context.Context, u *models.User, newPassword string) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := auth.HashPassword(newPassword, s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePasswordHash(ctx, u.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// DeleteAccount removes the active user after a password proof, cascades to
// every task they own, and clears the session. Share grants naming the deleted
// user on other owners' tasks are left behind.
func (s *AccountService) DeleteAccount(ctx context.Context, sess *auth.Session, password string) error {
	u, err := sess.User()
	if err != nil {
		return err
	}
	if !auth.CheckPassword(password, u.PasswordHash) {
		return apperr.ErrIncorrectPassword
	}
	if err := s.tasks.DeleteByOwner(ctx, u.Username); err != nil {
		return fmt.Errorf("delete owned tasks: %w", err)
	}
	if err := s.users.DeleteByUsername(ctx, u.Username); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	sess.Clear()
	if err := s.tokens.Clear(); err != nil {
		s.logger.Warn("clear session token", slog.String("error", err.Error()))
	}
	s.logger.Info("account deleted", slog.String("username", u.Username))
	return nil
}
