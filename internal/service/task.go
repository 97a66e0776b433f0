package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"taskshare/internal/apperr"
	"taskshare/internal/auth"
	"taskshare/models"
	"taskshare/repository"
)

// TaskService owns the Task lifecycle. Select-by-index operations act on a
// listing the caller fetched immediately before prompting, so the 1-based
// index always refers to the list the user is looking at; there is no durable
// cursor across operations.
type TaskService struct {
	users  repository.UserRepositoryI
	tasks  repository.TaskRepositoryI
	logger *slog.Logger
}

func NewTaskService(users repository.UserRepositoryI, tasks repository.TaskRepositoryI, logger *slog.Logger) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{users: users, tasks: tasks, logger: logger}
}

// selectFrom resolves a 1-based index against a just-fetched listing.
func selectFrom(list []models.Task, index int) (*models.Task, error) {
	if index < 1 || index > len(list) {
		return nil, apperr.ErrInvalidSelection
	}
	return &list[index-1], nil
}

// Add creates a task owned by the active user, not completed, share set empty.
func (s *TaskService) Add(ctx context.Context, sess *auth.Session, title string) (*models.Task, error) {
	u, err := sess.User()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("task title is required")
	}
	t, err := s.tasks.Create(ctx, &models.Task{Title: title, OwnerUsername: u.Username})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	s.logger.Info("task added", slog.String("owner", u.Username), slog.Int64("id", t.ID))
	return t, nil
}

// ListVisible returns the tasks the active user owns plus those shared with
// them. An empty result is a valid "no tasks" outcome, not an error.
func (s *TaskService) ListVisible(ctx context.Context, sess *auth.Session) ([]models.Task, error) {
	u, err := sess.User()
	if err != nil {
		return nil, err
	}
	list, err := s.tasks.ListVisibleTo(ctx, u.Username)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return list, nil
}

// ListOwned returns only the active user's own tasks, the listing that
// edit/delete/share selections run over.
func (s *TaskService) ListOwned(ctx context.Context, sess *auth.Session) ([]models.Task, error) {
	u, err := sess.User()
	if err != nil {
		return nil, err
	}
	list, err := s.tasks.ListByOwner(ctx, u.Username)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return list, nil
}

// EditTitle renames the owner's task at the 1-based index into owned.
// Tasks merely shared with the user are not editable, which falls out of the
// listing: owned never contains them.
func (s *TaskService) EditTitle(ctx context.Context, sess *auth.Session, owned []models.Task, index int, newTitle string) error {
	if _, err := sess.User(); err != nil {
		return err
	}
	t, err := selectFrom(owned, index)
	if err != nil {
		return err
	}
	if strings.TrimSpace(newTitle) == "" {
		return errors.New("task title is required")
	}
	if err := s.tasks.UpdateTitle(ctx, t.ID, newTitle); err != nil {
		return fmt.Errorf("update title: %w", err)
	}
	return nil
}

// Complete marks the task at the 1-based index into visible as done. Anyone
// who can see a task may complete it, so visible is the owned-or-shared list.
func (s *TaskService) Complete(ctx context.Context, sess *auth.Session, visible []models.Task, index int) error {
	if _, err := sess.User(); err != nil {
		return err
	}
	t, err := selectFrom(visible, index)
	if err != nil {
		return err
	}
	if err := s.tasks.MarkCompleted(ctx, t.ID); err != nil {
		return fmt.Errorf("complete task: %w", err)
	}
	return nil
}

// Delete permanently removes the owner's task at the 1-based index into owned.
func (s *TaskService) Delete(ctx context.Context, sess *auth.Session, owned []models.Task, index int) error {
	u, err := sess.User()
	if err != nil {
		return err
	}
	t, err := selectFrom(owned, index)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, t.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	s.logger.Info("task deleted", slog.String("owner", u.Username), slog.Int64("id", t.ID))
	return nil
}

// Share grants target visibility into the owner's task at the 1-based index
// into owned. The target must exist; the selection is checked after the
// target, matching the interactive flow. Repeated shares append repeated
// grants.
func (s *TaskService) Share(ctx context.Context, sess *auth.Session, owned []models.Task, index int, target string) error {
	u, err := sess.User()
	if err != nil {
		return err
	}
	other, err := s.users.GetByUsername(ctx, target)
	if err != nil {
		return fmt.Errorf("lookup username: %w", err)
	}
	if other == nil {
		return apperr.ErrUnknownUser
	}
	t, err := selectFrom(owned, index)
	if err != nil {
		return err
	}
	if err := s.tasks.AddShare(ctx, t.ID, target); err != nil {
		return fmt.Errorf("share task: %w", err)
	}
	s.logger.Info("task shared",
		slog.String("owner", u.Username),
		slog.String("with", target),
		slog.Int64("id", t.ID),
	)
	return nil
}
