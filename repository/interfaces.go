package repository

import (
	"context"

	"taskshare/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByUsernameAndEmail(ctx context.Context, username, email string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	DeleteByUsername(ctx context.Context, username string) error
}

// TaskRepositoryI defines operations on Task entities.
type TaskRepositoryI interface {
	Create(ctx context.Context, t *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	ListByOwner(ctx context.Context, owner string) ([]models.Task, error)
	ListVisibleTo(ctx context.Context, username string) ([]models.Task, error)
	UpdateTitle(ctx context.Context, id int64, title string) error
	MarkCompleted(ctx context.Context, id int64) error
	AddShare(ctx context.Context, id int64, username string) error
	Delete(ctx context.Context, id int64) error
	DeleteByOwner(ctx context.Context, owner string) error
}
