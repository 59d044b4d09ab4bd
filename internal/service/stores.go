package service

import (
	"context"

	"github.com/gridwatch/gridboard/internal/model"
)

// Store interfaces consumed by the services. The repo package
// implements them against Postgres; tests implement them in memory.

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, userID string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string, mtime int64) error
}

type DashboardStore interface {
	Create(ctx context.Context, dashboard *model.Dashboard) error
	GetByID(ctx context.Context, id string) (*model.Dashboard, error)
	GetOwned(ctx context.Context, id, ownerID string) (*model.Dashboard, error)
	GetByOwnerAndName(ctx context.Context, ownerID, name string) (*model.Dashboard, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Dashboard, error)
	UpdateContent(ctx context.Context, id, ownerID, layout, items string, nextID int, mtime int64) error
	UpdateName(ctx context.Context, id, ownerID, name string, mtime int64) error
	UpdateShared(ctx context.Context, id, ownerID string, shared bool, mtime int64) error
	UpdatePassword(ctx context.Context, id, ownerID string, hash *string, mtime int64) error
	// IncrementViews must be an atomic read-modify-write on the
	// store side; concurrent callers may not lose updates.
	IncrementViews(ctx context.Context, id string) error
	Delete(ctx context.Context, id, ownerID string) error
}

type ResetStore interface {
	Replace(ctx context.Context, reset *model.PasswordReset) error
	Consume(ctx context.Context, username string) (*model.PasswordReset, error)
	DeleteExpired(ctx context.Context, cutoff int64) (int64, error)
}
