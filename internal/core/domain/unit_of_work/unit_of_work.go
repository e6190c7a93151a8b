package uow

import (
	"context"
	"dinehub/internal/core/domain/category"
	"dinehub/internal/core/domain/user"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Users() user.UserRepository
	Categories() category.Repository
	Preferences() category.PreferenceRepository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
