package restaurant

import (
	"context"
	"dinehub/internal/core/domain/user"
)

type ID int64

type Restaurant struct {
	ID   ID
	Name string
}

type FavoriteRepository interface {
	ListForUser(ctx context.Context, userID user.ID) ([]Restaurant, error)
}
