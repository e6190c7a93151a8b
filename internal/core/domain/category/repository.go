package category

import (
	"context"
	"dinehub/internal/core/domain/user"
)

type Repository interface {
	GetByName(ctx context.Context, name Name) (Category, error)
}

// PreferenceRepository manages the set of categories a user is interested in.
// Add of an already preferred category and Remove of an absent one are no-ops.
type PreferenceRepository interface {
	Add(ctx context.Context, userID user.ID, categoryID ID) error
	Remove(ctx context.Context, userID user.ID, categoryID ID) error
	ListForUser(ctx context.Context, userID user.ID) ([]Category, error)
}
