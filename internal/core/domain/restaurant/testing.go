package restaurant

import (
	"context"
	"dinehub/internal/core/domain/user"
	"fmt"
	"sync"
)

type FakeFavoriteRepository struct {
	ByUser      map[user.ID][]Restaurant
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeFavoriteRepository() *FakeFavoriteRepository {
	return &FakeFavoriteRepository{ByUser: make(map[user.ID][]Restaurant)}
}

func (r *FakeFavoriteRepository) ListForUser(ctx context.Context, userID user.ID) ([]Restaurant, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list favorite restaurants of user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]Restaurant(nil), r.ByUser[userID]...), nil
}
