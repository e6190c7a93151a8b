package category

import (
	"context"
	"dinehub/internal/core/domain/user"
	"fmt"
	"sort"
	"sync"
)

type FakeRepository struct {
	Categories  []Category
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeRepository(names ...Name) *FakeRepository {
	r := &FakeRepository{}
	for ix, name := range names {
		r.Categories = append(r.Categories, Category{ID: ID(ix + 1), Name: name})
	}
	return r
}

func (r *FakeRepository) GetByName(ctx context.Context, name Name) (c Category, err error) {
	if r.ReturnError {
		return c, fmt.Errorf("could not get category %s", name)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, c := range r.Categories {
		if c.Name == name {
			return c, nil
		}
	}
	return c, ErrCategoryDoesNotExist
}

func (r *FakeRepository) getByID(id ID) (Category, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, c := range r.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

type FakePreferenceRepository struct {
	Categories  *FakeRepository
	ByUser      map[user.ID]map[ID]struct{}
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePreferenceRepository(categories *FakeRepository) *FakePreferenceRepository {
	return &FakePreferenceRepository{
		Categories: categories,
		ByUser:     make(map[user.ID]map[ID]struct{}),
	}
}

func (r *FakePreferenceRepository) Add(ctx context.Context, userID user.ID, categoryID ID) error {
	if r.ReturnError {
		return fmt.Errorf("could not add preference %d for user %d", categoryID, userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.ByUser[userID]; !ok {
		r.ByUser[userID] = make(map[ID]struct{})
	}
	r.ByUser[userID][categoryID] = struct{}{}
	return nil
}

func (r *FakePreferenceRepository) Remove(ctx context.Context, userID user.ID, categoryID ID) error {
	if r.ReturnError {
		return fmt.Errorf("could not remove preference %d for user %d", categoryID, userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	delete(r.ByUser[userID], categoryID)
	return nil
}

func (r *FakePreferenceRepository) ListForUser(ctx context.Context, userID user.ID) ([]Category, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list preferences of user %d", userID)
	}
	r.lock.Lock()
	ids := make([]ID, 0, len(r.ByUser[userID]))
	for id := range r.ByUser[userID] {
		ids = append(ids, id)
	}
	r.lock.Unlock()

	result := make([]Category, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.Categories.getByID(id); ok {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
