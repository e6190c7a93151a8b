package uow

import (
	"context"
	"dinehub/internal/core/domain/category"
	"dinehub/internal/core/domain/user"
	"errors"
)

type FakeUnitOfWorkContext struct {
	UserRepository       *user.FakeUserRepository
	CategoryRepository   *category.FakeRepository
	PreferenceRepository *category.FakePreferenceRepository
	WasRollbackCalled    bool
	WasCommitCalled      bool
}

func NewFakeUnitOfWorkContext(
	userRepository *user.FakeUserRepository,
	categoryRepository *category.FakeRepository,
	preferenceRepository *category.FakePreferenceRepository,
) *FakeUnitOfWorkContext {
	return &FakeUnitOfWorkContext{
		UserRepository:       userRepository,
		CategoryRepository:   categoryRepository,
		PreferenceRepository: preferenceRepository,
	}
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.WasRollbackCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	c.WasCommitCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Users() user.UserRepository {
	return c.UserRepository
}

func (c *FakeUnitOfWorkContext) Categories() category.Repository {
	return c.CategoryRepository
}

func (c *FakeUnitOfWorkContext) Preferences() category.PreferenceRepository {
	return c.PreferenceRepository
}

type FakeUnitOfWork struct {
	Context     *FakeUnitOfWorkContext
	ReturnError bool
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	categoryRepository := category.NewFakeRepository()
	return &FakeUnitOfWork{
		Context: NewFakeUnitOfWorkContext(
			user.NewFakeUserRepository(),
			categoryRepository,
			category.NewFakePreferenceRepository(categoryRepository),
		),
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	if u.ReturnError {
		return nil, errors.New("could not begin unit of work")
	}
	return u.Context, nil
}
