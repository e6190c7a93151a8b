package deletepreference

import (
	"context"
	"dinehub/internal/core/domain/category"
	e "dinehub/internal/core/domain/errors"
	"dinehub/internal/core/domain/logging"
	uow "dinehub/internal/core/domain/unit_of_work"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/core/services"
	"dinehub/internal/core/services/auth"
	"errors"
)

type Input struct {
	Category category.Name
	User     user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	Category category.Category
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	return &service{
		log:        log,
		unitOfWork: unitOfWork,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not begin unit of work.", logging.Entry("err", err))
		return result, err
	}
	defer uow.Rollback(ctx)

	c, err := uow.Categories().GetByName(ctx, input.Category)
	if errors.Is(err, context.Canceled) || errors.Is(err, category.ErrCategoryDoesNotExist) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get category.",
			logging.Entry("category", input.Category),
			logging.Entry("err", err),
		)
		return result, err
	}

	err = uow.Preferences().Remove(ctx, input.User.ID, c.ID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not remove preference.",
			logging.Entry("userId", input.User.ID),
			logging.Entry("categoryId", c.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		s.log.Error(ctx, "Could not commit unit of work.", logging.Entry("err", err))
		return result, err
	}

	s.log.Info(
		ctx,
		"Preference has been removed.",
		logging.Entry("userId", input.User.ID),
		logging.Entry("categoryId", c.ID),
	)
	return Result{Category: c}, nil
}
