package getaccountdetails

import (
	"context"
	"dinehub/internal/core/domain/category"
	e "dinehub/internal/core/domain/errors"
	"dinehub/internal/core/domain/logging"
	"dinehub/internal/core/domain/restaurant"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/core/services"
	"dinehub/internal/core/services/auth"
)

type Input struct {
	User user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	User        user.User
	Favorites   []restaurant.Restaurant
	Preferences []category.Category
}

type service struct {
	log                  logging.Logger
	favoriteRepository   restaurant.FavoriteRepository
	preferenceRepository category.PreferenceRepository
}

func New(
	log logging.Logger,
	favoriteRepository restaurant.FavoriteRepository,
	preferenceRepository category.PreferenceRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if favoriteRepository == nil {
		panic(e.NewNilArgumentError("favoriteRepository"))
	}
	if preferenceRepository == nil {
		panic(e.NewNilArgumentError("preferenceRepository"))
	}
	return &service{
		log:                  log,
		favoriteRepository:   favoriteRepository,
		preferenceRepository: preferenceRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	favorites, err := s.favoriteRepository.ListForUser(ctx, input.User.ID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", input.User.ID))
		return result, err
	}
	preferences, err := s.preferenceRepository.ListForUser(ctx, input.User.ID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", input.User.ID))
		return result, err
	}
	return Result{
		User:        input.User,
		Favorites:   favorites,
		Preferences: preferences,
	}, nil
}
