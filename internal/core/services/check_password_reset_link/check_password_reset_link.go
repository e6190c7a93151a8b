package checkpasswordresetlink

import (
	"context"
	e "dinehub/internal/core/domain/errors"
	"dinehub/internal/core/domain/logging"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/core/services"
	"errors"
)

type Input struct {
	Link user.PasswordResetLink
}

type Result struct {
	User user.User
}

type service struct {
	log              logging.Logger
	userRepository   user.UserRepository
	passwordResetter user.PasswordResetter
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordResetter user.PasswordResetter,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordResetter == nil {
		panic(e.NewNilArgumentError("passwordResetter"))
	}
	return &service{
		log:              log,
		userRepository:   userRepository,
		passwordResetter: passwordResetter,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := ResolveUser(ctx, s.userRepository, s.passwordResetter, input.Link)
	if errors.Is(err, context.Canceled) || errors.Is(err, user.ErrInvalidPasswordResetToken) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("uid", input.Link.UserID))
		return result, err
	}
	return Result{User: u}, nil
}

// ResolveUser returns the user the link was issued for.
// Any malformed, stale or foreign link yields user.ErrInvalidPasswordResetToken.
func ResolveUser(
	ctx context.Context,
	userRepository user.UserRepository,
	passwordResetter user.PasswordResetter,
	link user.PasswordResetLink,
) (u user.User, err error) {
	userID, ok := passwordResetter.DecodeUserID(link.UserID)
	if !ok {
		return u, user.ErrInvalidPasswordResetToken
	}
	u, err = userRepository.GetByID(ctx, userID)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return u, user.ErrInvalidPasswordResetToken
	}
	if err != nil {
		return u, err
	}
	if !passwordResetter.ValidateToken(u, link.Token) {
		return u, user.ErrInvalidPasswordResetToken
	}
	return u, nil
}
