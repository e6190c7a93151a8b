package changepassword

import (
	"context"
	e "dinehub/internal/core/domain/errors"
	"dinehub/internal/core/domain/logging"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/core/services"
	"dinehub/internal/core/services/auth"
)

type Input struct {
	CurrentPassword user.RawPassword
	NewPassword     user.RawPassword
	// VerifyOnly checks CurrentPassword and stores nothing.
	VerifyOnly bool
	User       user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct{}

type service struct {
	log               logging.Logger
	userRepository    user.UserRepository
	sessionRepository user.SessionRepository
	passwordHasher    user.PasswordHasher
}

// New creates the service that replaces the password of the authenticated user.
// Every session of the user ends once the new password is stored.
func New(
	log logging.Logger,
	userRepository user.UserRepository,
	sessionRepository user.SessionRepository,
	passwordHasher user.PasswordHasher,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	return &service{
		log:               log,
		passwordHasher:    passwordHasher,
		userRepository:    userRepository,
		sessionRepository: sessionRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	isCurrentPasswordValid := s.passwordHasher.ValidatePassword(
		input.CurrentPassword,
		input.User.PasswordHash,
	)
	if !isCurrentPasswordValid {
		return result, user.ErrInvalidCredentials
	}
	if input.VerifyOnly {
		return result, nil
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	if err := s.userRepository.SetPassword(ctx, input.User.ID, newPasswordHash); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", input.User.ID))
		return result, err
	}
	if err := s.sessionRepository.DeleteAllForUser(ctx, input.User.ID); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", input.User.ID))
		return result, err
	}

	s.log.Info(ctx, "Password has been changed.", logging.Entry("userId", input.User.ID))
	return Result{}, nil
}
