package user

import (
	"errors"
)

var (
	ErrUsernameAlreadyExists     = errors.New("username already exists")
	ErrEmailAlreadyExists        = errors.New("email already exists")
	ErrUserDoesNotExist          = errors.New("user does not exist")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrSessionDoesNotExist       = errors.New("session does not exist")
	ErrInvalidPasswordResetToken = errors.New("invalid password reset token")
)
