package getuserbysessiontoken

import (
	"context"
	"dinehub/internal/core/domain/logging"
	"dinehub/internal/core/domain/user"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserReturnedForValidToken(t *testing.T) {
	userRepository := user.NewFakeUserRepository()
	userRepository.Users = []user.User{{ID: 1, Username: "alice", PasswordHash: "hash"}}
	sessionRepository := user.NewFakeSessionRepository(userRepository)
	sessionRepository.UserIdByToken["token"] = 1
	service := New(logging.NewFakeLogger(), sessionRepository)

	result, err := service.Run(context.Background(), Input{Token: "token"})

	require.NoError(t, err)
	require.Equal(t, user.ID(1), result.User.ID)
}

func TestErrorReturnedForUnknownToken(t *testing.T) {
	userRepository := user.NewFakeUserRepository()
	log := logging.NewFakeLogger()
	service := New(log, user.NewFakeSessionRepository(userRepository))

	_, err := service.Run(context.Background(), Input{Token: "unknown"})

	require.ErrorIs(t, err, user.ErrUserDoesNotExist)
	require.Equal(t, 0, log.CountByLevel(logging.ERROR))
}
