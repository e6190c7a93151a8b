package getaccountdetails

import (
	"context"
	"dinehub/internal/core/domain/category"
	"dinehub/internal/core/domain/logging"
	"dinehub/internal/core/domain/restaurant"
	"dinehub/internal/core/domain/user"
	"testing"

	"github.com/stretchr/testify/require"
)

const USER_ID = user.ID(7)

func TestAccountDetailsCollected(t *testing.T) {
	categories := category.NewFakeRepository("pizza", "burgers", "sushi")
	preferences := category.NewFakePreferenceRepository(categories)
	favorites := restaurant.NewFakeFavoriteRepository()
	favorites.ByUser[USER_ID] = []restaurant.Restaurant{{ID: 1, Name: "Luigi"}}
	ctx := context.Background()
	require.NoError(t, preferences.Add(ctx, USER_ID, 3))
	require.NoError(t, preferences.Add(ctx, USER_ID, 2))
	require.NoError(t, preferences.Add(ctx, USER_ID+1, 1))

	service := New(logging.NewFakeLogger(), favorites, preferences)
	input := Input{}.WithAuthenticatedUser(user.User{ID: USER_ID, Username: "alice"}).(Input)
	result, err := service.Run(ctx, input)

	assert := require.New(t)
	assert.NoError(err)
	assert.Equal(USER_ID, result.User.ID)
	assert.Equal([]restaurant.Restaurant{{ID: 1, Name: "Luigi"}}, result.Favorites)
	assert.Equal([]category.Category{{ID: 2, Name: "burgers"}, {ID: 3, Name: "sushi"}}, result.Preferences)
}

func TestRepositoryFailure(t *testing.T) {
	categories := category.NewFakeRepository("pizza")
	preferences := category.NewFakePreferenceRepository(categories)
	preferences.ReturnError = true
	log := logging.NewFakeLogger()

	service := New(log, restaurant.NewFakeFavoriteRepository(), preferences)
	_, err := service.Run(context.Background(), Input{User: user.User{ID: USER_ID}})

	require.Error(t, err)
	require.Equal(t, 1, log.CountByLevel(logging.ERROR))
}
