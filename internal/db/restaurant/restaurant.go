package restaurant

import (
	"context"
	e "dinehub/internal/core/domain/errors"
	"dinehub/internal/core/domain/restaurant"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/db"
	"fmt"
)

type PgxFavoriteRepository struct {
	db db.DBTX
}

func NewPgxFavoriteRepository(db db.DBTX) *PgxFavoriteRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxFavoriteRepository{db: db}
}

func (r *PgxFavoriteRepository) ListForUser(ctx context.Context, userID user.ID) ([]restaurant.Restaurant, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT r.id, r.name
		FROM user_favorite_restaurant f
		JOIN restaurant r ON r.id = f.restaurant_id
		WHERE f.user_id = $1
		ORDER BY r.name, r.id`,
		int64(userID),
	)
	if err != nil {
		return nil, fmt.Errorf("could not list favorite restaurants: %w", err)
	}
	defer rows.Close()

	result := make([]restaurant.Restaurant, 0)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		result = append(result, restaurant.Restaurant{ID: restaurant.ID(id), Name: name})
	}
	return result, rows.Err()
}
