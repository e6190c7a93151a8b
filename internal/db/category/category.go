package category

import (
	"context"
	"dinehub/internal/core/domain/category"
	e "dinehub/internal/core/domain/errors"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/db"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
)

type PgxCategoryRepository struct {
	db db.DBTX
}

func NewPgxCategoryRepository(db db.DBTX) *PgxCategoryRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxCategoryRepository{db: db}
}

func (r *PgxCategoryRepository) GetByName(ctx context.Context, name category.Name) (c category.Category, err error) {
	var id int64
	var rawName string
	err = r.db.QueryRow(ctx, `SELECT id, name FROM category WHERE name = $1`, string(name)).Scan(&id, &rawName)
	if errors.Is(err, pgx.ErrNoRows) {
		return c, category.ErrCategoryDoesNotExist
	}
	if err != nil {
		return c, fmt.Errorf("could not get category: %w", err)
	}
	return category.Category{ID: category.ID(id), Name: category.Name(rawName)}, nil
}

type PgxPreferenceRepository struct {
	db db.DBTX
}

func NewPgxPreferenceRepository(db db.DBTX) *PgxPreferenceRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxPreferenceRepository{db: db}
}

func (r *PgxPreferenceRepository) Add(ctx context.Context, userID user.ID, categoryID category.ID) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO user_preference (user_id, category_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		int64(userID),
		int64(categoryID),
	)
	if err != nil {
		return fmt.Errorf("could not add preference: %w", err)
	}
	return nil
}

func (r *PgxPreferenceRepository) Remove(ctx context.Context, userID user.ID, categoryID category.ID) error {
	_, err := r.db.Exec(
		ctx,
		`DELETE FROM user_preference WHERE user_id = $1 AND category_id = $2`,
		int64(userID),
		int64(categoryID),
	)
	if err != nil {
		return fmt.Errorf("could not remove preference: %w", err)
	}
	return nil
}

func (r *PgxPreferenceRepository) ListForUser(ctx context.Context, userID user.ID) ([]category.Category, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT c.id, c.name
		FROM user_preference p
		JOIN category c ON c.id = p.category_id
		WHERE p.user_id = $1
		ORDER BY c.name`,
		int64(userID),
	)
	if err != nil {
		return nil, fmt.Errorf("could not list preferences: %w", err)
	}
	defer rows.Close()

	result := make([]category.Category, 0)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		result = append(result, category.Category{ID: category.ID(id), Name: category.Name(name)})
	}
	return result, rows.Err()
}
