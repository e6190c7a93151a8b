package user

import (
	"context"
	c "dinehub/internal/core/domain/common"
	e "dinehub/internal/core/domain/errors"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/db"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
)

const (
	USERNAME_CONSTRAINT_NAME = "user_username_uniq"
	EMAIL_CONSTRAINT_NAME    = "user_email_uniq"
)

const userColumns = `id, username, email, password_hash, created_at, last_login_at`

type PgxUserRepository struct {
	db db.DBTX
}

func NewPgxRepository(db db.DBTX) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		string(input.Username),
		string(input.Email),
		string(input.PasswordHash),
		input.CreatedAt,
	)
	u, err = decodeUser(row)
	if constraint, ok := db.UniqueViolation(err); ok {
		switch constraint {
		case USERNAME_CONSTRAINT_NAME:
			return u, user.ErrUsernameAlreadyExists
		case EMAIL_CONSTRAINT_NAME:
			return u, user.ErrEmailAlreadyExists
		}
	}
	if err != nil {
		return u, fmt.Errorf("could not create user: %w", err)
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, int64(id))
}

func (r *PgxUserRepository) GetByUsername(ctx context.Context, username user.Username) (user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM "user" WHERE username = $1`, string(username))
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM "user" WHERE email = $1`, string(email))
}

func (r *PgxUserRepository) SetPassword(ctx context.Context, id user.ID, password user.PasswordHash) error {
	tag, err := r.db.Exec(ctx, `UPDATE "user" SET password_hash = $2 WHERE id = $1`, int64(id), string(password))
	if err != nil {
		return fmt.Errorf("could not set password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) SetLastLogin(ctx context.Context, id user.ID, at time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE "user" SET last_login_at = $2 WHERE id = $1`, int64(id), at)
	if err != nil {
		return fmt.Errorf("could not set last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) getOne(ctx context.Context, query string, arg interface{}) (u user.User, err error) {
	u, err = decodeUser(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func decodeUser(row pgx.Row) (u user.User, err error) {
	var (
		id           int64
		username     string
		email        string
		passwordHash string
		createdAt    time.Time
		lastLoginAt  *time.Time
	)
	if err := row.Scan(&id, &username, &email, &passwordHash, &createdAt, &lastLoginAt); err != nil {
		return u, err
	}
	u = user.User{
		ID:           user.ID(id),
		Username:     user.Username(username),
		Email:        c.Email(email),
		PasswordHash: user.PasswordHash(passwordHash),
		CreatedAt:    createdAt,
	}
	if lastLoginAt != nil {
		u.LastLoginAt = c.NewOptional(*lastLoginAt, true)
	}
	return u, nil
}
