package user

import (
	c "dinehub/internal/core/domain/common"
	e "dinehub/internal/core/domain/errors"
	"fmt"
	"strings"
	"time"
)

type ID int64

type Username string

func NewUsername(raw string) Username {
	return Username(strings.TrimSpace(raw))
}

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type SessionToken string

func (t SessionToken) String() string {
	return "***"
}

type User struct {
	ID           ID
	Username     Username
	Email        c.Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
	LastLoginAt  c.Optional[time.Time]
}

func (u *User) Validate() error {
	if u.Username == "" {
		return e.NewInvalidStateError(fmt.Sprintf("username is not set for user %d", u.ID))
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %d", u.ID))
	}
	return nil
}
