package schema

import (
	c "dinehub/internal/core/domain/common"
	"dinehub/internal/core/domain/user"
	"encoding/json"
)

// PasswordResetLink is the message published for every requested password reset.
type PasswordResetLink struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	UID      string `json:"uid"`
	Token    string `json:"token"`
}

func NewPasswordResetLink(u user.User, link user.PasswordResetLink) PasswordResetLink {
	return PasswordResetLink{
		UserID:   int64(u.ID),
		Username: string(u.Username),
		Email:    string(u.Email),
		UID:      string(link.UserID),
		Token:    string(link.Token),
	}
}

func (m *PasswordResetLink) User() user.User {
	return user.User{
		ID:       user.ID(m.UserID),
		Username: user.Username(m.Username),
		Email:    c.Email(m.Email),
	}
}

func (m *PasswordResetLink) Link() user.PasswordResetLink {
	return user.PasswordResetLink{
		UserID: user.EncodedID(m.UID),
		Token:  user.PasswordResetToken(m.Token),
	}
}

func (m *PasswordResetLink) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *PasswordResetLink) Unmarshal(data []byte) error {
	return json.Unmarshal(data, m)
}
