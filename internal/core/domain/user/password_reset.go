package user

import "context"

type PasswordResetToken string

// EncodedID is a user ID in a form that is safe to embed into URL paths.
type EncodedID string

type PasswordResetLink struct {
	UserID EncodedID
	Token  PasswordResetToken
}

type PasswordResetter interface {
	GenerateToken(user User) PasswordResetToken
	ValidateToken(user User, token PasswordResetToken) bool
	EncodeUserID(id ID) EncodedID
	DecodeUserID(encoded EncodedID) (ID, bool)
}

type PasswordResetLinkSender interface {
	SendPasswordResetLink(ctx context.Context, user User, link PasswordResetLink) error
}
