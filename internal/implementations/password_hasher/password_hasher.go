package passwordhasher

import (
	"crypto/hmac"
	"crypto/sha256"
	"dinehub/internal/core/domain/user"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt hashes the HMAC-SHA256 of a password keyed with the application secret.
// bcrypt reads at most 72 bytes, so the digest keeps every byte of the password
// and of the secret significant.
type Bcrypt struct {
	secret []byte
	cost   int
}

func NewBcrypt(secret string, cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{secret: []byte(secret), cost: cost}
}

func (h *Bcrypt) HashPassword(password user.RawPassword) (hash user.PasswordHash, err error) {
	bcryptHash, err := bcrypt.GenerateFromPassword(h.digest(password), h.cost)
	if err != nil {
		return hash, err
	}
	return user.PasswordHash(bcryptHash), nil
}

func (h *Bcrypt) ValidatePassword(password user.RawPassword, hash user.PasswordHash) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), h.digest(password))
	return err == nil
}

// digest is 44 bytes of base64 text.
func (h *Bcrypt) digest(password user.RawPassword) []byte {
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(password))
	sum := mac.Sum(nil)
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum)
	return out
}
