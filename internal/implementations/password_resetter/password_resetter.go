package passwordresetter

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"dinehub/internal/core/domain/user"
	"encoding/base64"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"time"
)

var saltChars = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// HMAC issues reset tokens of the form base64("<unix ts>-<salt>-<mac>").
// The MAC covers the user ID and the current password hash, so a token
// stops validating as soon as the password changes.
type HMAC struct {
	secretKey     []byte
	validDuration time.Duration
	now           func() time.Time
}

func NewHMAC(secretKey string, validDuration time.Duration, now func() time.Time) *HMAC {
	return &HMAC{
		secretKey:     []byte(secretKey),
		validDuration: validDuration,
		now:           now,
	}
}

func (h *HMAC) GenerateToken(u user.User) user.PasswordResetToken {
	nowTs := h.now().Unix()
	salt := h.getRandomSalt()
	mac := h.getMac(u.ID, u.PasswordHash, nowTs, salt)
	b64 := base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf("%d-%s-%s", nowTs, salt, mac)))
	return user.PasswordResetToken(b64)
}

func (h *HMAC) ValidateToken(u user.User, token user.PasswordResetToken) bool {
	decodedToken, err := base64.RawURLEncoding.DecodeString(string(token))
	if err != nil {
		return false
	}
	parts := strings.SplitN(string(decodedToken), "-", 3)
	if len(parts) != 3 {
		return false
	}
	ts, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return false
	}
	actualDuration := time.Duration(h.now().Unix()-ts) * time.Second
	if actualDuration > h.validDuration {
		return false
	}
	salt := parts[1]
	mac := parts[2]
	expectedMac := h.getMac(u.ID, u.PasswordHash, ts, salt)
	return subtle.ConstantTimeCompare([]byte(mac), []byte(expectedMac)) == 1
}

func (h *HMAC) EncodeUserID(id user.ID) user.EncodedID {
	return user.EncodedID(base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(int64(id), 10))))
}

func (h *HMAC) DecodeUserID(encoded user.EncodedID) (userID user.ID, ok bool) {
	raw, err := base64.RawURLEncoding.DecodeString(string(encoded))
	if err != nil {
		return userID, false
	}
	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil || id <= 0 {
		return userID, false
	}
	return user.ID(id), true
}

func (h *HMAC) getMac(userID user.ID, passwordHash user.PasswordHash, ts int64, salt string) string {
	hasher := hmac.New(sha256.New, h.secretKey)
	io.WriteString(hasher, fmt.Sprintf("%d-%d-%s-%s", userID, ts, salt, string(passwordHash)))
	return fmt.Sprintf("%x", hasher.Sum(nil))
}

func (h *HMAC) getRandomSalt() string {
	b := make([]rune, 5)
	max := big.NewInt(int64(len(saltChars)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		b[i] = saltChars[n.Int64()]
	}
	return string(b)
}
