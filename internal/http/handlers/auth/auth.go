package auth

import (
	"context"
	"crypto/sha256"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/core/services"
	"dinehub/internal/core/services/auth"
	getuserbysessiontoken "dinehub/internal/core/services/get_user_by_session_token"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const AUTH_TOKEN_MAX_LEN = 1024

// SessionCookie carries the session token in a signed and encrypted cookie.
type SessionCookie struct {
	name   string
	ttl    time.Duration
	secure bool
	codec  *securecookie.SecureCookie
}

func NewSessionCookie(name string, secret string, ttl time.Duration, secure bool) *SessionCookie {
	hashKey := sha256.Sum256([]byte("session-hash:" + secret))
	blockKey := sha256.Sum256([]byte("session-block:" + secret))
	codec := securecookie.New(hashKey[:], blockKey[:])
	codec.MaxAge(int(ttl / time.Second))
	return &SessionCookie{
		name:   name,
		ttl:    ttl,
		secure: secure,
		codec:  codec,
	}
}

func (c *SessionCookie) Encode(token user.SessionToken) (*http.Cookie, error) {
	value, err := c.codec.Encode(c.name, string(token))
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.ttl / time.Second),
		Secure:   c.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Expired returns a cookie that makes the client drop the session cookie.
func (c *SessionCookie) Expired() *http.Cookie {
	return &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   c.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (c *SessionCookie) Parse(r *http.Request) (token user.SessionToken, ok bool) {
	cookie, err := r.Cookie(c.name)
	if err != nil {
		return token, false
	}
	var value string
	if err := c.codec.Decode(c.name, cookie.Value, &value); err != nil {
		return token, false
	}
	if value == "" || len(value) > AUTH_TOKEN_MAX_LEN {
		return token, false
	}
	return user.SessionToken(value), true
}

func (c *SessionCookie) SetAuthTokenToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := c.Parse(r)
		if ok {
			ctx := context.WithValue(r.Context(), auth.CONTEXT_AUTH_TOKEN_KEY, token)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func Token(ctx context.Context) (token user.SessionToken, ok bool) {
	token, ok = ctx.Value(auth.CONTEXT_AUTH_TOKEN_KEY).(user.SessionToken)
	return token, ok
}

// RedirectAuthenticated sends callers with a live session to url.
func RedirectAuthenticated(
	service services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result],
	url string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := Token(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			if _, err := service.Run(r.Context(), getuserbysessiontoken.Input{Token: token}); err == nil {
				http.Redirect(w, r, url, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
