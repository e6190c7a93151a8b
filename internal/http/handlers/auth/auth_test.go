package auth

import (
	"context"
	"dinehub/internal/core/domain/user"
	getuserbysessiontoken "dinehub/internal/core/services/get_user_by_session_token"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCookie() *SessionCookie {
	return NewSessionCookie("sessionid", "test-secret", time.Hour, true)
}

func requestWithCookie(cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func TestSessionCookieEncodeAndParse(t *testing.T) {
	sessionCookie := newCookie()
	cookie, err := sessionCookie.Encode(user.SessionToken("token-1"))
	require.Nil(t, err)

	assert.Equal(t, "sessionid", cookie.Name)
	assert.NotContains(t, cookie.Value, "token-1")
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)

	token, ok := sessionCookie.Parse(requestWithCookie(cookie))
	assert.True(t, ok)
	assert.Equal(t, user.SessionToken("token-1"), token)
}

func TestSessionCookieParseRejectsInvalidCookies(t *testing.T) {
	sessionCookie := newCookie()
	valid, err := sessionCookie.Encode(user.SessionToken("token-1"))
	require.Nil(t, err)
	foreign, err := NewSessionCookie("sessionid", "other-secret", time.Hour, true).Encode("token-1")
	require.Nil(t, err)

	cases := []struct {
		id     string
		cookie *http.Cookie
	}{
		{id: "missing", cookie: nil},
		{id: "plain token", cookie: &http.Cookie{Name: "sessionid", Value: "token-1"}},
		{id: "tampered", cookie: &http.Cookie{Name: "sessionid", Value: valid.Value + "x"}},
		{id: "other secret", cookie: foreign},
		{id: "other name", cookie: &http.Cookie{Name: "other", Value: valid.Value}},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			_, ok := sessionCookie.Parse(requestWithCookie(testcase.cookie))
			assert.False(t, ok)
		})
	}
}

func TestSessionCookieExpired(t *testing.T) {
	cookie := newCookie().Expired()

	assert.Equal(t, "sessionid", cookie.Name)
	assert.Equal(t, "", cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}

func TestSetAuthTokenToContext(t *testing.T) {
	sessionCookie := newCookie()
	cookie, err := sessionCookie.Encode(user.SessionToken("token-1"))
	require.Nil(t, err)

	var fromContext user.SessionToken
	var found bool
	handler := sessionCookie.SetAuthTokenToContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromContext, found = Token(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), requestWithCookie(cookie))
	assert.True(t, found)
	assert.Equal(t, user.SessionToken("token-1"), fromContext)

	handler.ServeHTTP(httptest.NewRecorder(), requestWithCookie(nil))
	assert.False(t, found)
}

type stubGetUserService struct {
	err   error
	calls int
}

func (s *stubGetUserService) Run(
	ctx context.Context,
	input getuserbysessiontoken.Input,
) (result getuserbysessiontoken.Result, err error) {
	s.calls++
	if s.err != nil {
		return result, s.err
	}
	return getuserbysessiontoken.Result{User: user.User{ID: 1, Username: "john"}}, nil
}

func TestRedirectAuthenticated(t *testing.T) {
	sessionCookie := newCookie()
	cookie, err := sessionCookie.Encode(user.SessionToken("token-1"))
	require.Nil(t, err)

	cases := []struct {
		id             string
		cookie         *http.Cookie
		serviceErr     error
		expectedStatus int
		expectedCalls  int
	}{
		{id: "anonymous", cookie: nil, expectedStatus: http.StatusTeapot, expectedCalls: 0},
		{id: "authenticated", cookie: cookie, expectedStatus: http.StatusFound, expectedCalls: 1},
		{
			id:             "stale session",
			cookie:         cookie,
			serviceErr:     user.ErrUserDoesNotExist,
			expectedStatus: http.StatusTeapot,
			expectedCalls:  1,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			service := &stubGetUserService{err: testcase.serviceErr}
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTeapot)
			})
			handler := sessionCookie.SetAuthTokenToContext(RedirectAuthenticated(service, "/")(next))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, requestWithCookie(testcase.cookie))

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			assert.Equal(t, testcase.expectedCalls, service.calls)
			if testcase.expectedStatus == http.StatusFound {
				assert.Equal(t, "/", rr.Header().Get("Location"))
			}
		})
	}
}
