package logout

import (
	"context"
	"dinehub/internal/core/domain/logging"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/core/services/auth"
	logout "dinehub/internal/core/services/log_out"
	httpauth "dinehub/internal/http/handlers/auth"
	"dinehub/internal/http/handlers/response"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	input *logout.Input
	err   error
}

func (s *stubService) Run(ctx context.Context, input logout.Input) (logout.Result, error) {
	s.input = &input
	return logout.Result{}, s.err
}

func TestLogOutHandler(t *testing.T) {
	cases := []struct {
		id            string
		method        string
		token         user.SessionToken
		serviceErr    error
		expectedInput *logout.Input
	}{
		{
			id:            "post with session",
			method:        http.MethodPost,
			token:         "token-1",
			expectedInput: &logout.Input{Token: "token-1"},
		},
		{
			id:            "get with session",
			method:        http.MethodGet,
			token:         "token-1",
			expectedInput: &logout.Input{Token: "token-1"},
		},
		{
			id:            "stale session",
			method:        http.MethodPost,
			token:         "token-1",
			serviceErr:    user.ErrSessionDoesNotExist,
			expectedInput: &logout.Input{Token: "token-1"},
		},
		{
			id:     "without session",
			method: http.MethodPost,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			service := &stubService{err: testcase.serviceErr}
			handler := New(
				service,
				httpauth.NewSessionCookie("sessionid", "secret", time.Hour, false),
				response.NewWriter(logging.NewFakeLogger(), response.NewFakeRenderer()),
			)
			req := httptest.NewRequest(testcase.method, "/user/logout/", nil)
			if testcase.token != "" {
				req = req.WithContext(context.WithValue(req.Context(), auth.CONTEXT_AUTH_TOKEN_KEY, testcase.token))
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusFound, rr.Code)
			assert.Equal(t, "/user/login/", rr.Header().Get("Location"))
			assert.Equal(t, testcase.expectedInput, service.input)
			cookies := rr.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, "sessionid", cookies[0].Name)
			assert.Equal(t, -1, cookies[0].MaxAge)
		})
	}
}
