package register

import (
	"context"
	c "dinehub/internal/core/domain/common"
	"dinehub/internal/core/domain/logging"
	"dinehub/internal/core/domain/user"
	registeruser "dinehub/internal/core/services/register_user"
	"dinehub/internal/http/handlers/form"
	"dinehub/internal/http/handlers/response"
	"dinehub/internal/http/templates"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	input *registeruser.Input
	err   error
}

func (s *stubService) Run(ctx context.Context, input registeruser.Input) (result registeruser.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	return registeruser.Result{User: user.User{ID: 1, Username: input.Username, Email: input.Email}}, nil
}

func validForm() url.Values {
	return url.Values{
		"username":  {"john"},
		"email":     {"John@Example.com"},
		"password1": {"secret-password"},
		"password2": {"secret-password"},
	}
}

func serve(t *testing.T, service *stubService, method string, values url.Values) (*httptest.ResponseRecorder, *response.FakeRenderer) {
	t.Helper()
	renderer := response.NewFakeRenderer()
	handler := New(service, response.NewWriter(logging.NewFakeLogger(), renderer))
	req := httptest.NewRequest(method, "/user/register/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr, renderer
}

func renderedPage(t *testing.T, renderer *response.FakeRenderer) Page {
	t.Helper()
	require.Equal(t, templates.Register, renderer.Last().Name)
	page, ok := renderer.Last().Data.(Page)
	require.True(t, ok)
	return page
}

func TestRegisterGet(t *testing.T) {
	service := &stubService{}
	rr, renderer := serve(t, service, http.MethodGet, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, renderedPage(t, renderer).Form.Errors.IsEmpty())
	assert.Nil(t, service.input)
}

func TestRegisterSuccess(t *testing.T) {
	service := &stubService{}
	rr, _ := serve(t, service, http.MethodPost, validForm())

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/user/login/", rr.Header().Get("Location"))
	require.NotNil(t, service.input)
	assert.Equal(t, registeruser.Input{
		Username: "john",
		Email:    c.Email("john@example.com"),
		Password: "secret-password",
	}, *service.input)
}

func TestRegisterInvalidForm(t *testing.T) {
	cases := []struct {
		id       string
		modify   func(v url.Values)
		field    string
		expected []string
	}{
		{
			id:       "username missing",
			modify:   func(v url.Values) { v.Del("username") },
			field:    "username",
			expected: []string{form.MsgRequired},
		},
		{
			id:       "username too long",
			modify:   func(v url.Values) { v.Set("username", strings.Repeat("a", 151)) },
			field:    "username",
			expected: []string{MsgUsernameTooLong},
		},
		{
			id:       "username invalid",
			modify:   func(v url.Values) { v.Set("username", "john doe!") },
			field:    "username",
			expected: []string{MsgUsernameInvalid},
		},
		{
			id:       "email invalid",
			modify:   func(v url.Values) { v.Set("email", "not-an-email") },
			field:    "email",
			expected: []string{form.MsgInvalidEmail},
		},
		{
			id:       "password too short",
			modify:   func(v url.Values) { v.Set("password1", "short"); v.Set("password2", "short") },
			field:    "password1",
			expected: []string{form.MsgPasswordTooShort},
		},
		{
			id:       "passwords differ",
			modify:   func(v url.Values) { v.Set("password2", "other-password") },
			field:    "password2",
			expected: []string{form.MsgPasswordMismatch},
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			service := &stubService{}
			values := validForm()
			testcase.modify(values)

			rr, renderer := serve(t, service, http.MethodPost, values)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Nil(t, service.input)
			page := renderedPage(t, renderer)
			assert.Equal(t, testcase.expected, page.Form.Errors.Field(testcase.field))
			assert.Equal(t, testcase.expected, page.Form.Errors.Messages())
			assert.Equal(t, "", page.Form.Values.Get("password1"))
		})
	}
}

func TestRegisterTakenCredentials(t *testing.T) {
	cases := []struct {
		err      error
		field    string
		expected string
	}{
		{err: user.ErrUsernameAlreadyExists, field: "username", expected: MsgUsernameTaken},
		{err: user.ErrEmailAlreadyExists, field: "email", expected: MsgEmailTaken},
	}

	for _, testcase := range cases {
		t.Run(testcase.field, func(t *testing.T) {
			rr, renderer := serve(t, &stubService{err: testcase.err}, http.MethodPost, validForm())

			assert.Equal(t, http.StatusOK, rr.Code)
			page := renderedPage(t, renderer)
			assert.Equal(t, []string{testcase.expected}, page.Form.Errors.Field(testcase.field))
			assert.Equal(t, "john", page.Form.Values.Get("username"))
		})
	}
}

func TestRegisterUnexpectedError(t *testing.T) {
	rr, _ := serve(t, &stubService{err: errors.New("db is down")}, http.MethodPost, validForm())

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestRegisterMalformedBody(t *testing.T) {
	service := &stubService{}
	handler := New(service, response.NewWriter(logging.NewFakeLogger(), response.NewFakeRenderer()))
	req := httptest.NewRequest(http.MethodPost, "/user/register/", strings.NewReader("username=%zz"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Nil(t, service.input)
}
