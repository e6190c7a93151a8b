package addpreference

import (
	"context"
	"dinehub/internal/core/domain/category"
	"dinehub/internal/core/domain/logging"
	"dinehub/internal/core/domain/user"
	addpreference "dinehub/internal/core/services/add_preference"
	"dinehub/internal/http/handlers/response"
	"dinehub/internal/http/handlers/routes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type stubService struct {
	input *addpreference.Input
	err   error
}

func (s *stubService) Run(ctx context.Context, input addpreference.Input) (result addpreference.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	return addpreference.Result{Category: category.Category{ID: 1, Name: input.Category}}, nil
}

func TestHandler(t *testing.T) {
	cases := []struct {
		id             string
		serviceErr     error
		expectedStatus int
		expectedBody   string
	}{
		{
			id:             "success",
			expectedStatus: http.StatusOK,
			expectedBody:   "Preference Saved",
		},
		{
			id:             "unknown category",
			serviceErr:     category.ErrCategoryDoesNotExist,
			expectedStatus: http.StatusNotFound,
			expectedBody:   "Category does not exist",
		},
		{
			id:             "unauthenticated",
			serviceErr:     user.ErrUserDoesNotExist,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "authentication required",
		},
		{
			id:             "unexpected error",
			serviceErr:     errors.New("db is down"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "internal error",
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			service := &stubService{err: testcase.serviceErr}
			router := chi.NewRouter()
			router.Method(
				http.MethodPost,
				routes.AddPreference,
				New(service, response.NewWriter(logging.NewFakeLogger(), response.NewFakeRenderer())),
			)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/user/preference/add/Vegan/", nil))

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			assert.Equal(t, testcase.expectedBody, rr.Body.String())
			assert.Equal(t, &addpreference.Input{Category: "Vegan"}, service.input)
		})
	}
}

func TestHandlerRejectsGet(t *testing.T) {
	service := &stubService{}
	router := chi.NewRouter()
	router.Method(
		http.MethodPost,
		routes.AddPreference,
		New(service, response.NewWriter(logging.NewFakeLogger(), response.NewFakeRenderer())),
	)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/user/preference/add/Vegan/", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Nil(t, service.input)
}
