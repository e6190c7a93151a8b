package deletepreference

import (
	"dinehub/internal/core/domain/category"
	e "dinehub/internal/core/domain/errors"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/core/services"
	deletepreference "dinehub/internal/core/services/delete_preference"
	"dinehub/internal/http/handlers/response"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const (
	MsgSuccess          = "Preference Removed"
	MsgCategoryNotFound = "Category does not exist"
)

type Handler struct {
	service services.Service[deletepreference.Input, deletepreference.Result]
	out     *response.Writer
}

func New(
	service services.Service[deletepreference.Input, deletepreference.Result],
	out *response.Writer,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	if out == nil {
		panic(e.NewNilArgumentError("out"))
	}
	return &Handler{service: service, out: out}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	h.out.Write(rw, r, h.handle(r))
}

func (h *Handler) handle(r *http.Request) response.Result {
	_, err := h.service.Run(
		r.Context(),
		deletepreference.Input{Category: category.NewName(chi.URLParam(r, "category"))},
	)
	switch {
	case errors.Is(err, user.ErrUserDoesNotExist):
		return response.Unauthorized{}
	case errors.Is(err, category.ErrCategoryDoesNotExist):
		return response.NotFound{Message: MsgCategoryNotFound}
	case err != nil:
		return response.InternalError{Err: err}
	}
	return response.Text{Body: MsgSuccess}
}
