package index

import (
	"context"
	e "dinehub/internal/core/domain/errors"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/core/services"
	getuserbysessiontoken "dinehub/internal/core/services/get_user_by_session_token"
	"dinehub/internal/http/handlers/auth"
	"dinehub/internal/http/handlers/response"
	"dinehub/internal/http/templates"
	"errors"
	"net/http"
)

type Handler struct {
	service services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]
	out     *response.Writer
}

func New(
	service services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result],
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

type Page struct {
	IsAuthenticated bool
	Username        user.Username
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	h.out.Write(rw, r, h.handle(r))
}

func (h *Handler) handle(r *http.Request) response.Result {
	page := Page{}
	token, ok := auth.Token(r.Context())
	if ok {
		result, err := h.service.Run(r.Context(), getuserbysessiontoken.Input{Token: token})
		switch {
		case err == nil:
			page.IsAuthenticated = true
			page.Username = result.User.Username
		case errors.Is(err, user.ErrUserDoesNotExist), errors.Is(err, context.Canceled):
		default:
			return response.InternalError{Err: err}
		}
	}
	return response.Page{Template: templates.Index, Data: page}
}
