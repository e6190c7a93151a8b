package logout

import (
	e "dinehub/internal/core/domain/errors"
	"dinehub/internal/core/services"
	logout "dinehub/internal/core/services/log_out"
	"dinehub/internal/http/handlers/auth"
	"dinehub/internal/http/handlers/response"
	"dinehub/internal/http/handlers/routes"
	"net/http"
)

type Handler struct {
	service services.Service[logout.Input, logout.Result]
	cookie  *auth.SessionCookie
	out     *response.Writer
}

func New(
	service services.Service[logout.Input, logout.Result],
	cookie *auth.SessionCookie,
	out *response.Writer,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	if cookie == nil {
		panic(e.NewNilArgumentError("cookie"))
	}
	if out == nil {
		panic(e.NewNilArgumentError("out"))
	}
	return &Handler{service: service, cookie: cookie, out: out}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	h.out.Write(rw, r, h.handle(r))
}

// The client always ends up logged out, a failed session delete is logged by the service.
func (h *Handler) handle(r *http.Request) response.Result {
	if token, ok := auth.Token(r.Context()); ok {
		h.service.Run(r.Context(), logout.Input{Token: token})
	}
	return response.Redirect{URL: routes.Login, Cookies: []*http.Cookie{h.cookie.Expired()}}
}
