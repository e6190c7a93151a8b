package updatepassword

import (
	e "dinehub/internal/core/domain/errors"
	"dinehub/internal/core/domain/logging"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/core/services"
	changepassword "dinehub/internal/core/services/change_password"
	getuserbysessiontoken "dinehub/internal/core/services/get_user_by_session_token"
	"dinehub/internal/http/handlers/auth"
	"dinehub/internal/http/handlers/response"
	"dinehub/internal/http/handlers/routes"
	passwordchange "dinehub/internal/http/handlers/user/password_change"
	"errors"
	"net/http"
)

type Handler struct {
	log            logging.Logger
	currentUser    services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]
	changePassword services.Service[changepassword.Input, changepassword.Result]
	cookie         *auth.SessionCookie
	out            *response.Writer
}

func New(
	log logging.Logger,
	currentUser services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result],
	changePassword services.Service[changepassword.Input, changepassword.Result],
	cookie *auth.SessionCookie,
	out *response.Writer,
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if currentUser == nil {
		panic(e.NewNilArgumentError("currentUser"))
	}
	if changePassword == nil {
		panic(e.NewNilArgumentError("changePassword"))
	}
	if cookie == nil {
		panic(e.NewNilArgumentError("cookie"))
	}
	if out == nil {
		panic(e.NewNilArgumentError("out"))
	}
	return &Handler{
		log:            log,
		currentUser:    currentUser,
		changePassword: changePassword,
		cookie:         cookie,
		out:            out,
	}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	h.out.Write(rw, r, h.handle(r))
}

func (h *Handler) handle(r *http.Request) response.Result {
	token, ok := auth.Token(r.Context())
	if !ok {
		return response.Redirect{URL: routes.Login}
	}
	current, err := h.currentUser.Run(r.Context(), getuserbysessiontoken.Input{Token: token})
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return response.Redirect{URL: routes.Login}
	}
	if err != nil {
		return response.InternalError{Err: err}
	}

	if err := r.ParseForm(); err != nil {
		return response.BadRequest{}
	}
	errs, err := passwordchange.Submit(r.Context(), h.changePassword, passwordchange.FromForm(r.PostForm))
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return response.Redirect{URL: routes.Login}
	}
	if err != nil {
		return response.InternalError{Err: err}
	}
	if !errs.IsEmpty() {
		h.log.Info(
			r.Context(),
			"Password update form is invalid.",
			logging.Entry("userId", current.User.ID),
			logging.Entry("errors", errs.Messages()),
		)
		return response.ValidationFailed{Errors: errs.Messages()}
	}
	return response.Redirect{URL: routes.Login, Cookies: []*http.Cookie{h.cookie.Expired()}}
}
