package resetpasswordlink

import (
	e "dinehub/internal/core/domain/errors"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/core/services"
	checkpasswordresetlink "dinehub/internal/core/services/check_password_reset_link"
	resetpassword "dinehub/internal/core/services/reset_password"
	"dinehub/internal/http/handlers/auth"
	"dinehub/internal/http/handlers/form"
	"dinehub/internal/http/handlers/response"
	"dinehub/internal/http/handlers/routes"
	"dinehub/internal/http/templates"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const (
	MsgInvalidLink = "This is invalid!"
	MsgInvalidForm = "Invalid"
)

var fields = []string{"new_password1", "new_password2"}

type Handler struct {
	check  services.Service[checkpasswordresetlink.Input, checkpasswordresetlink.Result]
	reset  services.Service[resetpassword.Input, resetpassword.Result]
	cookie *auth.SessionCookie
	out    *response.Writer
}

func New(
	check services.Service[checkpasswordresetlink.Input, checkpasswordresetlink.Result],
	reset services.Service[resetpassword.Input, resetpassword.Result],
	cookie *auth.SessionCookie,
	out *response.Writer,
) *Handler {
	if check == nil {
		panic(e.NewNilArgumentError("check"))
	}
	if reset == nil {
		panic(e.NewNilArgumentError("reset"))
	}
	if cookie == nil {
		panic(e.NewNilArgumentError("cookie"))
	}
	if out == nil {
		panic(e.NewNilArgumentError("out"))
	}
	return &Handler{check: check, reset: reset, cookie: cookie, out: out}
}

type Input struct {
	NewPassword1 string
	NewPassword2 string
}

func (i Input) Validate() *form.Errors {
	errs := form.NewErrors(fields...)
	form.Password(errs, "new_password1", i.NewPassword1, "new_password2", i.NewPassword2)
	return errs
}

type Page struct {
	Form form.View
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	h.out.Write(rw, r, h.handle(r))
}

func (h *Handler) handle(r *http.Request) response.Result {
	if r.Method != http.MethodPost {
		return response.Page{Template: templates.Reset, Data: Page{Form: form.NewView(nil, form.NewErrors(fields...))}}
	}

	link := user.PasswordResetLink{
		UserID: user.EncodedID(chi.URLParam(r, "uid")),
		Token:  user.PasswordResetToken(chi.URLParam(r, "token")),
	}
	_, err := h.check.Run(r.Context(), checkpasswordresetlink.Input{Link: link})
	if errors.Is(err, user.ErrInvalidPasswordResetToken) {
		return response.Text{Body: MsgInvalidLink}
	}
	if err != nil {
		return response.InternalError{Err: err}
	}

	if err := r.ParseForm(); err != nil {
		return response.BadRequest{}
	}
	input := Input{
		NewPassword1: r.PostForm.Get("new_password1"),
		NewPassword2: r.PostForm.Get("new_password2"),
	}
	if errs := input.Validate(); !errs.IsEmpty() {
		return response.Text{Body: MsgInvalidForm}
	}

	_, err = h.reset.Run(r.Context(), resetpassword.Input{
		Link:        link,
		NewPassword: user.RawPassword(input.NewPassword1),
	})
	if errors.Is(err, user.ErrInvalidPasswordResetToken) {
		return response.Text{Body: MsgInvalidLink}
	}
	if err != nil {
		return response.InternalError{Err: err}
	}
	return response.Redirect{URL: routes.Login, Cookies: []*http.Cookie{h.cookie.Expired()}}
}
