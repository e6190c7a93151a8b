package login

import (
	e "dinehub/internal/core/domain/errors"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/core/services"
	loginwithusername "dinehub/internal/core/services/log_in_with_username"
	"dinehub/internal/http/handlers/auth"
	"dinehub/internal/http/handlers/form"
	"dinehub/internal/http/handlers/response"
	"dinehub/internal/http/templates"
	"errors"
	"net/http"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation"
)

const MsgInvalidLogin = "Please enter a correct username and password. Note that both fields may be case-sensitive."

var fields = []string{"username", "password"}

type Handler struct {
	service     services.Service[loginwithusername.Input, loginwithusername.Result]
	cookie      *auth.SessionCookie
	redirectURL string
	out         *response.Writer
}

func New(
	service services.Service[loginwithusername.Input, loginwithusername.Result],
	cookie *auth.SessionCookie,
	redirectURL string,
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
	return &Handler{
		service:     service,
		cookie:      cookie,
		redirectURL: redirectURL,
		out:         out,
	}
}

type Input struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (i *Input) FromForm(values url.Values) {
	i.Username = values.Get("username")
	i.Password = values.Get("password")
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(
			&i.Username,
			validation.Required.Error(form.MsgRequired),
			validation.RuneLength(0, 150).Error("Ensure this value has at most 150 characters."),
		),
		validation.Field(&i.Password, validation.Required.Error(form.MsgRequired)),
	)
}

type Page struct {
	Form form.View
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	h.out.Write(rw, r, h.handle(r))
}

func (h *Handler) handle(r *http.Request) response.Result {
	if r.Method != http.MethodPost {
		return response.Page{Template: templates.Login, Data: Page{Form: form.NewView(nil, form.NewErrors(fields...))}}
	}

	if err := r.ParseForm(); err != nil {
		return response.BadRequest{}
	}
	input := Input{}
	input.FromForm(r.PostForm)
	errs := form.NewErrors(fields...)
	if err := errs.AddValidation(input.Validate()); err != nil {
		return response.InternalError{Err: err}
	}
	if !errs.IsEmpty() {
		return h.page(r, errs)
	}

	result, err := h.service.Run(
		r.Context(),
		loginwithusername.Input{
			Username: user.NewUsername(input.Username),
			Password: user.RawPassword(input.Password),
		},
	)
	if errors.Is(err, user.ErrInvalidCredentials) {
		errs.AddNonField(MsgInvalidLogin)
		return h.page(r, errs)
	}
	if err != nil {
		return response.InternalError{Err: err}
	}

	cookie, err := h.cookie.Encode(result.Token)
	if err != nil {
		return response.InternalError{Err: err}
	}
	return response.Redirect{URL: h.redirectURL, Cookies: []*http.Cookie{cookie}}
}

func (h *Handler) page(r *http.Request, errs *form.Errors) response.Result {
	values := url.Values{"username": {r.PostForm.Get("username")}}
	return response.Page{Template: templates.Login, Data: Page{Form: form.NewView(values, errs)}}
}
