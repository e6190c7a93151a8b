package register

import (
	c "dinehub/internal/core/domain/common"
	e "dinehub/internal/core/domain/errors"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/core/services"
	registeruser "dinehub/internal/core/services/register_user"
	"dinehub/internal/http/handlers/form"
	"dinehub/internal/http/handlers/response"
	"dinehub/internal/http/handlers/routes"
	"dinehub/internal/http/templates"
	"errors"
	"net/http"
	"net/url"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	MsgUsernameTooLong = "Ensure this value has at most 150 characters."
	MsgUsernameInvalid = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	MsgUsernameTaken   = "A user with that username already exists."
	MsgEmailTaken      = "A user with that email already exists."
	MsgEmailTooLong    = "Ensure this value has at most 254 characters."
)

const (
	usernameMaxLength = 150
	emailMaxLength    = 254
)

var usernameRegexp = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

var fields = []string{"username", "email", "password1", "password2"}

type Handler struct {
	service services.Service[registeruser.Input, registeruser.Result]
	out     *response.Writer
}

func New(
	service services.Service[registeruser.Input, registeruser.Result],
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

type Input struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

func (i *Input) FromForm(values url.Values) {
	i.Username = values.Get("username")
	i.Email = values.Get("email")
	i.Password1 = values.Get("password1")
	i.Password2 = values.Get("password2")
}

func (i Input) Validate() *form.Errors {
	errs := form.NewErrors(fields...)
	errs.AddValidation(validation.Errors{
		"username": validation.Validate(
			string(user.NewUsername(i.Username)),
			validation.Required.Error(form.MsgRequired),
			validation.RuneLength(0, usernameMaxLength).Error(MsgUsernameTooLong),
			validation.Match(usernameRegexp).Error(MsgUsernameInvalid),
		),
		"email": validation.Validate(
			string(c.NewEmail(i.Email)),
			validation.Required.Error(form.MsgRequired),
			validation.RuneLength(0, emailMaxLength).Error(MsgEmailTooLong),
			is.Email.Error(form.MsgInvalidEmail),
		),
	}.Filter())
	form.Password(errs, "password1", i.Password1, "password2", i.Password2)
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
		return page(nil, form.NewErrors(fields...))
	}

	if err := r.ParseForm(); err != nil {
		return response.BadRequest{}
	}
	input := Input{}
	input.FromForm(r.PostForm)
	errs := input.Validate()
	if !errs.IsEmpty() {
		return page(r.PostForm, errs)
	}

	_, err := h.service.Run(r.Context(), registeruser.Input{
		Username: user.NewUsername(input.Username),
		Email:    c.NewEmail(input.Email),
		Password: user.RawPassword(input.Password1),
	})
	switch {
	case errors.Is(err, user.ErrUsernameAlreadyExists):
		errs.Add("username", MsgUsernameTaken)
		return page(r.PostForm, errs)
	case errors.Is(err, user.ErrEmailAlreadyExists):
		errs.Add("email", MsgEmailTaken)
		return page(r.PostForm, errs)
	case err != nil:
		return response.InternalError{Err: err}
	}
	return response.Redirect{URL: routes.Login}
}

func page(submitted url.Values, errs *form.Errors) response.Result {
	values := url.Values{
		"username": {submitted.Get("username")},
		"email":    {submitted.Get("email")},
	}
	return response.Page{Template: templates.Register, Data: Page{Form: form.NewView(values, errs)}}
}
