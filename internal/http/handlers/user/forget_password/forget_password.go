package forgetpassword

import (
	c "dinehub/internal/core/domain/common"
	e "dinehub/internal/core/domain/errors"
	"dinehub/internal/core/services"
	sendpasswordresetlink "dinehub/internal/core/services/send_password_reset_link"
	"dinehub/internal/http/handlers/form"
	"dinehub/internal/http/handlers/response"
	"dinehub/internal/http/templates"
	"net/http"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var fields = []string{"email"}

type Handler struct {
	service services.Service[sendpasswordresetlink.Input, sendpasswordresetlink.Result]
	out     *response.Writer
}

func New(
	service services.Service[sendpasswordresetlink.Input, sendpasswordresetlink.Result],
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
	Email string `json:"email"`
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(
			&i.Email,
			validation.Required.Error(form.MsgRequired),
			validation.RuneLength(0, 254).Error("Ensure this value has at most 254 characters."),
			is.Email.Error(form.MsgInvalidEmail),
		),
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
		return page(nil, form.NewErrors(fields...))
	}

	if err := r.ParseForm(); err != nil {
		return response.BadRequest{}
	}
	input := Input{Email: string(c.NewEmail(r.PostForm.Get("email")))}
	errs := form.NewErrors(fields...)
	if err := errs.AddValidation(input.Validate()); err != nil {
		return response.InternalError{Err: err}
	}
	if !errs.IsEmpty() {
		return page(url.Values{"email": {r.PostForm.Get("email")}}, errs)
	}

	if _, err := h.service.Run(r.Context(), sendpasswordresetlink.Input{Email: c.Email(input.Email)}); err != nil {
		return response.InternalError{Err: err}
	}
	return response.Page{Template: templates.SentEmail}
}

func page(values url.Values, errs *form.Errors) response.Result {
	return response.Page{Template: templates.ResetEmail, Data: Page{Form: form.NewView(values, errs)}}
}
