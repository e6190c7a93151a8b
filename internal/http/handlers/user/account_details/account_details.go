package accountdetails

import (
	"dinehub/internal/core/domain/category"
	e "dinehub/internal/core/domain/errors"
	"dinehub/internal/core/domain/logging"
	"dinehub/internal/core/domain/restaurant"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/core/services"
	changepassword "dinehub/internal/core/services/change_password"
	getaccountdetails "dinehub/internal/core/services/get_account_details"
	"dinehub/internal/http/handlers/auth"
	"dinehub/internal/http/handlers/form"
	"dinehub/internal/http/handlers/response"
	"dinehub/internal/http/handlers/routes"
	passwordchange "dinehub/internal/http/handlers/user/password_change"
	"dinehub/internal/http/templates"
	"errors"
	"net/http"
)

const UpdatePasswordFormField = "update_pass_form"

type Handler struct {
	log            logging.Logger
	details        services.Service[getaccountdetails.Input, getaccountdetails.Result]
	changePassword services.Service[changepassword.Input, changepassword.Result]
	cookie         *auth.SessionCookie
	out            *response.Writer
}

func New(
	log logging.Logger,
	details services.Service[getaccountdetails.Input, getaccountdetails.Result],
	changePassword services.Service[changepassword.Input, changepassword.Result],
	cookie *auth.SessionCookie,
	out *response.Writer,
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if details == nil {
		panic(e.NewNilArgumentError("details"))
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
		details:        details,
		changePassword: changePassword,
		cookie:         cookie,
		out:            out,
	}
}

type Page struct {
	Username     user.Username
	Favorites    []restaurant.Restaurant
	Preferences  []category.Category
	PasswordForm form.View
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	h.out.Write(rw, r, h.handle(r))
}

func (h *Handler) handle(r *http.Request) response.Result {
	details, err := h.details.Run(r.Context(), getaccountdetails.Input{})
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return response.Redirect{URL: routes.Login}
	}
	if err != nil {
		return response.InternalError{Err: err}
	}

	errs := form.NewErrors(passwordchange.Fields...)
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			return response.BadRequest{}
		}
		if _, ok := r.PostForm[UpdatePasswordFormField]; ok {
			errs, err = passwordchange.Submit(r.Context(), h.changePassword, passwordchange.FromForm(r.PostForm))
			if errors.Is(err, user.ErrUserDoesNotExist) {
				return response.Redirect{URL: routes.Login}
			}
			if err != nil {
				return response.InternalError{Err: err}
			}
			if errs.IsEmpty() {
				return response.Redirect{URL: routes.Login, Cookies: []*http.Cookie{h.cookie.Expired()}}
			}
			h.log.Info(
				r.Context(),
				"Password update form is invalid.",
				logging.Entry("userId", details.User.ID),
				logging.Entry("errors", errs.Messages()),
			)
		}
	}

	return response.Page{
		Template: templates.AccountDetails,
		Data: Page{
			Username:     details.User.Username,
			Favorites:    details.Favorites,
			Preferences:  details.Preferences,
			PasswordForm: form.NewView(nil, errs),
		},
	}
}
