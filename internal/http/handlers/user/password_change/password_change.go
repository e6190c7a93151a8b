package passwordchange

import (
	"context"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/core/services"
	changepassword "dinehub/internal/core/services/change_password"
	"dinehub/internal/http/handlers/form"
	"errors"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation"
)

const MsgOldPasswordIncorrect = "Your old password was entered incorrectly. Please enter it again."

var Fields = []string{"old_password", "new_password1", "new_password2"}

type Input struct {
	OldPassword  string `json:"old_password"`
	NewPassword1 string `json:"new_password1"`
	NewPassword2 string `json:"new_password2"`
}

func FromForm(values url.Values) Input {
	return Input{
		OldPassword:  values.Get("old_password"),
		NewPassword1: values.Get("new_password1"),
		NewPassword2: values.Get("new_password2"),
	}
}

func (i Input) Validate() *form.Errors {
	errs := form.NewErrors(Fields...)
	errs.AddValidation(validation.Errors{
		"old_password": validation.Validate(i.OldPassword, validation.Required.Error(form.MsgRequired)),
	}.Filter())
	form.Password(errs, "new_password1", i.NewPassword1, "new_password2", i.NewPassword2)
	return errs
}

// Submit validates the input and changes the password of the session owner.
// A given old password is always checked, so its error is reported together
// with the new password errors. Form problems come back as errs, anything
// the form cannot express as err.
func Submit(
	ctx context.Context,
	service services.Service[changepassword.Input, changepassword.Result],
	input Input,
) (errs *form.Errors, err error) {
	errs = input.Validate()
	if errs.Has("old_password") {
		return errs, nil
	}
	_, err = service.Run(ctx, changepassword.Input{
		CurrentPassword: user.RawPassword(input.OldPassword),
		NewPassword:     user.RawPassword(input.NewPassword1),
		VerifyOnly:      !errs.IsEmpty(),
	})
	if errors.Is(err, user.ErrInvalidCredentials) {
		errs.Add("old_password", MsgOldPasswordIncorrect)
		return errs, nil
	}
	return errs, err
}
