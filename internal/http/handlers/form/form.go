package form

import (
	"errors"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	MsgRequired         = "This field is required."
	MsgPasswordMismatch = "The two password fields didn’t match."
	MsgPasswordTooShort = "This password is too short. It must contain at least 8 characters."
	MsgInvalidEmail     = "Enter a valid email address."
)

const PasswordMinLength = 8

// Errors keeps validation messages in the order the fields were declared.
type Errors struct {
	fields   []string
	byField  map[string][]string
	nonField []string
}

func NewErrors(fields ...string) *Errors {
	return &Errors{
		fields:  fields,
		byField: make(map[string][]string, len(fields)),
	}
}

func (e *Errors) Add(field string, msg string) {
	if e.byField == nil {
		e.byField = make(map[string][]string)
	}
	if !e.isDeclared(field) {
		e.fields = append(e.fields, field)
	}
	e.byField[field] = append(e.byField[field], msg)
}

func (e *Errors) AddNonField(msg string) {
	e.nonField = append(e.nonField, msg)
}

// AddValidation copies the per-field messages of an ozzo validation error.
// Any other error is returned as is.
func (e *Errors) AddValidation(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}
	for _, field := range e.fields {
		if fieldErr, ok := errs[field]; ok && fieldErr != nil {
			e.Add(field, fieldErr.Error())
		}
	}
	for field, fieldErr := range errs {
		if fieldErr != nil && !e.isDeclared(field) {
			e.Add(field, fieldErr.Error())
		}
	}
	return nil
}

func (e *Errors) Field(name string) []string {
	if e == nil {
		return nil
	}
	return e.byField[name]
}

func (e *Errors) Has(name string) bool {
	return len(e.Field(name)) > 0
}

func (e *Errors) NonField() []string {
	if e == nil {
		return nil
	}
	return e.nonField
}

// Messages flattens every message, fields first in declaration order.
func (e *Errors) Messages() []string {
	messages := make([]string, 0)
	if e == nil {
		return messages
	}
	for _, field := range e.fields {
		messages = append(messages, e.byField[field]...)
	}
	return append(messages, e.nonField...)
}

func (e *Errors) IsEmpty() bool {
	return len(e.Messages()) == 0
}

func (e *Errors) isDeclared(field string) bool {
	for _, f := range e.fields {
		if f == field {
			return true
		}
	}
	return false
}

// View is what a page needs to redisplay a submitted form.
type View struct {
	Values url.Values
	Errors *Errors
}

func NewView(values url.Values, errs *Errors) View {
	if values == nil {
		values = url.Values{}
	}
	if errs == nil {
		errs = NewErrors()
	}
	return View{Values: values, Errors: errs}
}

// Password validates a pair of new password fields.
// The mismatch message is only added when both passwords pass the field rules.
func Password(errs *Errors, field1 string, password1 string, field2 string, password2 string) {
	err := validation.Errors{
		field1: validation.Validate(
			password1,
			validation.Required.Error(MsgRequired),
			validation.RuneLength(PasswordMinLength, 0).Error(MsgPasswordTooShort),
		),
		field2: validation.Validate(password2, validation.Required.Error(MsgRequired)),
	}.Filter()
	errs.AddValidation(err)
	if errs.Has(field1) || errs.Has(field2) {
		return
	}
	if password1 != password2 {
		errs.Add(field2, MsgPasswordMismatch)
	}
}
