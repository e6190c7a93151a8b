package email

import (
	"context"
	"dinehub/internal/core/domain/user"
	"encoding/json"
	"errors"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESClient is the part of *ses.Client the sender needs.
type SESClient interface {
	SendTemplatedEmail(
		ctx context.Context,
		params *ses.SendTemplatedEmailInput,
		optFns ...func(*ses.Options),
	) (*ses.SendTemplatedEmailOutput, error)
}

type EmailSender struct {
	ses SESClient
	// This address must be verified with Amazon SES.
	sender                string
	passwordResetTemplate string
	passwordResetBaseUrl  url.URL
}

func NewEmailSender(
	awsConfig aws.Config,
	sender string,
	passwordResetTemplate string,
	passwordResetBaseUrl url.URL,
) *EmailSender {
	return NewEmailSenderWithClient(
		ses.NewFromConfig(awsConfig),
		sender,
		passwordResetTemplate,
		passwordResetBaseUrl,
	)
}

func NewEmailSenderWithClient(
	client SESClient,
	sender string,
	passwordResetTemplate string,
	passwordResetBaseUrl url.URL,
) *EmailSender {
	return &EmailSender{
		ses:                   client,
		sender:                sender,
		passwordResetTemplate: passwordResetTemplate,
		passwordResetBaseUrl:  passwordResetBaseUrl,
	}
}

// PasswordResetURL builds "<base>/<uid>/<token>/".
func (s *EmailSender) PasswordResetURL(link user.PasswordResetLink) string {
	return s.passwordResetBaseUrl.JoinPath(string(link.UserID), string(link.Token)).String() + "/"
}

func (s *EmailSender) SendPasswordResetLink(ctx context.Context, u user.User, link user.PasswordResetLink) error {
	if u.Email == "" {
		return errors.New("user email is not defined")
	}

	templateParamsBytes, err := json.Marshal(
		passwordResetTemplateParams{
			Username:         string(u.Username),
			PasswordResetUrl: s.PasswordResetURL(link),
		},
	)
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	email := string(u.Email)
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Template:     &s.passwordResetTemplate,
			TemplateData: &templateParams,
		},
	)
	return err
}

type passwordResetTemplateParams struct {
	Username         string `json:"username"`
	PasswordResetUrl string `json:"passwordResetUrl"`
}
