package passwordresetlink

import (
	"context"
	"dinehub/internal/core/domain/logging"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/rabbitmq/schema"
	"testing"

	"github.com/stretchr/testify/require"
)

func newConsumer(sender user.PasswordResetLinkSender) *Consumer {
	return &Consumer{log: logging.NewFakeLogger(), queue: "q", sender: sender}
}

func TestMessageDelivered(t *testing.T) {
	sender := user.NewFakePasswordResetLinkSender()
	u := user.User{ID: 2, Username: "bob", Email: "bob@test.test"}
	link := user.PasswordResetLink{UserID: "Mg", Token: "token"}
	message := schema.NewPasswordResetLink(u, link)
	body, err := message.Marshal()
	require.NoError(t, err)

	err = newConsumer(sender).handle(context.Background(), body)

	require.NoError(t, err)
	require.Equal(t, 1, sender.SentCount())
	require.Equal(t, link, sender.Sent[0])
	require.Equal(t, u, sender.SentTo[0])
}

func TestMalformedMessage(t *testing.T) {
	sender := user.NewFakePasswordResetLinkSender()

	for _, body := range []string{"not json", `{"userId": 1}`} {
		err := newConsumer(sender).handle(context.Background(), []byte(body))
		require.ErrorIs(t, err, errMalformedMessage)
	}
	require.Equal(t, 0, sender.SentCount())
}

func TestSenderFailure(t *testing.T) {
	sender := user.NewFakePasswordResetLinkSender()
	sender.ReturnError = true
	message := schema.NewPasswordResetLink(
		user.User{ID: 2, Email: "bob@test.test"},
		user.PasswordResetLink{UserID: "Mg", Token: "token"},
	)
	body, _ := message.Marshal()

	err := newConsumer(sender).handle(context.Background(), body)

	require.Error(t, err)
	require.NotErrorIs(t, err, errMalformedMessage)
}
