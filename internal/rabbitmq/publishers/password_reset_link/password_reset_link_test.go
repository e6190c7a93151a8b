package passwordresetlink

import (
	"context"
	"dinehub/internal/core/domain/logging"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/rabbitmq/schema"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp091.Publishing
}

type fakeChannel struct {
	published   []published
	returnError bool
}

func (c *fakeChannel) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp091.Publishing,
) error {
	if c.returnError {
		return errors.New("channel is closed")
	}
	c.published = append(c.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func TestLinkPublished(t *testing.T) {
	channel := &fakeChannel{}
	publisher := NewRabbitMQ(logging.NewFakeLogger(), channel, "", "password_reset_email")
	u := user.User{ID: 1, Username: "alice", Email: "alice@test.test"}
	link := user.PasswordResetLink{UserID: "MQ", Token: "token"}

	err := publisher.SendPasswordResetLink(context.Background(), u, link)

	require.NoError(t, err)
	require.Len(t, channel.published, 1)
	require.Equal(t, "password_reset_email", channel.published[0].key)
	require.Equal(t, amqp091.Persistent, channel.published[0].msg.DeliveryMode)

	message := &schema.PasswordResetLink{}
	require.NoError(t, message.Unmarshal(channel.published[0].msg.Body))
	require.Equal(t, link, message.Link())
	require.Equal(t, u.Email, message.User().Email)
}

func TestPublishFailure(t *testing.T) {
	log := logging.NewFakeLogger()
	publisher := NewRabbitMQ(log, &fakeChannel{returnError: true}, "", "q")

	err := publisher.SendPasswordResetLink(context.Background(), user.User{ID: 1}, user.PasswordResetLink{})

	require.Error(t, err)
	require.Equal(t, 1, log.CountByLevel(logging.ERROR))
}
