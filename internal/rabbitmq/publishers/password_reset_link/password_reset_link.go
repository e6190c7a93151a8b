package passwordresetlink

import (
	"context"
	e "dinehub/internal/core/domain/errors"
	"dinehub/internal/core/domain/logging"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

// Channel is the part of *rabbitmq.Channel the publisher needs.
type Channel interface {
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp091.Publishing,
	) error
}

// RabbitMQ queues password reset links for the mailer instead of sending them inline.
type RabbitMQ struct {
	log        logging.Logger
	channel    Channel
	exchange   string
	routingKey string
}

func NewRabbitMQ(log logging.Logger, channel Channel, exchange string, routingKey string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange, routingKey: routingKey}
}

func (s *RabbitMQ) SendPasswordResetLink(ctx context.Context, u user.User, link user.PasswordResetLink) error {
	message := schema.NewPasswordResetLink(u, link)
	body, err := message.Marshal()
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", u.ID))
		return err
	}
	err = s.channel.PublishWithContext(ctx, s.exchange, s.routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", u.ID))
		return err
	}
	s.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", s.exchange),
		logging.Entry("RK", s.routingKey),
		logging.Entry("userId", u.ID),
	)
	return nil
}
