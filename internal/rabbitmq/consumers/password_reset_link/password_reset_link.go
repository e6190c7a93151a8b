package passwordresetlink

import (
	"context"
	e "dinehub/internal/core/domain/errors"
	"dinehub/internal/core/domain/logging"
	"dinehub/internal/core/domain/user"
	"dinehub/internal/rabbitmq"
	"dinehub/internal/rabbitmq/schema"
	"errors"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

var errMalformedMessage = errors.New("malformed password reset link message")

// Consumer delivers queued password reset links through the given sender.
// A message that could not be sent is requeued once.
type Consumer struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	sender  user.PasswordResetLinkSender
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	sender user.PasswordResetLinkSender,
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	return &Consumer{log: log, channel: channel, queue: queue, sender: sender}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			err := c.handle(context.Background(), delivery.Body)
			switch {
			case err == nil, errors.Is(err, errMalformedMessage):
				c.ack(delivery)
			default:
				c.reject(delivery, !delivery.Redelivered)
			}
		}
	}()
	return nil
}

func (c *Consumer) handle(ctx context.Context, body []byte) error {
	message := &schema.PasswordResetLink{}
	if err := message.Unmarshal(body); err != nil {
		c.log.Error(ctx, "Could not unmarshal password reset link.", logging.Entry("err", err))
		return fmt.Errorf("%w: %v", errMalformedMessage, err)
	}
	if message.Email == "" || message.UID == "" || message.Token == "" {
		c.log.Error(ctx, "Password reset link message is incomplete.", logging.Entry("userId", message.UserID))
		return errMalformedMessage
	}

	if err := c.sender.SendPasswordResetLink(ctx, message.User(), message.Link()); err != nil {
		c.log.Error(
			ctx,
			"Could not send password reset link.",
			logging.Entry("userId", message.UserID),
			logging.Entry("err", err),
		)
		return err
	}
	c.log.Info(ctx, "Password reset link has been sent.", logging.Entry("userId", message.UserID))
	return nil
}

func (c *Consumer) ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}

func (c *Consumer) reject(delivery amqp091.Delivery, requeue bool) {
	if err := delivery.Reject(requeue); err != nil {
		c.log.Error(context.Background(), "Could not reject AMQP message.", logging.Entry("err", err))
	}
}
