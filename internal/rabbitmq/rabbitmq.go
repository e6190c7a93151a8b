package rabbitmq

import (
	"context"
	"dinehub/internal/core/domain/logging"
	"fmt"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Delay between reconnection attempts.
const reconnectDelay = 3 * time.Second

// Connection is an amqp.Connection that redials the broker after an abnormal close.
type Connection struct {
	*amqp.Connection
	log logging.Logger
}

func Dial(url string, log logging.Logger) (*Connection, error) {
	if log == nil {
		return nil, fmt.Errorf("log argument must not be nil")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	connection := &Connection{Connection: conn, log: log}

	go func() {
		for {
			reason, ok := <-connection.Connection.NotifyClose(make(chan *amqp.Error))
			if !ok {
				log.Info(context.Background(), "RabbitMQ connection closed.")
				return
			}
			log.Warning(context.Background(), "RabbitMQ connection lost.", logging.Entry("reason", *reason))
			retry(log, "RabbitMQ reconnect", func() error {
				conn, err := amqp.Dial(url)
				if err != nil {
					return err
				}
				connection.Connection = conn
				return nil
			})
		}
	}()

	return connection, nil
}

// Channel opens a channel that is recreated after an abnormal close.
func (c *Connection) Channel() (*Channel, error) {
	ch, err := c.Connection.Channel()
	if err != nil {
		return nil, err
	}
	channel := &Channel{Channel: ch, log: c.log}

	go func() {
		for {
			reason, ok := <-channel.Channel.NotifyClose(make(chan *amqp.Error))
			if !ok || channel.IsClosed() {
				// Sets the closed flag when the channel went down with its connection.
				channel.Close()
				return
			}
			c.log.Warning(context.Background(), "RabbitMQ channel lost.", logging.Entry("reason", *reason))
			retry(c.log, "RabbitMQ channel recreate", func() error {
				ch, err := c.Connection.Channel()
				if err != nil {
					return err
				}
				channel.Channel = ch
				return nil
			})
		}
	}()

	return channel, nil
}

type Channel struct {
	*amqp.Channel
	closed int32
	log    logging.Logger
}

// IsClosed reports whether Close has been called.
func (ch *Channel) IsClosed() bool {
	return atomic.LoadInt32(&ch.closed) == 1
}

func (ch *Channel) Close() error {
	if ch.IsClosed() {
		return amqp.ErrClosed
	}
	atomic.StoreInt32(&ch.closed, 1)
	return ch.Channel.Close()
}

// DeclareQueue declares a durable queue bound to the default exchange.
func (ch *Channel) DeclareQueue(name string) error {
	_, err := ch.Channel.QueueDeclare(name, true, false, false, false, nil)
	return err
}

// Consume keeps delivering messages across channel recreation
// until the channel is closed with Close.
func (ch *Channel) Consume(
	queue, consumer string,
	autoAck, exclusive, noLocal, noWait bool,
	args amqp.Table,
) (<-chan amqp.Delivery, error) {
	deliveries := make(chan amqp.Delivery)
	start := func() (<-chan amqp.Delivery, error) {
		return ch.Channel.Consume(queue, consumer, autoAck, exclusive, noLocal, noWait, args)
	}
	go consumeLoop(queue, start, ch.IsClosed, deliveries, ch.log, reconnectDelay)

	return deliveries, nil
}

// consumeLoop forwards deliveries from start to out and calls start again
// after a failure or an exhausted delivery channel, until isClosed reports true.
// out is closed on return.
func consumeLoop(
	queue string,
	start func() (<-chan amqp.Delivery, error),
	isClosed func() bool,
	out chan<- amqp.Delivery,
	log logging.Logger,
	delay time.Duration,
) {
	defer close(out)
	for {
		d, err := start()
		if err != nil {
			log.Error(context.Background(), "Consume failed.", logging.Entry("err", err))
		} else {
			for msg := range d {
				out <- msg
			}
		}

		// The closed flag may be set only after the delivery channel is drained.
		time.Sleep(delay)
		if isClosed() {
			log.Info(context.Background(), "Channel is closed, stop consuming.", logging.Entry("queue", queue))
			return
		}
	}
}

func retry(log logging.Logger, what string, attempt func() error) {
	for {
		time.Sleep(reconnectDelay)
		err := attempt()
		if err == nil {
			log.Info(context.Background(), what+" succeeded.")
			return
		}
		log.Error(context.Background(), what+" failed.", logging.Entry("err", err))
	}
}
