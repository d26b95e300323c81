package rabbitmq

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// HandlerFunc handles one price command message.
type HandlerFunc func(ctx context.Context, message []byte) error

// RabbitMQ consumes price commands and publishes messages to the price truth exchange.
type RabbitMQ struct {
	channel   *amqp.Channel
	exchange  string
	isRunning chan struct{}
}

// NewRabbitMQ opens a channel on connection and declares the price truth exchange.
func NewRabbitMQ(connection *amqp.Connection, exchange string) (*RabbitMQ, error) {
	channel, err := connection.Channel()
	if err != nil {
		return nil, fmt.Errorf("can't open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		amqp.ExchangeDirect,
		true,  // durable
		false, // auto delete
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("can't declare exchange: %w", err)
	}

	mq := RabbitMQ{
		channel:  channel,
		exchange: exchange,
	}

	return &mq, nil
}

// DeclareCommandQueue declares the durable command queue and binds it to the
// exchange under routingKey. Safe to call when the queue already exists.
func (mq *RabbitMQ) DeclareCommandQueue(queue, routingKey string) error {
	_, err := mq.channel.QueueDeclare(
		queue,
		true,  // durable
		false, // auto delete
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("can't declare queue: %w", err)
	}

	if err := mq.channel.QueueBind(queue, routingKey, mq.exchange, false, nil); err != nil {
		return fmt.Errorf("can't bind queue: %w", err)
	}

	return nil
}

// Publish publishes message to routing key.
func (mq *RabbitMQ) Publish(ctx context.Context, routingKey string, message []byte) error {
	msg := amqp.Publishing{
		ContentType: "application/json",
		Body:        message,
	}

	return mq.channel.PublishWithContext(
		ctx,
		mq.exchange,
		routingKey,
		false,
		false,
		msg,
	)
}

// Consume consumes messages from queue and passes deliveries to provided handler function.
// It returns channel with errors from handler function and consuming process.
// Function works asynchronously, it consumes messages in background as long as context is not closed.
// A lookup round scrapes several retailers, so the consumer takes one message at a time.
func (mq *RabbitMQ) Consume(ctx context.Context, queue string, handler HandlerFunc) (<-chan error, error) {
	if err := mq.channel.Qos(1, 0, false); err != nil {
		return nil, fmt.Errorf("can't set channel prefetch: %w", err)
	}

	consumerID, err := uuid.NewUUID()
	if err != nil {
		return nil, fmt.Errorf("can't create consumer ID: %w", err)
	}

	deliveries, err := mq.channel.Consume(
		queue,
		consumerID.String(),
		false, // auto acknowledge
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("can't start consuming: %w", err)
	}

	consumingErrors := make(chan error)
	mq.isRunning = make(chan struct{})
	go func() {
		defer close(mq.isRunning)
		mq.consumeMessages(ctx, deliveries, consumingErrors, handler)
	}()

	return consumingErrors, nil
}

func (mq *RabbitMQ) consumeMessages(
	ctx context.Context,
	deliveries <-chan amqp.Delivery,
	consumingErrors chan error,
	handler HandlerFunc,
) {
	for delivery := range deliveries {
		handlerErr := handler(ctx, delivery.Body)
		if handlerErr != nil {
			_ = pushError(ctx, handlerErr, consumingErrors)
		}

		if err := mq.settleMessage(ctx, &delivery, handlerErr == nil, consumingErrors); err != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// settleMessage acks a handled delivery or nacks a failed one without requeue,
// a command that failed once would fail the same way again.
func (mq *RabbitMQ) settleMessage(
	ctx context.Context,
	delivery *amqp.Delivery,
	handled bool,
	consumingErrors chan error,
) error {
	var err error
	if handled {
		err = delivery.Ack(false)
	} else {
		err = delivery.Nack(false, false)
	}

	if err != nil {
		if pushErr := pushError(ctx, fmt.Errorf("can't settle message: %w", err), consumingErrors); pushErr != nil {
			return pushErr
		}
	}

	return nil
}

// Done returns channel which will be closed when consuming will be finished.
func (mq *RabbitMQ) Done() chan struct{} {
	return mq.isRunning
}

func pushError(ctx context.Context, err error, errChan chan error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case errChan <- err:
	}
	return nil
}
