package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KOFI-GYIMAH/github-repos/internal/models"
	"github.com/KOFI-GYIMAH/github-repos/pkg/errors"
	"github.com/KOFI-GYIMAH/github-repos/pkg/logger"
	"github.com/streadway/amqp"
)

const RequestLogQueue = "github_request_log"

// channel is the subset of *amqp.Channel the publisher needs.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQ publishes request logs to a durable queue. It satisfies
// models.RequestSink.
type RabbitMQ struct {
	conn    *amqp.Connection
	channel channel
	queue   string
}

type requestLogMessage struct {
	Method string              `json:"method"`
	URL    string              `json:"url"`
	Header map[string][]string `json:"header"`
	SentAt time.Time           `json:"sent_at"`
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.New(
			"QUEUE_CONNECTION_ERROR",
			"Failed to connect to RabbitMQ",
			"Could not dial the broker",
			err,
			errors.LevelError,
		)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.New(
			"QUEUE_CONNECTION_ERROR",
			"Failed to open RabbitMQ channel",
			"Could not open a channel on the broker connection",
			err,
			errors.LevelError,
		)
	}

	r, err := newWithChannel(ch)
	if err != nil {
		conn.Close()
		return nil, err
	}
	r.conn = conn

	logger.Info("publishing request logs to queue %s", RequestLogQueue)
	return r, nil
}

func newWithChannel(ch channel) (*RabbitMQ, error) {
	q, err := ch.QueueDeclare(
		RequestLogQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, errors.New(
			"QUEUE_DECLARE_ERROR",
			"Failed to declare request log queue",
			"Could not declare queue "+RequestLogQueue,
			err,
			errors.LevelError,
		)
	}

	return &RabbitMQ{channel: ch, queue: q.Name}, nil
}

func (r *RabbitMQ) Record(_ context.Context, entry models.RequestLog) error {
	body, err := json.Marshal(requestLogMessage{
		Method: entry.Method,
		URL:    entry.URL,
		Header: entry.RedactedHeader(),
		SentAt: entry.SentAt,
	})
	if err != nil {
		return err
	}

	err = r.channel.Publish(
		"",
		r.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return errors.New(
			"QUEUE_PUBLISH_ERROR",
			"Failed to publish request log",
			"Could not publish to queue "+r.queue,
			err,
			errors.LevelWarning,
		)
	}
	return nil
}

func (r *RabbitMQ) Close() error {
	if err := r.channel.Close(); err != nil {
		return err
	}
	if r.conn == nil {
		return nil
	}
	return r.conn.Close()
}
