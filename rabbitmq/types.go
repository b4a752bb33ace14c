// SPDX-License-Identifier: GPL-3.0-only

package rabbitmq

import (
	"context"
	"raex-server/commons"

	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultExchange = "raex.files"

type Config struct {
	AMQPURL  string
	Exchange string
}

// ConfigFromEnv reads RABBITMQ_AMQP_URL and RABBITMQ_EXCHANGE. An empty
// AMQPURL means events are disabled.
func ConfigFromEnv() Config {
	return Config{
		AMQPURL:  commons.GetEnv("RABBITMQ_AMQP_URL"),
		Exchange: commons.GetEnv("RABBITMQ_EXCHANGE", DefaultExchange),
	}
}

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	exchange string
	conn     *amqp.Connection
	channel  channel
}
