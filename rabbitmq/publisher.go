// SPDX-License-Identifier: GPL-3.0-only

// Package rabbitmq announces stored records on an AMQP topic exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"raex-server/commons"
	"raex-server/models"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
)

const routingKeyPrefix = "file.ingested."

// NewPublisher connects to the broker and declares the durable topic exchange
// events are sent to.
func NewPublisher(c Config) (*Publisher, error) {
	if c.Exchange == "" {
		c.Exchange = DefaultExchange
	}

	conn, err := amqp.Dial(c.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("channel: %w", err)
	}

	if err := ch.ExchangeDeclare(c.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("exchange declare: %w", err)
	}

	commons.Logger.Infof("RabbitMQ publisher ready (exchange=%s)", c.Exchange)
	return &Publisher{exchange: c.Exchange, conn: conn, channel: ch}, nil
}

// RoutingKey is file.ingested.<primary TADIG code>, or file.ingested.unknown.
func RoutingKey(record *models.FileRecord) string {
	code := "unknown"
	if record.PrimaryTADIGCode != nil && *record.PrimaryTADIGCode != "" {
		code = strings.ReplaceAll(*record.PrimaryTADIGCode, ".", "_")
	}
	return routingKeyPrefix + code
}

// PublishIngested sends a persistent JSON IngestEvent for record.
func (p *Publisher) PublishIngested(ctx context.Context, record *models.FileRecord) error {
	event := models.NewIngestEvent(record)
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal ingest event: %w", err)
	}

	key := RoutingKey(record)
	if err := p.channel.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID,
		Timestamp:    event.CreatedAt,
		Body:         body,
	}); err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}
	commons.Logger.Debugf("Published ingest event %s (key=%s)", event.EventID, key)
	return nil
}

func (p *Publisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
