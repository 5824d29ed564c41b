// Package events publishes review activity to a RabbitMQ topic exchange.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/abhisek/pathrecall/internal/review"
)

// DefaultExchange is the topic exchange events are published to.
const DefaultExchange = "pathrecall.events"

// Routing keys.
const (
	KeyReviewCompleted = "review.completed"
	KeyReviewDue       = "review.due"
)

const publishTimeout = 5 * time.Second

// Envelope is the JSON body of every published message.
type Envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// ReviewCompletedPayload is published after a rating has been persisted.
type ReviewCompletedPayload struct {
	UserID        string    `json:"user_id"`
	ItemID        string    `json:"item_id"`
	Rating        int       `json:"rating"`
	MasteryBefore int       `json:"mastery_before"`
	MasteryAfter  int       `json:"mastery_after"`
	ReviewedAt    time.Time `json:"reviewed_at"`
	NextReviewAt  time.Time `json:"next_review_at"`
}

// DueReminderPayload tells a user how many items are waiting.
type DueReminderPayload struct {
	UserID   string `json:"user_id"`
	DueCount int    `json:"due_count"`
}

// channel is the part of *amqp091.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher sends events to the broker. A Publisher created without a
// broker URL is disabled and drops every event after logging it.
type Publisher struct {
	conn     *amqp091.Connection
	ch       channel
	exchange string
	enabled  bool
	log      *zap.Logger
	now      func() time.Time
}

var _ review.Listener = (*Publisher)(nil)

// NewPublisher dials url and declares the exchange. An empty url yields a
// disabled publisher.
func NewPublisher(url, exchange string, log *zap.Logger) (*Publisher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if exchange == "" {
		exchange = DefaultExchange
	}
	if url == "" {
		log.Info("broker url is empty, event publishing is disabled")
		return &Publisher{exchange: exchange, log: log, now: time.Now}, nil
	}

	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
		enabled:  true,
		log:      log,
		now:      time.Now,
	}, nil
}

// Enabled reports whether events reach a broker.
func (p *Publisher) Enabled() bool {
	return p.enabled
}

// OnReviewCompleted publishes a review.completed event.
func (p *Publisher) OnReviewCompleted(ctx context.Context, c review.Completed) error {
	return p.publish(ctx, KeyReviewCompleted, ReviewCompletedPayload{
		UserID:        c.UserID,
		ItemID:        c.ItemID,
		Rating:        int(c.Rating),
		MasteryBefore: c.MasteryBefore,
		MasteryAfter:  c.MasteryAfter,
		ReviewedAt:    c.ReviewedAt,
		NextReviewAt:  c.NextReviewAt,
	})
}

// NotifyDue publishes a review.due event.
func (p *Publisher) NotifyDue(ctx context.Context, userID string, dueCount int) error {
	return p.publish(ctx, KeyReviewDue, DueReminderPayload{UserID: userID, DueCount: dueCount})
}

func (p *Publisher) publish(ctx context.Context, key string, payload any) error {
	if !p.enabled {
		p.log.Debug("event publishing disabled, skipping", zap.String("routing_key", key))
		return nil
	}

	body, err := json.Marshal(Envelope{Type: key, Payload: payload})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(
		pubCtx,
		p.exchange, // exchange
		key,        // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    p.now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}

	p.log.Debug("event published", zap.String("routing_key", key))
	return nil
}

// Close closes the channel and the connection.
func (p *Publisher) Close() error {
	if !p.enabled {
		return nil
	}
	if err := p.ch.Close(); err != nil {
		p.log.Warn("close broker channel", zap.Error(err))
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("close broker connection: %w", err)
		}
	}
	return nil
}
