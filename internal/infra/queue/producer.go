package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const MessageLeadCaptured = "LeadCaptured"

// LeadCapturedPayload is published once per contact created from the landing page.
type LeadCapturedPayload struct {
	ContactID  string    `json:"contactId"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Source     string    `json:"source"`
	CapturedAt time.Time `json:"capturedAt"`
}

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Producer struct {
	ch publisher
}

func NewProducer(ch publisher) *Producer {
	return &Producer{ch: ch}
}

func (p *Producer) PublishLeadCaptured(ctx context.Context, payload LeadCapturedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode lead payload: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Type:         MessageLeadCaptured,
			MessageId:    payload.ContactID,
			Timestamp:    payload.CapturedAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish lead %s: %w", payload.ContactID, err)
	}
	return nil
}
