package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// WelcomeSender delivers the welcome message to a freshly captured lead.
type WelcomeSender interface {
	SendWelcome(ctx context.Context, lead LeadCapturedPayload) error
}

type consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	ch     consumer
	sender WelcomeSender
	log    *zap.Logger
}

func NewWorker(ch consumer, sender WelcomeSender, log *zap.Logger) *Worker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Worker{ch: ch, sender: sender, log: log.Named("welcome_worker")}
}

// Start consumes queueName until ctx is done or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register consumer on %s: %w", queueName, err)
	}

	w.log.Info("worker waiting for leads", zap.String("queue", queueName))
	for {
		select {
		case <-ctx.Done():
			w.log.Info("worker stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				w.log.Warn("delivery channel closed")
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

// handle acks delivered welcomes. Malformed messages go straight to the dead
// letter queue; a failed send is retried once through redelivery.
func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var lead LeadCapturedPayload
	if err := json.Unmarshal(d.Body, &lead); err != nil || lead.Email == "" {
		w.log.Error("discarding malformed lead message", zap.Error(err), zap.String("message_id", d.MessageId))
		w.settle(d.Nack(false, false))
		return
	}

	log := w.log.With(zap.String("contact_id", lead.ContactID))
	if err := w.sender.SendWelcome(ctx, lead); err != nil {
		requeue := !d.Redelivered
		log.Error("welcome email failed", zap.Error(err), zap.Bool("requeue", requeue))
		w.settle(d.Nack(false, requeue))
		return
	}

	log.Info("welcome email sent")
	w.settle(d.Ack(false))
}

func (w *Worker) settle(err error) {
	if err != nil {
		w.log.Error("failed to settle delivery", zap.Error(err))
	}
}
