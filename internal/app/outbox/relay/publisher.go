package relay

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/murkotick/storefront-service/internal/app/outbox"
)

// Publisher delivers one event downstream. Returning an error leaves the
// event pending for the next run.
type Publisher interface {
	Publish(ctx context.Context, e *outbox.Event) error
}

// LogPublisher writes each event as a structured log line. It is the default
// until a broker is wired in.
type LogPublisher struct {
	Log logrus.FieldLogger
}

func (p LogPublisher) Publish(_ context.Context, e *outbox.Event) error {
	p.Log.WithFields(logrus.Fields{
		"event_id":     e.EventID,
		"event_type":   e.EventType,
		"aggregate_id": e.AggregateID,
		"payload":      e.PayloadJSON,
	}).Info("outbox event published")
	return nil
}
