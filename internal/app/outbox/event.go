// Package outbox holds the transactional outbox shared by every write usecase.
// Events are written in the same commit as the aggregate change and relayed
// later by the relay worker.
package outbox

import (
	"time"

	"github.com/google/uuid"
	"github.com/murkotick/storefront-service/internal/models/m_outbox"
)

// Event is the application-level representation of an outbox row.
type Event struct {
	EventID      string
	EventType    string
	AggregateID  string
	PayloadJSON  string
	Status       string
	CreatedAtUTC time.Time
}

// NewEvent builds a pending event with a fresh id.
func NewEvent(eventType, aggregateID, payloadJSON string, now time.Time) *Event {
	return &Event{
		EventID:      uuid.New().String(),
		EventType:    eventType,
		AggregateID:  aggregateID,
		PayloadJSON:  payloadJSON,
		Status:       m_outbox.StatusPending,
		CreatedAtUTC: now.UTC(),
	}
}

func (e *Event) row() m_outbox.Row {
	return m_outbox.Row{
		EventID:     e.EventID,
		EventType:   e.EventType,
		AggregateID: e.AggregateID,
		Payload:     e.PayloadJSON,
		Status:      e.Status,
		CreatedAt:   e.CreatedAtUTC,
	}
}
