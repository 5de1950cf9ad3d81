package m_outbox

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Row mirrors one outbox_events row. ProcessedAt stays NULL until the relay
// has published the event.
type Row struct {
	EventID     string           `spanner:"event_id"`
	EventType   string           `spanner:"event_type"`
	AggregateID string           `spanner:"aggregate_id"`
	Payload     string           `spanner:"payload"`
	Status      string           `spanner:"status"`
	CreatedAt   time.Time        `spanner:"created_at"`
	ProcessedAt spanner.NullTime `spanner:"processed_at"`
}

// InsertMutation writes every column of r in a fixed order.
func InsertMutation(r Row) *spanner.Mutation {
	return spanner.Insert(TableName,
		[]string{ColEventID, ColEventType, ColAggregateID, ColPayload, ColStatus, ColCreatedAt, ColProcessedAt},
		[]interface{}{r.EventID, r.EventType, r.AggregateID, r.Payload, r.Status, r.CreatedAt, r.ProcessedAt},
	)
}

func MarkProcessedMutation(eventID string, processedAt time.Time) *spanner.Mutation {
	return spanner.Update(TableName,
		[]string{ColEventID, ColStatus, ColProcessedAt},
		[]interface{}{eventID, StatusProcessed, processedAt},
	)
}
