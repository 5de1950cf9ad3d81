package m_outbox

const (
	TableName = "outbox_events"

	// IndexByStatus covers (status, created_at) for the relay scan.
	IndexByStatus = "outbox_events_by_status"

	ColEventID     = "event_id"
	ColEventType   = "event_type"
	ColAggregateID = "aggregate_id"
	ColPayload     = "payload"
	ColStatus      = "status"
	ColCreatedAt   = "created_at"
	ColProcessedAt = "processed_at"
)

const (
	StatusPending   = "pending"
	StatusProcessed = "processed"
)
