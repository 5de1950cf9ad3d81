package outbox

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/storefront-service/internal/models/m_outbox"
)

// SpannerReader scans pending events through the status index.
type SpannerReader struct {
	Client *spanner.Client
}

func NewSpannerReader(client *spanner.Client) *SpannerReader {
	return &SpannerReader{Client: client}
}

// ListPending returns up to limit pending events, oldest first.
func (r *SpannerReader) ListPending(ctx context.Context, limit int) ([]*Event, error) {
	stmt := spanner.Statement{
		SQL: fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s
FROM %s@{FORCE_INDEX=%s}
WHERE %s = @status
ORDER BY %s
LIMIT @limit`,
			m_outbox.ColEventID, m_outbox.ColEventType, m_outbox.ColAggregateID,
			m_outbox.ColPayload, m_outbox.ColStatus, m_outbox.ColCreatedAt,
			m_outbox.TableName, m_outbox.IndexByStatus,
			m_outbox.ColStatus, m_outbox.ColCreatedAt),
		Params: map[string]interface{}{
			"status": m_outbox.StatusPending,
			"limit":  int64(limit),
		},
	}

	iter := r.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var out []*Event
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list pending outbox events: %w", err)
		}
		var e Event
		if err := row.Columns(&e.EventID, &e.EventType, &e.AggregateID, &e.PayloadJSON, &e.Status, &e.CreatedAtUTC); err != nil {
			return nil, fmt.Errorf("decode outbox event: %w", err)
		}
		out = append(out, &e)
	}
	return out, nil
}
