package shared

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/murkotick/storefront-service/internal/app/outbox"
	"github.com/murkotick/storefront-service/internal/app/product/domain"
)

func moneyPayload(m *domain.Money) map[string]interface{} {
	if m == nil {
		return nil
	}
	return map[string]interface{}{
		"numerator":   m.Numerator(),
		"denominator": m.Denominator(),
	}
}

// MarshalDomainEventPayload converts a domain event into a JSON payload suitable for the outbox.
// Money is flattened to numerator/denominator.
func MarshalDomainEventPayload(ev domain.DomainEvent) (string, error) {
	if ev == nil {
		return "{}", nil
	}

	var payload map[string]interface{}
	switch e := ev.(type) {
	case *domain.ProductCreatedEvent:
		payload = map[string]interface{}{
			"product_id": e.ProductID,
			"name":       e.Name,
			"brand":      e.Brand,
			"category":   e.Category,
			"price":      moneyPayload(e.Price),
			"created_at": e.CreatedAt,
		}

	case *domain.ProductUpdatedEvent:
		payload = map[string]interface{}{
			"product_id": e.ProductID,
			"changes":    e.Changes,
			"updated_at": e.UpdatedAt,
		}

	case *domain.PriceChangedEvent:
		payload = map[string]interface{}{
			"product_id": e.ProductID,
			"old_price":  moneyPayload(e.OldPrice),
			"new_price":  moneyPayload(e.NewPrice),
			"changed_at": e.ChangedAt,
		}

	case *domain.ProductDeletedEvent:
		payload = map[string]interface{}{
			"product_id": e.ProductID,
			"deleted_at": e.DeletedAt,
		}

	default:
		b, err := json.Marshal(ev)
		if err != nil {
			return "", fmt.Errorf("marshal outbox payload for %T: %w", ev, err)
		}
		return string(b), nil
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal outbox payload for %s: %w", ev.EventType(), err)
	}
	return string(b), nil
}

// OutboxEvents enriches every recorded domain event into an outbox row.
func OutboxEvents(events []domain.DomainEvent, now time.Time) ([]*outbox.Event, error) {
	out := make([]*outbox.Event, 0, len(events))
	for _, ev := range events {
		payload, err := MarshalDomainEventPayload(ev)
		if err != nil {
			return nil, err
		}
		out = append(out, outbox.NewEvent(ev.EventType(), ev.AggregateID(), payload, now))
	}
	return out, nil
}
