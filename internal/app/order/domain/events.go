package domain

import (
	"time"

	pdomain "github.com/murkotick/storefront-service/internal/app/product/domain"
)

type DomainEvent = pdomain.DomainEvent

type OrderPlacedEvent struct {
	OrderID   string
	UserID    string
	ItemCount int
	Total     *pdomain.Money
	PlacedAt  time.Time
}

func (e *OrderPlacedEvent) EventType() string     { return "order.placed" }
func (e *OrderPlacedEvent) AggregateID() string   { return e.OrderID }
func (e *OrderPlacedEvent) OccurredAt() time.Time { return e.PlacedAt }
