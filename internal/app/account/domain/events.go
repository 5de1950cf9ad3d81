package domain

import (
	"time"

	pdomain "github.com/murkotick/storefront-service/internal/app/product/domain"
)

type DomainEvent = pdomain.DomainEvent

type UserRegisteredEvent struct {
	UserID       string
	Email        string
	RegisteredAt time.Time
}

func (e *UserRegisteredEvent) EventType() string     { return "user.registered" }
func (e *UserRegisteredEvent) AggregateID() string   { return e.UserID }
func (e *UserRegisteredEvent) OccurredAt() time.Time { return e.RegisteredAt }
