package domain

import "time"

// DomainEvent is a fact recorded by an aggregate and written to the outbox.
type DomainEvent interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

type ProductCreatedEvent struct {
	ProductID string
	Name      string
	Brand     string
	Category  string
	Price     *Money
	CreatedAt time.Time
}

func (e *ProductCreatedEvent) EventType() string     { return "product.created" }
func (e *ProductCreatedEvent) AggregateID() string   { return e.ProductID }
func (e *ProductCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// ProductUpdatedEvent carries the new value of each changed field.
type ProductUpdatedEvent struct {
	ProductID string
	UpdatedAt time.Time
	Changes   map[string]interface{}
}

func (e *ProductUpdatedEvent) EventType() string     { return "product.updated" }
func (e *ProductUpdatedEvent) AggregateID() string   { return e.ProductID }
func (e *ProductUpdatedEvent) OccurredAt() time.Time { return e.UpdatedAt }

// PriceChangedEvent is raised alongside ProductUpdatedEvent when the list price moves.
type PriceChangedEvent struct {
	ProductID string
	OldPrice  *Money
	NewPrice  *Money
	ChangedAt time.Time
}

func (e *PriceChangedEvent) EventType() string     { return "price.changed" }
func (e *PriceChangedEvent) AggregateID() string   { return e.ProductID }
func (e *PriceChangedEvent) OccurredAt() time.Time { return e.ChangedAt }

type ProductDeletedEvent struct {
	ProductID string
	DeletedAt time.Time
}

func (e *ProductDeletedEvent) EventType() string     { return "product.deleted" }
func (e *ProductDeletedEvent) AggregateID() string   { return e.ProductID }
func (e *ProductDeletedEvent) OccurredAt() time.Time { return e.DeletedAt }
