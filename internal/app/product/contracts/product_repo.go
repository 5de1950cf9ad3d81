package contracts

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/storefront-service/internal/app/outbox"
	domain "github.com/murkotick/storefront-service/internal/app/product/domain"
)

// ProductRepo is the write-side repository interface for products.
// Methods return Spanner mutations; they do not apply them.
type ProductRepo interface {
	InsertMut(p *domain.Product) *spanner.Mutation

	// UpdateMut writes only the columns the ChangeTracker marked dirty (or returns nil).
	UpdateMut(p *domain.Product) *spanner.Mutation

	DeleteMut(p *domain.Product) *spanner.Mutation
}

// OutboxRepo returns the mutation persisting one outbox event.
type OutboxRepo interface {
	InsertMut(e *outbox.Event) *spanner.Mutation
}
