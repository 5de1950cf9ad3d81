package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/storefront-service/internal/app/order/domain"
	"github.com/murkotick/storefront-service/internal/app/outbox"
	"github.com/murkotick/storefront-service/internal/app/product/dto"
	commitplan "github.com/murkotick/storefront-service/internal/pkg/committer"
)

// OrderRepo returns the mutations persisting a new order and its lines.
type OrderRepo interface {
	InsertMuts(o *domain.Order) ([]*spanner.Mutation, error)
}

type OutboxRepo interface {
	InsertMut(e *outbox.Event) *spanner.Mutation
}

type Committer interface {
	Apply(ctx context.Context, plan *commitplan.Plan) error
}

// OrderReader returns domain.ErrOrderNotFound for an unknown id.
type OrderReader interface {
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
}

// CatalogReader is the slice of the catalog read model order submission needs.
type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (*dto.ProductDTO, error)
}
