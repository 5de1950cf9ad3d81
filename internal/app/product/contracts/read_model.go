package contracts

import (
	"context"

	"github.com/murkotick/storefront-service/internal/app/product/dto"
)

// ReadModel is the catalog query contract.
// GetProduct returns domain.ErrProductNotFound for an unknown id.
type ReadModel interface {
	GetProduct(ctx context.Context, productID string) (*dto.ProductDTO, error)
	ListProducts(ctx context.Context, filter dto.ProductFilter, sort dto.ProductSort, page dto.PageRequest) (*dto.ProductPage, error)
	ListFacets(ctx context.Context) (*dto.Facets, error)
}
