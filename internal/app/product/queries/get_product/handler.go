package get_product

import (
	"context"

	"github.com/google/uuid"

	contracts "github.com/murkotick/storefront-service/internal/app/product/contracts"
	"github.com/murkotick/storefront-service/internal/app/product/domain"
	"github.com/murkotick/storefront-service/internal/app/product/dto"
)

type Handler struct {
	readModel contracts.ReadModel
}

func NewHandler(r contracts.ReadModel) *Handler {
	return &Handler{readModel: r}
}

// Execute returns domain.ErrInvalidProductID for a malformed id and
// domain.ErrProductNotFound when no product has it.
func (h *Handler) Execute(ctx context.Context, productID string) (*dto.ProductDTO, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return nil, domain.ErrInvalidProductID
	}
	return h.readModel.GetProduct(ctx, productID)
}
