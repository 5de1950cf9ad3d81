package get_order

import (
	"context"
	"fmt"

	contracts "github.com/murkotick/storefront-service/internal/app/order/contracts"
	"github.com/murkotick/storefront-service/internal/app/order/domain"
)

// Viewer is the authenticated caller asking for an order.
type Viewer struct {
	UserID  string
	IsAdmin bool
}

type Handler struct {
	Reader contracts.OrderReader
}

func NewHandler(reader contracts.OrderReader) *Handler {
	return &Handler{Reader: reader}
}

// Execute returns the order to its owner or to an admin. Anyone else gets
// ErrOrderNotFound so order ids cannot be probed.
func (h *Handler) Execute(ctx context.Context, orderID string, viewer Viewer) (*domain.Order, error) {
	if orderID == "" {
		return nil, domain.ErrOrderNotFound
	}
	o, err := h.Reader.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !viewer.IsAdmin && o.UserID() != viewer.UserID {
		return nil, fmt.Errorf("get order %s: %w", orderID, domain.ErrOrderNotFound)
	}
	return o, nil
}
