package cart

import (
	"errors"
	"strings"

	"github.com/murkotick/storefront-service/internal/app/pricing"
)

var (
	// ErrInvalidLineItem rejects items with an empty product id or size,
	// a quantity below one, or a negative price.
	ErrInvalidLineItem = errors.New("invalid cart line item")

	// ErrEmptyCart is returned by Checkout when there is nothing to order.
	ErrEmptyCart = errors.New("cart is empty")
)

// LineItem is one product/size pair in the cart. The name, brand, price and
// image are a snapshot taken when the item was added; later catalog changes
// do not update them.
//
// The JSON keys are the persisted storage format.
type LineItem struct {
	ProductID string  `json:"_id"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	UnitPrice float64 `json:"price"`
	ImageRef  string  `json:"image"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
}

// Key is the uniqueness key of a line.
type Key struct {
	ProductID string
	Size      string
}

func (li LineItem) Key() Key {
	return Key{ProductID: li.ProductID, Size: li.Size}
}

// LineTotal is UnitPrice * Quantity.
func (li LineItem) LineTotal() float64 {
	return pricing.LineTotal(li.UnitPrice, li.Quantity)
}

func (li LineItem) validate() error {
	switch {
	case strings.TrimSpace(li.ProductID) == "":
		return errors.Join(ErrInvalidLineItem, errors.New("product id is required"))
	case strings.TrimSpace(li.Size) == "":
		return errors.Join(ErrInvalidLineItem, errors.New("size is required"))
	case li.Quantity < 1:
		return errors.Join(ErrInvalidLineItem, errors.New("quantity must be at least 1"))
	case li.UnitPrice < 0:
		return errors.Join(ErrInvalidLineItem, errors.New("price cannot be negative"))
	}
	return nil
}
