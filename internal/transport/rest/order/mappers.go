package order

import (
	"strings"
	"time"

	"github.com/murkotick/storefront-service/internal/app/order/domain"
	"github.com/murkotick/storefront-service/internal/app/order/usecases/submit_order"
)

// lineJSON accepts productId, or _id as sent by stored carts.
type lineJSON struct {
	ProductID string `json:"productId"`
	CartID    string `json:"_id"`
	Size      string `json:"size"`
	Quantity  int64  `json:"quantity"`
}

type submitRequest struct {
	Items           []lineJSON      `json:"items"`
	ShippingAddress domain.Address  `json:"shippingAddress"`
	BillingAddress  *domain.Address `json:"billingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	Notes           string          `json:"notes"`
	// Total is what the client displayed; only compared, never trusted.
	Total *float64 `json:"total"`
}

type itemJSON struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductImage string  `json:"productImage,omitempty"`
	Brand        string  `json:"brand"`
	Size         string  `json:"size"`
	Quantity     int64   `json:"quantity"`
	Price        float64 `json:"price"`
}

type orderJSON struct {
	OrderID         string         `json:"orderId"`
	UserID          string         `json:"userId"`
	Items           []itemJSON     `json:"items"`
	Status          string         `json:"status"`
	ShippingAddress domain.Address `json:"shippingAddress"`
	BillingAddress  domain.Address `json:"billingAddress"`
	PaymentMethod   string         `json:"paymentMethod"`
	PaymentStatus   string         `json:"paymentStatus"`
	Subtotal        float64        `json:"subtotal"`
	ShippingCost    float64        `json:"shippingCost"`
	Tax             float64        `json:"tax"`
	Total           float64        `json:"total"`
	Notes           string         `json:"notes,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
}

func mapSubmitRequest(userID string, req submitRequest) submit_order.Request {
	out := submit_order.Request{
		UserID:          userID,
		Items:           make([]submit_order.LineRequest, 0, len(req.Items)),
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
		ClientTotal:     req.Total,
	}
	for _, l := range req.Items {
		id := strings.TrimSpace(l.ProductID)
		if id == "" {
			id = strings.TrimSpace(l.CartID)
		}
		out.Items = append(out.Items, submit_order.LineRequest{ProductID: id, Size: l.Size, Quantity: l.Quantity})
	}
	return out
}

func mapOrder(o *domain.Order) orderJSON {
	t := o.Totals()
	out := orderJSON{
		OrderID:         o.ID(),
		UserID:          o.UserID(),
		Status:          string(o.Status()),
		ShippingAddress: o.ShippingAddress(),
		BillingAddress:  o.BillingAddress(),
		PaymentMethod:   string(o.PaymentMethod()),
		PaymentStatus:   string(o.PaymentStatus()),
		Subtotal:        t.Subtotal.Float64(),
		ShippingCost:    t.ShippingCost.Float64(),
		Tax:             t.Tax.Float64(),
		Total:           t.Total.Float64(),
		Notes:           o.Notes(),
		CreatedAt:       o.CreatedAt(),
	}
	for _, it := range o.Items() {
		out.Items = append(out.Items, itemJSON{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			ProductImage: it.ProductImage,
			Brand:        it.Brand,
			Size:         it.Size,
			Quantity:     it.Quantity,
			Price:        it.UnitPrice.Float64(),
		})
	}
	return out
}
