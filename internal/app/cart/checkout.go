package cart

import (
	"context"
	"fmt"
)

// Address is a shipping or billing address as entered at checkout.
type Address struct {
	FullName   string `json:"fullName"`
	Street     string `json:"street"`
	Apartment  string `json:"apartment,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
}

// CheckoutDetails is what the shopper enters on the checkout form.
type CheckoutDetails struct {
	ShippingAddress Address
	// BillingAddress defaults to the shipping address when nil.
	BillingAddress *Address
	PaymentMethod  string
	Notes          string
}

// OrderSnapshot is the immutable hand-off to order submission. Amounts are
// informational; the server recomputes them.
type OrderSnapshot struct {
	Items           []LineItem `json:"items"`
	Subtotal        float64    `json:"subtotal"`
	ShippingCost    float64    `json:"shippingCost"`
	TaxAmount       float64    `json:"taxAmount"`
	Total           float64    `json:"total"`
	ShippingAddress Address    `json:"shippingAddress"`
	BillingAddress  *Address   `json:"billingAddress,omitempty"`
	PaymentMethod   string     `json:"paymentMethod"`
	Notes           string     `json:"notes,omitempty"`
}

// Confirmation is the server's acceptance of an order.
type Confirmation struct {
	OrderID string  `json:"orderId"`
	Status  string  `json:"status"`
	Total   float64 `json:"total"`
}

// OrderSubmitter sends a snapshot to the order service.
type OrderSubmitter interface {
	Submit(ctx context.Context, snap OrderSnapshot) (Confirmation, error)
}

// Snapshot captures the current ledger and its pricing.
func (l *Ledger) Snapshot(d CheckoutDetails) OrderSnapshot {
	p := l.Pricing()
	return OrderSnapshot{
		Items:           l.Items(),
		Subtotal:        p.Subtotal,
		ShippingCost:    p.ShippingCost,
		TaxAmount:       p.TaxAmount,
		Total:           p.Total,
		ShippingAddress: d.ShippingAddress,
		BillingAddress:  d.BillingAddress,
		PaymentMethod:   d.PaymentMethod,
		Notes:           d.Notes,
	}
}

// Checkout submits the ledger. On acceptance the ledger is cleared; on
// rejection it is left untouched and the submitter's error is returned.
// A failure to clear after acceptance is logged, not returned: the order exists.
func (l *Ledger) Checkout(ctx context.Context, sub OrderSubmitter, d CheckoutDetails) (Confirmation, error) {
	if l.Len() == 0 {
		return Confirmation{}, ErrEmptyCart
	}

	conf, err := sub.Submit(ctx, l.Snapshot(d))
	if err != nil {
		return Confirmation{}, fmt.Errorf("submit order: %w", err)
	}

	if err := l.Clear(ctx); err != nil {
		l.log.WithError(err).WithField("order_id", conf.OrderID).Warn("cart: order accepted but clearing the cart failed")
	}
	return conf, nil
}
