package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/murkotick/storefront-service/internal/app/pricing"
	pdomain "github.com/murkotick/storefront-service/internal/app/product/domain"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentPayPal     PaymentMethod = "paypal"
	PaymentStripe     PaymentMethod = "stripe"
)

// ParsePaymentMethod accepts the canonical names plus "credit-card".
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "credit_card", "credit-card":
		return PaymentCreditCard, nil
	case "paypal":
		return PaymentPayPal, nil
	case "stripe":
		return PaymentStripe, nil
	}
	return "", ErrInvalidPaymentMethod
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Address is a postal address. Persisted as JSON, so the tags are the storage format.
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

func (a Address) normalize() Address {
	a.FullName = strings.TrimSpace(a.FullName)
	a.Street = strings.TrimSpace(a.Street)
	a.Apartment = strings.TrimSpace(a.Apartment)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.PostalCode = strings.TrimSpace(a.PostalCode)
	a.Country = strings.TrimSpace(a.Country)
	a.Phone = strings.TrimSpace(a.Phone)
	a.Email = strings.TrimSpace(a.Email)
	return a
}

func (a Address) validate(prefix string, v *ValidationError) {
	if a.FullName == "" {
		v.add(prefix+".fullName", "is required")
	}
	if a.Street == "" {
		v.add(prefix+".street", "is required")
	}
	if a.City == "" {
		v.add(prefix+".city", "is required")
	}
	if a.PostalCode == "" {
		v.add(prefix+".postalCode", "is required")
	}
}

// Item is one priced order line. The product fields are copied from the
// catalog at submission time.
type Item struct {
	ProductID    string
	ProductName  string
	ProductImage string
	Brand        string
	Size         string
	Quantity     int64
	UnitPrice    *pdomain.Money
}

func (i Item) LineTotal() *pdomain.Money {
	return i.UnitPrice.MultiplyByQuantity(i.Quantity)
}

// Totals are the persisted amounts, each rounded to cents, with
// Total = Subtotal + ShippingCost + Tax.
type Totals struct {
	Subtotal     *pdomain.Money
	ShippingCost *pdomain.Money
	Tax          *pdomain.Money
	Total        *pdomain.Money
}

// ComputeTotals prices items with the storefront pricing policy.
func ComputeTotals(items []Item) Totals {
	sub := pdomain.Zero()
	for _, it := range items {
		sub = sub.Add(it.LineTotal())
	}
	p := pricing.Calculate(sub.Float64())

	subtotal := sub.RoundToCents()
	shipping := pricing.ToMoney(p.ShippingCost)
	tax := pricing.ToMoney(p.TaxAmount)
	return Totals{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Tax:          tax,
		Total:        subtotal.Add(shipping).Add(tax),
	}
}

type Order struct {
	id              string
	userID          string
	items           []Item
	status          Status
	shippingAddress Address
	billingAddress  Address
	paymentMethod   PaymentMethod
	paymentStatus   PaymentStatus
	totals          Totals
	notes           string
	createdAt       time.Time
	updatedAt       time.Time
	events          []DomainEvent
}

// PlaceOrderParams are the inputs to PlaceOrder. Items must already carry
// catalog prices.
type PlaceOrderParams struct {
	ID              string
	UserID          string
	Items           []Item
	ShippingAddress Address
	// BillingAddress defaults to ShippingAddress when nil.
	BillingAddress *Address
	PaymentMethod  PaymentMethod
	Notes          string
}

// Validate reports every malformed field of p. Unit prices are not checked;
// the caller may validate a request before it has looked up catalog prices.
func (p PlaceOrderParams) Validate() error {
	if len(p.Items) == 0 {
		return ErrEmptyOrder
	}
	v := &ValidationError{}
	p.validate(v)
	return v.orNil()
}

func (p PlaceOrderParams) validate(v *ValidationError) (shipping, billing Address, method PaymentMethod) {
	for i, it := range p.Items {
		if it.ProductID == "" {
			v.add(fmt.Sprintf("items[%d].productId", i), "is required")
		}
		if it.Size == "" {
			v.add(fmt.Sprintf("items[%d].size", i), "is required")
		}
		if it.Quantity < 1 {
			v.add(fmt.Sprintf("items[%d].quantity", i), "must be at least 1")
		}
	}

	shipping = p.ShippingAddress.normalize()
	shipping.validate("shippingAddress", v)

	billing = shipping
	if p.BillingAddress != nil {
		billing = p.BillingAddress.normalize()
		billing.validate("billingAddress", v)
	}

	method, err := ParsePaymentMethod(string(p.PaymentMethod))
	if err != nil {
		v.add("paymentMethod", err.Error())
	}
	return shipping, billing, method
}

// PlaceOrder validates p, prices it and records OrderPlacedEvent.
// The order starts pending with payment pending.
func PlaceOrder(p PlaceOrderParams, now time.Time) (*Order, error) {
	if len(p.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	v := &ValidationError{}
	shipping, billing, method := p.validate(v)
	for i, it := range p.Items {
		if it.UnitPrice == nil || it.UnitPrice.IsNegative() {
			v.add(fmt.Sprintf("items[%d].unitPrice", i), "cannot be negative")
		}
	}
	if err := v.orNil(); err != nil {
		return nil, err
	}

	o := &Order{
		id:              p.ID,
		userID:          p.UserID,
		items:           append([]Item(nil), p.Items...),
		status:          StatusPending,
		shippingAddress: shipping,
		billingAddress:  billing,
		paymentMethod:   method,
		paymentStatus:   PaymentPending,
		totals:          ComputeTotals(p.Items),
		notes:           strings.TrimSpace(p.Notes),
		createdAt:       now,
		updatedAt:       now,
	}
	o.events = append(o.events, &OrderPlacedEvent{
		OrderID:   o.id,
		UserID:    o.userID,
		ItemCount: len(o.items),
		Total:     o.totals.Total,
		PlacedAt:  now,
	})
	return o, nil
}

// ReconstructOrder rebuilds an order from persisted state.
func ReconstructOrder(
	id, userID string,
	items []Item,
	status Status,
	shipping, billing Address,
	method PaymentMethod,
	paymentStatus PaymentStatus,
	totals Totals,
	notes string,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:              id,
		userID:          userID,
		items:           items,
		status:          status,
		shippingAddress: shipping,
		billingAddress:  billing,
		paymentMethod:   method,
		paymentStatus:   paymentStatus,
		totals:          totals,
		notes:           notes,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (o *Order) ID() string                   { return o.id }
func (o *Order) UserID() string               { return o.userID }
func (o *Order) Items() []Item                { return append([]Item(nil), o.items...) }
func (o *Order) Status() Status               { return o.status }
func (o *Order) ShippingAddress() Address     { return o.shippingAddress }
func (o *Order) BillingAddress() Address      { return o.billingAddress }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) Totals() Totals               { return o.totals }
func (o *Order) Notes() string                { return o.notes }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) UpdatedAt() time.Time         { return o.updatedAt }
func (o *Order) DomainEvents() []DomainEvent  { return o.events }
