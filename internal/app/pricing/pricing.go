// Package pricing derives the shipping, tax and total shown at checkout.
//
// Amounts are plain float64 at full precision; rounding to cents happens
// only when a value is presented or persisted (Round2, Format, ToMoney).
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/murkotick/storefront-service/internal/app/product/domain"
)

const (
	// FreeShippingThreshold must be strictly exceeded for free shipping.
	FreeShippingThreshold = 75.0
	FlatShippingCost      = 8.99
	TaxRate               = 0.07
)

// Result is derived on every read and never stored.
type Result struct {
	Subtotal     float64 `json:"subtotal"`
	ShippingCost float64 `json:"shippingCost"`
	TaxAmount    float64 `json:"taxAmount"`
	Total        float64 `json:"total"`
}

// Calculator holds the pricing rules. The zero value is not usable; use Default.
type Calculator struct {
	FreeShippingThreshold float64
	FlatShippingCost      float64
	TaxRate               float64
}

// Default is the storefront's pricing policy.
var Default = Calculator{
	FreeShippingThreshold: FreeShippingThreshold,
	FlatShippingCost:      FlatShippingCost,
	TaxRate:               TaxRate,
}

// Calculate applies the rules to subtotal.
func (c Calculator) Calculate(subtotal float64) Result {
	shipping := c.FlatShippingCost
	if subtotal > c.FreeShippingThreshold {
		shipping = 0
	}
	tax := subtotal * c.TaxRate
	return Result{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		TaxAmount:    tax,
		Total:        subtotal + shipping + tax,
	}
}

// Calculate uses the Default calculator.
func Calculate(subtotal float64) Result {
	return Default.Calculate(subtotal)
}

// Rounded returns r with every amount rounded to cents.
func (r Result) Rounded() Result {
	return Result{
		Subtotal:     Round2(r.Subtotal),
		ShippingCost: Round2(r.ShippingCost),
		TaxAmount:    Round2(r.TaxAmount),
		Total:        Round2(r.Total),
	}
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Format renders v with exactly two decimals, e.g. "62.49".
func Format(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// ToMoney converts v to the catalog Money type, rounded to cents.
func ToMoney(v float64) *domain.Money {
	cents := decimal.NewFromFloat(v).Round(2).Shift(2).IntPart()
	return domain.NewMoneyFromCents(cents)
}

// LineTotal is unitPrice * quantity at full precision.
func LineTotal(unitPrice float64, quantity int) float64 {
	return unitPrice * float64(quantity)
}
