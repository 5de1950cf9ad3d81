package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdomain "github.com/murkotick/storefront-service/internal/app/product/domain"
)

var shipTo = Address{FullName: "Grace Hopper", Street: "12 Navy Rd", City: "Arlington", PostalCode: "22201"}

func line(cents, qty int64) Item {
	return Item{ProductID: "p", ProductName: "Cream", Size: "50ml", Quantity: qty, UnitPrice: pdomain.NewMoneyFromCents(cents)}
}

func TestComputeTotals(t *testing.T) {
	cases := []struct {
		name                           string
		items                          []Item
		subtotal, shipping, tax, total string
	}{
		{"below threshold", []Item{line(2500, 2)}, "50.00", "8.99", "3.50", "62.49"},
		{"above threshold", []Item{line(5000, 2)}, "100.00", "0.00", "7.00", "107.00"},
		{"at threshold", []Item{line(7500, 1)}, "75.00", "8.99", "5.25", "89.24"},
		{"half cent tax", []Item{line(50, 1)}, "0.50", "8.99", "0.04", "9.53"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeTotals(tc.items)
			assert.Equal(t, tc.subtotal, got.Subtotal.String())
			assert.Equal(t, tc.shipping, got.ShippingCost.String())
			assert.Equal(t, tc.tax, got.Tax.String())
			assert.Equal(t, tc.total, got.Total.String())
			assert.True(t, got.Total.Equals(got.Subtotal.Add(got.ShippingCost).Add(got.Tax)))
		})
	}
}

func TestPlaceOrder(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	o, err := PlaceOrder(PlaceOrderParams{
		ID:              "o-1",
		UserID:          "u-1",
		Items:           []Item{line(2500, 2)},
		ShippingAddress: shipTo,
		PaymentMethod:   "credit-card",
	}, now)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, o.Status())
	assert.Equal(t, PaymentPending, o.PaymentStatus())
	assert.Equal(t, PaymentCreditCard, o.PaymentMethod())
	assert.Equal(t, shipTo, o.BillingAddress())
	assert.Equal(t, "62.49", o.Totals().Total.String())

	require.Len(t, o.DomainEvents(), 1)
	assert.Equal(t, "order.placed", o.DomainEvents()[0].EventType())
}

func TestPlaceOrder_CollectsViolations(t *testing.T) {
	bad := line(100, 0)
	bad.Size = ""

	_, err := PlaceOrder(PlaceOrderParams{
		Items:           []Item{bad},
		ShippingAddress: Address{FullName: "X"},
		BillingAddress:  &Address{},
		PaymentMethod:   "cash",
	}, time.Now())

	require.ErrorIs(t, err, ErrInvalidOrder)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	assert.Contains(t, fields, "items[0].size")
	assert.Contains(t, fields, "items[0].quantity")
	assert.Contains(t, fields, "shippingAddress.street")
	assert.Contains(t, fields, "billingAddress.fullName")
	assert.Contains(t, fields, "paymentMethod")
	assert.NotContains(t, fields, "shippingAddress.fullName")
}

func TestPlaceOrder_EmptyOrder(t *testing.T) {
	_, err := PlaceOrder(PlaceOrderParams{ShippingAddress: shipTo, PaymentMethod: PaymentPayPal}, time.Now())
	require.ErrorIs(t, err, ErrEmptyOrder)
}

func TestValidate_IgnoresMissingPrices(t *testing.T) {
	p := PlaceOrderParams{
		Items:           []Item{{ProductID: "p-1", Size: "50ml", Quantity: 1}},
		ShippingAddress: Address{FullName: "A", Street: "B", City: "C", PostalCode: "D"},
		PaymentMethod:   PaymentPayPal,
	}
	require.NoError(t, p.Validate())

	_, err := PlaceOrder(p, time.Now())
	require.ErrorIs(t, err, ErrInvalidOrder)
}

func TestValidate_EmptyItems(t *testing.T) {
	require.ErrorIs(t, PlaceOrderParams{}.Validate(), ErrEmptyOrder)
}
