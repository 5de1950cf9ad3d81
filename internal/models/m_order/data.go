package m_order

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Row mirrors one orders row. Addresses are stored as JSON documents.
type Row struct {
	OrderID                 string    `spanner:"order_id"`
	UserID                  string    `spanner:"user_id"`
	Status                  string    `spanner:"status"`
	ShippingAddress         string    `spanner:"shipping_address"`
	BillingAddress          string    `spanner:"billing_address"`
	PaymentMethod           string    `spanner:"payment_method"`
	PaymentStatus           string    `spanner:"payment_status"`
	SubtotalNumerator       int64     `spanner:"subtotal_numerator"`
	SubtotalDenominator     int64     `spanner:"subtotal_denominator"`
	ShippingCostNumerator   int64     `spanner:"shipping_cost_numerator"`
	ShippingCostDenominator int64     `spanner:"shipping_cost_denominator"`
	TaxNumerator            int64     `spanner:"tax_numerator"`
	TaxDenominator          int64     `spanner:"tax_denominator"`
	TotalNumerator          int64     `spanner:"total_numerator"`
	TotalDenominator        int64     `spanner:"total_denominator"`
	Notes                   string    `spanner:"notes"`
	CreatedAt               time.Time `spanner:"created_at"`
	UpdatedAt               time.Time `spanner:"updated_at"`
}

// InsertMutation writes every column of r.
func InsertMutation(r Row) *spanner.Mutation {
	m, err := spanner.InsertStruct(TableName, r)
	if err != nil {
		// Row only holds Spanner-encodable fields.
		panic(err)
	}
	return m
}
