package m_order

const (
	TableName = "orders"

	// IndexByUser covers (user_id, created_at DESC).
	IndexByUser = "orders_by_user"

	ColOrderID                 = "order_id"
	ColUserID                  = "user_id"
	ColStatus                  = "status"
	ColShippingAddress         = "shipping_address"
	ColBillingAddress          = "billing_address"
	ColPaymentMethod           = "payment_method"
	ColPaymentStatus           = "payment_status"
	ColSubtotalNumerator       = "subtotal_numerator"
	ColSubtotalDenominator     = "subtotal_denominator"
	ColShippingCostNumerator   = "shipping_cost_numerator"
	ColShippingCostDenominator = "shipping_cost_denominator"
	ColTaxNumerator            = "tax_numerator"
	ColTaxDenominator          = "tax_denominator"
	ColTotalNumerator          = "total_numerator"
	ColTotalDenominator        = "total_denominator"
	ColNotes                   = "notes"
	ColCreatedAt               = "created_at"
	ColUpdatedAt               = "updated_at"
)

var Columns = []string{
	ColOrderID,
	ColUserID,
	ColStatus,
	ColShippingAddress,
	ColBillingAddress,
	ColPaymentMethod,
	ColPaymentStatus,
	ColSubtotalNumerator,
	ColSubtotalDenominator,
	ColShippingCostNumerator,
	ColShippingCostDenominator,
	ColTaxNumerator,
	ColTaxDenominator,
	ColTotalNumerator,
	ColTotalDenominator,
	ColNotes,
	ColCreatedAt,
	ColUpdatedAt,
}
