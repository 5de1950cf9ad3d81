package m_order_item

// order_items is interleaved in orders.
const (
	TableName = "order_items"

	ColOrderID              = "order_id"
	ColLineNo               = "line_no"
	ColProductID            = "product_id"
	ColProductName          = "product_name"
	ColProductImage         = "product_image"
	ColBrand                = "brand"
	ColSize                 = "size"
	ColQuantity             = "quantity"
	ColUnitPriceNumerator   = "unit_price_numerator"
	ColUnitPriceDenominator = "unit_price_denominator"
)

var Columns = []string{
	ColOrderID,
	ColLineNo,
	ColProductID,
	ColProductName,
	ColProductImage,
	ColBrand,
	ColSize,
	ColQuantity,
	ColUnitPriceNumerator,
	ColUnitPriceDenominator,
}
