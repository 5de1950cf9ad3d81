package m_order_item

import "cloud.google.com/go/spanner"

type Row struct {
	OrderID              string `spanner:"order_id"`
	LineNo               int64  `spanner:"line_no"`
	ProductID            string `spanner:"product_id"`
	ProductName          string `spanner:"product_name"`
	ProductImage         string `spanner:"product_image"`
	Brand                string `spanner:"brand"`
	Size                 string `spanner:"size"`
	Quantity             int64  `spanner:"quantity"`
	UnitPriceNumerator   int64  `spanner:"unit_price_numerator"`
	UnitPriceDenominator int64  `spanner:"unit_price_denominator"`
}

func InsertMutation(r Row) *spanner.Mutation {
	m, err := spanner.InsertStruct(TableName, r)
	if err != nil {
		panic(err)
	}
	return m
}
