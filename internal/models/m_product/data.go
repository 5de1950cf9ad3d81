package m_product

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Row mirrors one products row. Sizes and SizeStocks are parallel arrays.
type Row struct {
	ProductID                string            `spanner:"product_id"`
	Name                     string            `spanner:"name"`
	Brand                    string            `spanner:"brand"`
	Description              string            `spanner:"description"`
	PriceNumerator           int64             `spanner:"price_numerator"`
	PriceDenominator         int64             `spanner:"price_denominator"`
	DiscountPriceNumerator   spanner.NullInt64 `spanner:"discount_price_numerator"`
	DiscountPriceDenominator spanner.NullInt64 `spanner:"discount_price_denominator"`
	Gender                   string            `spanner:"gender"`
	Category                 string            `spanner:"category"`
	Sizes                    []string          `spanner:"sizes"`
	SizeStocks               []int64           `spanner:"size_stocks"`
	Images                   []string          `spanner:"images"`
	Rating                   float64           `spanner:"rating"`
	Featured                 bool              `spanner:"featured"`
	IsNew                    bool              `spanner:"is_new"`
	Tags                     []string          `spanner:"tags"`
	Ingredients              []string          `spanner:"ingredients"`
	CreatedAt                time.Time         `spanner:"created_at"`
	UpdatedAt                time.Time         `spanner:"updated_at"`
}

// BuildInsertMap returns every column of r keyed by column name.
func BuildInsertMap(r Row) map[string]interface{} {
	return map[string]interface{}{
		ColProductID:                r.ProductID,
		ColName:                     r.Name,
		ColBrand:                    r.Brand,
		ColDescription:              r.Description,
		ColPriceNumerator:           r.PriceNumerator,
		ColPriceDenominator:         r.PriceDenominator,
		ColDiscountPriceNumerator:   r.DiscountPriceNumerator,
		ColDiscountPriceDenominator: r.DiscountPriceDenominator,
		ColGender:                   r.Gender,
		ColCategory:                 r.Category,
		ColSizes:                    r.Sizes,
		ColSizeStocks:               r.SizeStocks,
		ColImages:                   r.Images,
		ColRating:                   r.Rating,
		ColFeatured:                 r.Featured,
		ColIsNew:                    r.IsNew,
		ColTags:                     r.Tags,
		ColIngredients:              r.Ingredients,
		ColCreatedAt:                r.CreatedAt,
		ColUpdatedAt:                r.UpdatedAt,
	}
}

// InsertMutation builds a spanner.Insert from a column -> value map.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.Insert(TableName, cols, vals)
}

// UpdateMutation writes values to the row keyed by productID.
// values must not contain product_id.
func UpdateMutation(productID string, values map[string]interface{}) *spanner.Mutation {
	cols := []string{ColProductID}
	vals := []interface{}{productID}
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.Update(TableName, cols, vals)
}

func DeleteMutation(productID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{productID})
}
