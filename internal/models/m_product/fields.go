package m_product

// Field constants for the products table.
const (
	TableName = "products"

	ColProductID                = "product_id"
	ColName                     = "name"
	ColBrand                    = "brand"
	ColDescription              = "description"
	ColPriceNumerator           = "price_numerator"
	ColPriceDenominator         = "price_denominator"
	ColDiscountPriceNumerator   = "discount_price_numerator"
	ColDiscountPriceDenominator = "discount_price_denominator"
	ColGender                   = "gender"
	ColCategory                 = "category"
	ColSizes                    = "sizes"
	ColSizeStocks               = "size_stocks"
	ColImages                   = "images"
	ColRating                   = "rating"
	ColFeatured                 = "featured"
	ColIsNew                    = "is_new"
	ColTags                     = "tags"
	ColIngredients              = "ingredients"
	ColCreatedAt                = "created_at"
	ColUpdatedAt                = "updated_at"
)

// Columns is the full column list in Row order, used by reads.
var Columns = []string{
	ColProductID,
	ColName,
	ColBrand,
	ColDescription,
	ColPriceNumerator,
	ColPriceDenominator,
	ColDiscountPriceNumerator,
	ColDiscountPriceDenominator,
	ColGender,
	ColCategory,
	ColSizes,
	ColSizeStocks,
	ColImages,
	ColRating,
	ColFeatured,
	ColIsNew,
	ColTags,
	ColIngredients,
	ColCreatedAt,
	ColUpdatedAt,
}
