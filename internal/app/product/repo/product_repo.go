package repo

import (
	"cloud.google.com/go/spanner"

	domain "github.com/murkotick/storefront-service/internal/app/product/domain"
	"github.com/murkotick/storefront-service/internal/models/m_product"
)

// ProductRepo is the Spanner implementation of the write-side repository.
// It returns *spanner.Mutation objects but never applies them.
type ProductRepo struct{}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{}
}

// toRow flattens the aggregate into its persisted shape.
func toRow(p *domain.Product) m_product.Row {
	sizes, stocks := splitSizes(p.Sizes())
	row := m_product.Row{
		ProductID:        p.ID(),
		Name:             p.Name(),
		Brand:            p.Brand(),
		Description:      p.Description(),
		PriceNumerator:   p.Price().Numerator(),
		PriceDenominator: p.Price().Denominator(),
		Gender:           string(p.Gender()),
		Category:         p.Category(),
		Sizes:            sizes,
		SizeStocks:       stocks,
		Images:           p.Images(),
		Rating:           p.Rating(),
		Featured:         p.Featured(),
		IsNew:            p.IsNew(),
		Tags:             p.Tags(),
		Ingredients:      p.Ingredients(),
		CreatedAt:        p.CreatedAt().UTC(),
		UpdatedAt:        p.UpdatedAt().UTC(),
	}
	row.DiscountPriceNumerator, row.DiscountPriceDenominator = discountColumns(p.DiscountPrice())
	return row
}

// buildInsertValues is unexported so tests can inspect the map without
// relying on spanner.Mutation internals.
func buildInsertValues(p *domain.Product) map[string]interface{} {
	return m_product.BuildInsertMap(toRow(p))
}

// buildUpdateValues returns only the dirty columns plus updated_at, or nil.
func buildUpdateValues(p *domain.Product) map[string]interface{} {
	if p == nil || p.Changes() == nil || !p.Changes().HasChanges() {
		return nil
	}

	ch := p.Changes()
	row := toRow(p)
	updates := map[string]interface{}{}

	if ch.Dirty(domain.FieldName) {
		updates[m_product.ColName] = row.Name
	}
	if ch.Dirty(domain.FieldBrand) {
		updates[m_product.ColBrand] = row.Brand
	}
	if ch.Dirty(domain.FieldDescription) {
		updates[m_product.ColDescription] = row.Description
	}
	if ch.Dirty(domain.FieldPrice) {
		updates[m_product.ColPriceNumerator] = row.PriceNumerator
		updates[m_product.ColPriceDenominator] = row.PriceDenominator
	}
	if ch.Dirty(domain.FieldDiscountPrice) {
		updates[m_product.ColDiscountPriceNumerator] = row.DiscountPriceNumerator
		updates[m_product.ColDiscountPriceDenominator] = row.DiscountPriceDenominator
	}
	if ch.Dirty(domain.FieldGender) {
		updates[m_product.ColGender] = row.Gender
	}
	if ch.Dirty(domain.FieldCategory) {
		updates[m_product.ColCategory] = row.Category
	}
	if ch.Dirty(domain.FieldSizes) {
		updates[m_product.ColSizes] = row.Sizes
		updates[m_product.ColSizeStocks] = row.SizeStocks
	}
	if ch.Dirty(domain.FieldImages) {
		updates[m_product.ColImages] = row.Images
	}
	if ch.Dirty(domain.FieldRating) {
		updates[m_product.ColRating] = row.Rating
	}
	if ch.Dirty(domain.FieldFeatured) {
		updates[m_product.ColFeatured] = row.Featured
	}
	if ch.Dirty(domain.FieldIsNew) {
		updates[m_product.ColIsNew] = row.IsNew
	}
	if ch.Dirty(domain.FieldTags) {
		updates[m_product.ColTags] = row.Tags
	}
	if ch.Dirty(domain.FieldIngredients) {
		updates[m_product.ColIngredients] = row.Ingredients
	}

	if len(updates) == 0 {
		return nil
	}
	updates[m_product.ColUpdatedAt] = row.UpdatedAt
	return updates
}

func (r *ProductRepo) InsertMut(p *domain.Product) *spanner.Mutation {
	if p == nil {
		return nil
	}
	return m_product.InsertMutation(buildInsertValues(p))
}

// UpdateMut builds an Update mutation from the aggregate's ChangeTracker.
func (r *ProductRepo) UpdateMut(p *domain.Product) *spanner.Mutation {
	values := buildUpdateValues(p)
	if values == nil {
		return nil
	}
	return m_product.UpdateMutation(p.ID(), values)
}

// DeleteMut removes the row. Orders keep their own copy of line data, so
// nothing else references a product row.
func (r *ProductRepo) DeleteMut(p *domain.Product) *spanner.Mutation {
	if p == nil {
		return nil
	}
	return m_product.DeleteMutation(p.ID())
}

func splitSizes(in []domain.SizeStock) ([]string, []int64) {
	sizes := make([]string, 0, len(in))
	stocks := make([]int64, 0, len(in))
	for _, s := range in {
		sizes = append(sizes, s.Size)
		stocks = append(stocks, s.Stock)
	}
	return sizes, stocks
}

func discountColumns(m *domain.Money) (spanner.NullInt64, spanner.NullInt64) {
	if m == nil {
		return spanner.NullInt64{}, spanner.NullInt64{}
	}
	return spanner.NullInt64{Int64: m.Numerator(), Valid: true},
		spanner.NullInt64{Int64: m.Denominator(), Valid: true}
}
