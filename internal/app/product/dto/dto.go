package dto

import (
	"time"

	"github.com/murkotick/storefront-service/internal/app/product/domain"
	"github.com/murkotick/storefront-service/internal/models/m_product"
)

type SizeDTO struct {
	Size  string
	Stock int64
}

// ProductDTO contains full product fields returned by read queries.
// Prices are kept in their persisted rational form.
type ProductDTO struct {
	ProductID   string
	Name        string
	Brand       string
	Description string
	PriceNum    int64
	PriceDen    int64
	DiscountNum *int64
	DiscountDen *int64
	Gender      string
	Category    string
	Sizes       []SizeDTO
	Images      []string
	Rating      float64
	Featured    bool
	IsNew       bool
	Tags        []string
	Ingredients []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (d *ProductDTO) Price() *domain.Money {
	return domain.NewMoney(d.PriceNum, d.PriceDen)
}

// DiscountPrice is nil when the product has no discount.
func (d *ProductDTO) DiscountPrice() *domain.Money {
	if d.DiscountNum == nil || d.DiscountDen == nil || *d.DiscountDen == 0 {
		return nil
	}
	return domain.NewMoney(*d.DiscountNum, *d.DiscountDen)
}

// EffectivePrice is the price a shopper pays today.
func (d *ProductDTO) EffectivePrice() *domain.Money {
	if dp := d.DiscountPrice(); dp != nil {
		return dp
	}
	return d.Price()
}

// ToDomain reconstructs the aggregate for write usecases.
func (d *ProductDTO) ToDomain() *domain.Product {
	sizes := make([]domain.SizeStock, 0, len(d.Sizes))
	for _, s := range d.Sizes {
		sizes = append(sizes, domain.SizeStock{Size: s.Size, Stock: s.Stock})
	}
	return domain.ReconstructProduct(d.ProductID, domain.ProductDetails{
		Name:          d.Name,
		Brand:         d.Brand,
		Description:   d.Description,
		Price:         d.Price(),
		DiscountPrice: d.DiscountPrice(),
		Gender:        domain.Gender(d.Gender),
		Category:      d.Category,
		Sizes:         sizes,
		Images:        d.Images,
		Rating:        d.Rating,
		Featured:      d.Featured,
		IsNew:         d.IsNew,
		Tags:          d.Tags,
		Ingredients:   d.Ingredients,
	}, d.CreatedAt, d.UpdatedAt)
}

// Sort keys accepted by ListProducts.
const (
	SortByCreatedAt = "createdAt"
	SortByPrice     = "price"
	SortByName      = "name"
	SortByRating    = "rating"
)

// ProductFilter narrows a listing. Zero values mean "no constraint".
type ProductFilter struct {
	Gender   string
	Category string
	Brand    string
	MinPrice *float64
	MaxPrice *float64
	Search   string
	Featured bool
	IsNew    bool
}

type ProductSort struct {
	By   string
	Desc bool
}

type PageRequest struct {
	Page  int
	Limit int
}

// Offset of the first row of the page (Page is 1-based).
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ProductPage is one page of a listing plus the total number of matches.
type ProductPage struct {
	Products   []*ProductDTO
	TotalCount int64
}

// Facets are the distinct values shown in the filter sidebar.
type Facets struct {
	Brands     []string
	Categories []string
}

// FromRow maps a products row into a ProductDTO.
func FromRow(r m_product.Row) *ProductDTO {
	out := &ProductDTO{
		ProductID:   r.ProductID,
		Name:        r.Name,
		Brand:       r.Brand,
		Description: r.Description,
		PriceNum:    r.PriceNumerator,
		PriceDen:    r.PriceDenominator,
		Gender:      r.Gender,
		Category:    r.Category,
		Images:      r.Images,
		Rating:      r.Rating,
		Featured:    r.Featured,
		IsNew:       r.IsNew,
		Tags:        r.Tags,
		Ingredients: r.Ingredients,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
	if r.DiscountPriceNumerator.Valid && r.DiscountPriceDenominator.Valid {
		num, den := r.DiscountPriceNumerator.Int64, r.DiscountPriceDenominator.Int64
		out.DiscountNum = &num
		out.DiscountDen = &den
	}
	out.Sizes = make([]SizeDTO, 0, len(r.Sizes))
	for i, size := range r.Sizes {
		var stock int64
		if i < len(r.SizeStocks) {
			stock = r.SizeStocks[i]
		}
		out.Sizes = append(out.Sizes, SizeDTO{Size: size, Stock: stock})
	}
	return out
}
