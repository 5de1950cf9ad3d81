package product

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/murkotick/storefront-service/internal/app/product/domain"
	"github.com/murkotick/storefront-service/internal/app/product/dto"
	"github.com/murkotick/storefront-service/internal/app/product/queries/list_products"
)

type sizeJSON struct {
	Size  string `json:"size"`
	Stock int64  `json:"stock"`
}

// productJSON is the wire shape of a catalog product. The id is exposed as
// _id, which is what stored carts and existing clients expect.
type productJSON struct {
	ID             string     `json:"_id"`
	Name           string     `json:"name"`
	Brand          string     `json:"brand"`
	Description    string     `json:"description"`
	Price          float64    `json:"price"`
	DiscountPrice  *float64   `json:"discountPrice,omitempty"`
	EffectivePrice float64    `json:"effectivePrice"`
	Gender         string     `json:"gender"`
	Category       string     `json:"category"`
	Sizes          []sizeJSON `json:"sizes"`
	Images         []string   `json:"images"`
	Rating         float64    `json:"rating"`
	Featured       bool       `json:"featured"`
	IsNew          bool       `json:"isNew"`
	Tags           []string   `json:"tags"`
	Ingredients    []string   `json:"ingredients"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type paginationJSON struct {
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalProducts int64 `json:"totalProducts"`
	Limit         int   `json:"limit"`
}

type filtersJSON struct {
	Brands     []string `json:"brands"`
	Categories []string `json:"categories"`
}

type listReply struct {
	Products   []productJSON  `json:"products"`
	Pagination paginationJSON `json:"pagination"`
	Filters    filtersJSON    `json:"filters"`
}

func mapProductDTO(d *dto.ProductDTO) productJSON {
	out := productJSON{
		ID:             d.ProductID,
		Name:           d.Name,
		Brand:          d.Brand,
		Description:    d.Description,
		Price:          d.Price().Float64(),
		EffectivePrice: d.EffectivePrice().Float64(),
		Gender:         d.Gender,
		Category:       d.Category,
		Sizes:          make([]sizeJSON, 0, len(d.Sizes)),
		Images:         nonNil(d.Images),
		Rating:         d.Rating,
		Featured:       d.Featured,
		IsNew:          d.IsNew,
		Tags:           nonNil(d.Tags),
		Ingredients:    nonNil(d.Ingredients),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	if dp := d.DiscountPrice(); dp != nil {
		v := dp.Float64()
		out.DiscountPrice = &v
	}
	for _, s := range d.Sizes {
		out.Sizes = append(out.Sizes, sizeJSON{Size: s.Size, Stock: s.Stock})
	}
	return out
}

func mapListResult(res *list_products.Result) listReply {
	out := listReply{
		Products: make([]productJSON, 0, len(res.Products)),
		Pagination: paginationJSON{
			CurrentPage:   res.Page,
			TotalPages:    res.TotalPages,
			TotalProducts: res.TotalCount,
			Limit:         res.Limit,
		},
		Filters: filtersJSON{
			Brands:     nonNil(res.Facets.Brands),
			Categories: nonNil(res.Facets.Categories),
		},
	}
	for _, p := range res.Products {
		out.Products = append(out.Products, mapProductDTO(p))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// optionalPrice tells an absent field apart from an explicit null.
type optionalPrice struct {
	Set   bool
	Value *float64
}

func (o *optionalPrice) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// productRequest is the body of POST and PUT. Absent fields are nil; on PUT a
// null discountPrice removes the discount.
type productRequest struct {
	Name          *string       `json:"name"`
	Brand         *string       `json:"brand"`
	Description   *string       `json:"description"`
	Price         *float64      `json:"price"`
	DiscountPrice optionalPrice `json:"discountPrice"`
	Gender        *string       `json:"gender"`
	Category      *string       `json:"category"`
	Sizes         []sizeJSON    `json:"sizes"`
	Images        []string      `json:"images"`
	Rating        *float64      `json:"rating"`
	Featured      *bool         `json:"featured"`
	IsNew         *bool         `json:"isNew"`
	Tags          []string      `json:"tags"`
	Ingredients   []string      `json:"ingredients"`
}

func mapSizes(in []sizeJSON) []domain.SizeStock {
	if in == nil {
		return nil
	}
	out := make([]domain.SizeStock, 0, len(in))
	for _, s := range in {
		out = append(out, domain.SizeStock{Size: s.Size, Stock: s.Stock})
	}
	return out
}

func mapPrice(v *float64) (*domain.Money, error) {
	if v == nil {
		return nil, nil
	}
	if *v < 0 {
		return nil, domain.ErrNegativePrice
	}
	return domain.NewMoneyFromFloat(*v), nil
}

// mapCreateRequest expects validateCreateRequest to have passed.
func mapCreateRequest(req productRequest) (domain.ProductDetails, error) {
	gender, err := domain.ParseGender(*req.Gender)
	if err != nil {
		return domain.ProductDetails{}, err
	}
	price, err := mapPrice(req.Price)
	if err != nil {
		return domain.ProductDetails{}, err
	}
	discount, err := mapPrice(req.DiscountPrice.Value)
	if err != nil {
		return domain.ProductDetails{}, err
	}

	d := domain.ProductDetails{
		Name:          *req.Name,
		Brand:         *req.Brand,
		Description:   *req.Description,
		Price:         price,
		DiscountPrice: discount,
		Gender:        gender,
		Category:      *req.Category,
		Sizes:         mapSizes(req.Sizes),
		Images:        req.Images,
		Tags:          req.Tags,
		Ingredients:   req.Ingredients,
	}
	if req.Rating != nil {
		d.Rating = *req.Rating
	}
	if req.Featured != nil {
		d.Featured = *req.Featured
	}
	if req.IsNew != nil {
		d.IsNew = *req.IsNew
	}
	return d, nil
}

func mapUpdateRequest(req productRequest) (domain.ProductPatch, error) {
	patch := domain.ProductPatch{
		Name:        req.Name,
		Brand:       req.Brand,
		Description: req.Description,
		Category:    req.Category,
		Sizes:       mapSizes(req.Sizes),
		Images:      req.Images,
		Rating:      req.Rating,
		Featured:    req.Featured,
		IsNew:       req.IsNew,
		Tags:        req.Tags,
		Ingredients: req.Ingredients,
	}

	price, err := mapPrice(req.Price)
	if err != nil {
		return domain.ProductPatch{}, err
	}
	patch.Price = price

	if req.DiscountPrice.Set {
		if req.DiscountPrice.Value == nil {
			patch.ClearDiscount = true
		} else if patch.DiscountPrice, err = mapPrice(req.DiscountPrice.Value); err != nil {
			return domain.ProductPatch{}, err
		}
	}

	if req.Gender != nil {
		g, err := domain.ParseGender(*req.Gender)
		if err != nil {
			return domain.ProductPatch{}, err
		}
		patch.Gender = &g
	}
	return patch, nil
}
