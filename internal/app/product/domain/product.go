package domain

import (
	"strings"
	"time"
)

// Field constants for change tracking
const (
	FieldName          = "name"
	FieldBrand         = "brand"
	FieldDescription   = "description"
	FieldPrice         = "price"
	FieldDiscountPrice = "discount_price"
	FieldGender        = "gender"
	FieldCategory      = "category"
	FieldSizes         = "sizes"
	FieldImages        = "images"
	FieldRating        = "rating"
	FieldFeatured      = "featured"
	FieldIsNew         = "is_new"
	FieldTags          = "tags"
	FieldIngredients   = "ingredients"
)

// Gender is the catalog audience of a product.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderUnisex Gender = "unisex"
)

// ParseGender accepts the three catalog genders case-insensitively.
func ParseGender(s string) (Gender, error) {
	g := Gender(strings.ToLower(strings.TrimSpace(s)))
	switch g {
	case GenderMale, GenderFemale, GenderUnisex:
		return g, nil
	}
	return "", ErrInvalidGender
}

// SizeStock is one purchasable size and how many units remain.
type SizeStock struct {
	Size  string
	Stock int64
}

// ProductDetails carries every writable attribute of a product.
type ProductDetails struct {
	Name          string
	Brand         string
	Description   string
	Price         *Money
	DiscountPrice *Money
	Gender        Gender
	Category      string
	Sizes         []SizeStock
	Images        []string
	Rating        float64
	Featured      bool
	IsNew         bool
	Tags          []string
	Ingredients   []string
}

// ProductPatch lists optional changes; nil fields are left untouched.
// ClearDiscount removes the discount price and wins over DiscountPrice.
type ProductPatch struct {
	Name          *string
	Brand         *string
	Description   *string
	Price         *Money
	DiscountPrice *Money
	ClearDiscount bool
	Gender        *Gender
	Category      *string
	Sizes         []SizeStock
	Images        []string
	Rating        *float64
	Featured      *bool
	IsNew         *bool
	Tags          []string
	Ingredients   []string
}

// Product is the aggregate root of the catalog.
type Product struct {
	id            string
	name          string
	brand         string
	description   string
	price         *Money
	discountPrice *Money
	gender        Gender
	category      string
	sizes         []SizeStock
	images        []string
	rating        float64
	featured      bool
	isNew         bool
	tags          []string
	ingredients   []string
	createdAt     time.Time
	updatedAt     time.Time
	changes       *ChangeTracker
	events        []DomainEvent
}

// NewProduct validates d and records a ProductCreatedEvent.
func NewProduct(id string, d ProductDetails, now time.Time) (*Product, error) {
	d = normalizeDetails(d)
	if err := validateDetails(d); err != nil {
		return nil, err
	}

	p := &Product{
		id:            id,
		name:          d.Name,
		brand:         d.Brand,
		description:   d.Description,
		price:         d.Price,
		discountPrice: d.DiscountPrice,
		gender:        d.Gender,
		category:      d.Category,
		sizes:         d.Sizes,
		images:        d.Images,
		rating:        d.Rating,
		featured:      d.Featured,
		isNew:         d.IsNew,
		tags:          d.Tags,
		ingredients:   d.Ingredients,
		createdAt:     now,
		updatedAt:     now,
		changes:       NewChangeTracker(),
	}

	p.events = append(p.events, &ProductCreatedEvent{
		ProductID: p.id,
		Name:      p.name,
		Brand:     p.brand,
		Category:  p.category,
		Price:     p.price,
		CreatedAt: now,
	})
	return p, nil
}

// ReconstructProduct rebuilds a product from persisted state without validation.
func ReconstructProduct(id string, d ProductDetails, createdAt, updatedAt time.Time) *Product {
	return &Product{
		id:            id,
		name:          d.Name,
		brand:         d.Brand,
		description:   d.Description,
		price:         d.Price,
		discountPrice: d.DiscountPrice,
		gender:        d.Gender,
		category:      d.Category,
		sizes:         d.Sizes,
		images:        d.Images,
		rating:        d.Rating,
		featured:      d.Featured,
		isNew:         d.IsNew,
		tags:          d.Tags,
		ingredients:   d.Ingredients,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		changes:       NewChangeTracker(),
	}
}

func (p *Product) ID() string                  { return p.id }
func (p *Product) Name() string                { return p.name }
func (p *Product) Brand() string               { return p.brand }
func (p *Product) Description() string         { return p.description }
func (p *Product) Price() *Money               { return p.price }
func (p *Product) DiscountPrice() *Money       { return p.discountPrice }
func (p *Product) Gender() Gender              { return p.gender }
func (p *Product) Category() string            { return p.category }
func (p *Product) Sizes() []SizeStock          { return append([]SizeStock(nil), p.sizes...) }
func (p *Product) Images() []string            { return append([]string(nil), p.images...) }
func (p *Product) Rating() float64             { return p.rating }
func (p *Product) Featured() bool              { return p.featured }
func (p *Product) IsNew() bool                 { return p.isNew }
func (p *Product) Tags() []string              { return append([]string(nil), p.tags...) }
func (p *Product) Ingredients() []string       { return append([]string(nil), p.ingredients...) }
func (p *Product) CreatedAt() time.Time        { return p.createdAt }
func (p *Product) UpdatedAt() time.Time        { return p.updatedAt }
func (p *Product) Changes() *ChangeTracker     { return p.changes }
func (p *Product) DomainEvents() []DomainEvent { return p.events }

// Details returns a snapshot of the writable attributes.
func (p *Product) Details() ProductDetails {
	return ProductDetails{
		Name:          p.name,
		Brand:         p.brand,
		Description:   p.description,
		Price:         p.price,
		DiscountPrice: p.discountPrice,
		Gender:        p.gender,
		Category:      p.category,
		Sizes:         p.Sizes(),
		Images:        p.Images(),
		Rating:        p.rating,
		Featured:      p.featured,
		IsNew:         p.isNew,
		Tags:          p.Tags(),
		Ingredients:   p.Ingredients(),
	}
}

// EffectivePrice is the discount price when one is set, otherwise the list price.
func (p *Product) EffectivePrice() *Money {
	if p.discountPrice != nil {
		return p.discountPrice
	}
	return p.price
}

// PrimaryImage is the first image, or "" when the product has none.
func (p *Product) PrimaryImage() string {
	if len(p.images) == 0 {
		return ""
	}
	return p.images[0]
}

// StockFor reports the stock of size and whether the size is offered.
func (p *Product) StockFor(size string) (int64, bool) {
	for _, s := range p.sizes {
		if strings.EqualFold(s.Size, size) {
			return s.Stock, true
		}
	}
	return 0, false
}

// Update applies patch, marks the touched fields dirty and records
// ProductUpdatedEvent (plus PriceChangedEvent when the list price moved).
// A patch that changes nothing records no events.
func (p *Product) Update(patch ProductPatch, now time.Time) error {
	next := p.Details()
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.Brand != nil {
		next.Brand = *patch.Brand
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.Price != nil {
		next.Price = patch.Price
	}
	if patch.DiscountPrice != nil {
		next.DiscountPrice = patch.DiscountPrice
	}
	if patch.ClearDiscount {
		next.DiscountPrice = nil
	}
	if patch.Gender != nil {
		next.Gender = *patch.Gender
	}
	if patch.Category != nil {
		next.Category = *patch.Category
	}
	if patch.Sizes != nil {
		next.Sizes = patch.Sizes
	}
	if patch.Images != nil {
		next.Images = patch.Images
	}
	if patch.Rating != nil {
		next.Rating = *patch.Rating
	}
	if patch.Featured != nil {
		next.Featured = *patch.Featured
	}
	if patch.IsNew != nil {
		next.IsNew = *patch.IsNew
	}
	if patch.Tags != nil {
		next.Tags = patch.Tags
	}
	if patch.Ingredients != nil {
		next.Ingredients = patch.Ingredients
	}

	next = normalizeDetails(next)
	if err := validateDetails(next); err != nil {
		return err
	}

	delta := NewChangeTracker()
	oldPrice := p.price

	if next.Name != p.name {
		p.name = next.Name
		delta.Record(FieldName, p.name)
	}
	if next.Brand != p.brand {
		p.brand = next.Brand
		delta.Record(FieldBrand, p.brand)
	}
	if next.Description != p.description {
		p.description = next.Description
		delta.Record(FieldDescription, p.description)
	}
	if !next.Price.Equals(p.price) {
		p.price = next.Price
		delta.Record(FieldPrice, p.price.String())
	}
	if !sameOptionalMoney(next.DiscountPrice, p.discountPrice) {
		p.discountPrice = next.DiscountPrice
		var v interface{}
		if p.discountPrice != nil {
			v = p.discountPrice.String()
		}
		delta.Record(FieldDiscountPrice, v)
	}
	if next.Gender != p.gender {
		p.gender = next.Gender
		delta.Record(FieldGender, string(p.gender))
	}
	if next.Category != p.category {
		p.category = next.Category
		delta.Record(FieldCategory, p.category)
	}
	if !sameSizes(next.Sizes, p.sizes) {
		p.sizes = next.Sizes
		delta.Record(FieldSizes, len(p.sizes))
	}
	if !sameStrings(next.Images, p.images) {
		p.images = next.Images
		delta.Record(FieldImages, p.images)
	}
	if next.Rating != p.rating {
		p.rating = next.Rating
		delta.Record(FieldRating, p.rating)
	}
	if next.Featured != p.featured {
		p.featured = next.Featured
		delta.Record(FieldFeatured, p.featured)
	}
	if next.IsNew != p.isNew {
		p.isNew = next.IsNew
		delta.Record(FieldIsNew, p.isNew)
	}
	if !sameStrings(next.Tags, p.tags) {
		p.tags = next.Tags
		delta.Record(FieldTags, p.tags)
	}
	if !sameStrings(next.Ingredients, p.ingredients) {
		p.ingredients = next.Ingredients
		delta.Record(FieldIngredients, p.ingredients)
	}

	if !delta.HasChanges() {
		return nil
	}

	p.changes.Merge(delta)
	p.updatedAt = now
	p.events = append(p.events, &ProductUpdatedEvent{
		ProductID: p.id,
		UpdatedAt: now,
		Changes:   delta.Values(),
	})
	if delta.Dirty(FieldPrice) {
		p.events = append(p.events, &PriceChangedEvent{
			ProductID: p.id,
			OldPrice:  oldPrice,
			NewPrice:  p.price,
			ChangedAt: now,
		})
	}
	return nil
}

// MarkDeleted records ProductDeletedEvent. Removal of the row is the repo's job.
func (p *Product) MarkDeleted(now time.Time) {
	p.events = append(p.events, &ProductDeletedEvent{
		ProductID: p.id,
		DeletedAt: now,
	})
}

func (p *Product) ClearEvents() {
	p.events = nil
}

func normalizeDetails(d ProductDetails) ProductDetails {
	d.Name = strings.TrimSpace(d.Name)
	d.Brand = strings.TrimSpace(d.Brand)
	d.Description = strings.TrimSpace(d.Description)
	d.Category = strings.TrimSpace(d.Category)
	d.Images = trimAll(d.Images)
	d.Tags = trimAll(d.Tags)
	d.Ingredients = trimAll(d.Ingredients)
	sizes := make([]SizeStock, 0, len(d.Sizes))
	for _, s := range d.Sizes {
		sizes = append(sizes, SizeStock{Size: strings.TrimSpace(s.Size), Stock: s.Stock})
	}
	d.Sizes = sizes
	return d
}

func validateDetails(d ProductDetails) error {
	if d.Name == "" {
		return ErrEmptyProductName
	}
	if len(d.Name) > 255 {
		return ErrProductNameTooLong
	}
	if d.Brand == "" {
		return ErrEmptyProductBrand
	}
	if d.Description == "" {
		return ErrEmptyProductDescription
	}
	if d.Category == "" {
		return ErrEmptyProductCategory
	}
	if len(d.Category) > 100 {
		return ErrProductCategoryTooLong
	}
	if _, err := ParseGender(string(d.Gender)); err != nil {
		return err
	}
	if err := validatePrice(d.Price); err != nil {
		return err
	}
	if d.DiscountPrice != nil {
		if d.DiscountPrice.IsNegative() {
			return ErrNegativePrice
		}
		if !d.DiscountPrice.LessThan(d.Price) {
			return ErrDiscountNotBelowPrice
		}
	}
	if len(d.Sizes) == 0 {
		return ErrNoSizes
	}
	seen := make(map[string]bool, len(d.Sizes))
	for _, s := range d.Sizes {
		if s.Size == "" {
			return ErrEmptySize
		}
		if s.Stock < 0 {
			return ErrNegativeStock
		}
		key := strings.ToLower(s.Size)
		if seen[key] {
			return ErrDuplicateSize
		}
		seen[key] = true
	}
	if d.Rating < 0 || d.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

func validatePrice(price *Money) error {
	if price == nil {
		return ErrZeroPrice
	}
	if price.IsNegative() {
		return ErrNegativePrice
	}
	if price.IsZero() {
		return ErrZeroPrice
	}
	return nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func sameOptionalMoney(a, b *Money) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(b)
}

func sameSizes(a, b []SizeStock) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
