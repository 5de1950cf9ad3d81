// Package seed loads a YAML product catalog and creates each product.
package seed

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/murkotick/storefront-service/internal/app/product/domain"
	"github.com/murkotick/storefront-service/internal/app/product/usecases/create_product"
)

type sizeEntry struct {
	Size  string `yaml:"size"`
	Stock int64  `yaml:"stock"`
}

// Prices are decimal strings so they reach Money without float rounding.
type productEntry struct {
	Name          string      `yaml:"name"`
	Brand         string      `yaml:"brand"`
	Description   string      `yaml:"description"`
	Price         string      `yaml:"price"`
	DiscountPrice string      `yaml:"discountPrice"`
	Gender        string      `yaml:"gender"`
	Category      string      `yaml:"category"`
	Sizes         []sizeEntry `yaml:"sizes"`
	Images        []string    `yaml:"images"`
	Rating        float64     `yaml:"rating"`
	Featured      bool        `yaml:"featured"`
	IsNew         bool        `yaml:"isNew"`
	Tags          []string    `yaml:"tags"`
	Ingredients   []string    `yaml:"ingredients"`
}

type catalogFile struct {
	Products []productEntry `yaml:"products"`
}

// Parse decodes a catalog document. Field values are checked later by
// domain.NewProduct; Parse only rejects what cannot be converted.
func Parse(r io.Reader) ([]create_product.Request, error) {
	var doc catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	out := make([]create_product.Request, 0, len(doc.Products))
	for i, p := range doc.Products {
		d, err := p.details()
		if err != nil {
			return nil, fmt.Errorf("products[%d] %q: %w", i, p.Name, err)
		}
		out = append(out, create_product.Request{Details: d})
	}
	return out, nil
}

func (p productEntry) details() (domain.ProductDetails, error) {
	price, err := domain.NewMoneyFromDecimal(p.Price)
	if err != nil {
		return domain.ProductDetails{}, err
	}
	var discount *domain.Money
	if p.DiscountPrice != "" {
		if discount, err = domain.NewMoneyFromDecimal(p.DiscountPrice); err != nil {
			return domain.ProductDetails{}, err
		}
	}
	gender, err := domain.ParseGender(p.Gender)
	if err != nil {
		return domain.ProductDetails{}, err
	}

	sizes := make([]domain.SizeStock, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		sizes = append(sizes, domain.SizeStock{Size: s.Size, Stock: s.Stock})
	}
	return domain.ProductDetails{
		Name:          p.Name,
		Brand:         p.Brand,
		Description:   p.Description,
		Price:         price,
		DiscountPrice: discount,
		Gender:        gender,
		Category:      p.Category,
		Sizes:         sizes,
		Images:        p.Images,
		Rating:        p.Rating,
		Featured:      p.Featured,
		IsNew:         p.IsNew,
		Tags:          p.Tags,
		Ingredients:   p.Ingredients,
	}, nil
}

// Creator is satisfied by *create_product.Interactor.
type Creator interface {
	Execute(ctx context.Context, req create_product.Request) (string, error)
}

// Run creates every product and stops at the first failure. It returns the
// number created.
func Run(ctx context.Context, c Creator, reqs []create_product.Request, log logrus.FieldLogger) (int, error) {
	for i, req := range reqs {
		id, err := c.Execute(ctx, req)
		if err != nil {
			return i, fmt.Errorf("create %q: %w", req.Details.Name, err)
		}
		log.WithFields(logrus.Fields{"product_id": id, "name": req.Details.Name}).Info("product seeded")
	}
	return len(reqs), nil
}
