package list_products

import (
	"context"

	"golang.org/x/sync/errgroup"

	contracts "github.com/murkotick/storefront-service/internal/app/product/contracts"
	"github.com/murkotick/storefront-service/internal/app/product/dto"
)

const (
	DefaultLimit = 12
	MaxLimit     = 100
	// MaxPage keeps (Page-1)*Limit far inside int range.
	MaxPage = 1_000_000
)

// Query is a catalog listing request. Zero values select the defaults:
// page 1, 12 per page, newest first.
type Query struct {
	Filter dto.ProductFilter
	Sort   dto.ProductSort
	Page   int
	Limit  int
}

type Result struct {
	Products   []*dto.ProductDTO
	TotalCount int64
	Page       int
	Limit      int
	TotalPages int
	Facets     dto.Facets
}

type Handler struct {
	readModel contracts.ReadModel
}

func NewHandler(r contracts.ReadModel) *Handler {
	return &Handler{readModel: r}
}

// Normalize applies defaults and clamps paging.
func (q Query) Normalize() Query {
	switch {
	case q.Page < 1:
		q.Page = 1
	case q.Page > MaxPage:
		q.Page = MaxPage
	}
	switch {
	case q.Limit <= 0:
		q.Limit = DefaultLimit
	case q.Limit > MaxLimit:
		q.Limit = MaxLimit
	}
	switch q.Sort.By {
	case dto.SortByPrice, dto.SortByName, dto.SortByRating, dto.SortByCreatedAt:
	default:
		q.Sort.By = dto.SortByCreatedAt
	}
	return q
}

// Execute loads the page and the facet lists concurrently.
func (h *Handler) Execute(ctx context.Context, q Query) (*Result, error) {
	q = q.Normalize()

	var (
		page   *dto.ProductPage
		facets *dto.Facets
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = h.readModel.ListProducts(gctx, q.Filter, q.Sort, dto.PageRequest{Page: q.Page, Limit: q.Limit})
		return err
	})
	g.Go(func() error {
		var err error
		facets, err = h.readModel.ListFacets(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{
		Products:   page.Products,
		TotalCount: page.TotalCount,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: totalPages(page.TotalCount, q.Limit),
		Facets:     *facets,
	}, nil
}

func totalPages(total int64, limit int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
