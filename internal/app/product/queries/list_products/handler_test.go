package list_products

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-service/internal/app/product/dto"
)

type fakeReadModel struct {
	gotPage   dto.PageRequest
	gotSort   dto.ProductSort
	page      *dto.ProductPage
	facets    *dto.Facets
	facetsErr error
}

func (f *fakeReadModel) GetProduct(context.Context, string) (*dto.ProductDTO, error) {
	return nil, errors.New("not used")
}

func (f *fakeReadModel) ListProducts(_ context.Context, _ dto.ProductFilter, s dto.ProductSort, p dto.PageRequest) (*dto.ProductPage, error) {
	f.gotPage = p
	f.gotSort = s
	return f.page, nil
}

func (f *fakeReadModel) ListFacets(context.Context) (*dto.Facets, error) {
	return f.facets, f.facetsErr
}

func TestQuery_Normalize(t *testing.T) {
	q := Query{Page: 0, Limit: 0, Sort: dto.ProductSort{By: "bogus"}}.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultLimit, q.Limit)
	assert.Equal(t, dto.SortByCreatedAt, q.Sort.By)

	q = Query{Page: 4, Limit: 1000, Sort: dto.ProductSort{By: dto.SortByRating}}.Normalize()
	assert.Equal(t, 4, q.Page)
	assert.Equal(t, MaxLimit, q.Limit)
	assert.Equal(t, dto.SortByRating, q.Sort.By)

	q = Query{Page: math.MaxInt, Limit: MaxLimit}.Normalize()
	assert.Equal(t, MaxPage, q.Page)
	assert.Positive(t, dto.PageRequest{Page: q.Page, Limit: q.Limit}.Offset())
}

func TestHandler_Execute(t *testing.T) {
	rm := &fakeReadModel{
		page: &dto.ProductPage{
			Products:   []*dto.ProductDTO{{ProductID: "a"}, {ProductID: "b"}},
			TotalCount: 25,
		},
		facets: &dto.Facets{Brands: []string{"Aqualis"}, Categories: []string{"skincare"}},
	}

	res, err := NewHandler(rm).Execute(context.Background(), Query{Page: 2})
	require.NoError(t, err)

	assert.Equal(t, dto.PageRequest{Page: 2, Limit: 12}, rm.gotPage)
	assert.Len(t, res.Products, 2)
	assert.Equal(t, int64(25), res.TotalCount)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, []string{"Aqualis"}, res.Facets.Brands)
}

func TestHandler_FacetErrorFailsListing(t *testing.T) {
	rm := &fakeReadModel{
		page:      &dto.ProductPage{},
		facetsErr: errors.New("spanner unavailable"),
	}

	_, err := NewHandler(rm).Execute(context.Background(), Query{})
	require.Error(t, err)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, totalPages(0, 12))
	assert.Equal(t, 1, totalPages(12, 12))
	assert.Equal(t, 2, totalPages(13, 12))
}
