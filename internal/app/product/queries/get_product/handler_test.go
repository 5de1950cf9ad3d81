package get_product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-service/internal/app/product/domain"
	"github.com/murkotick/storefront-service/internal/app/product/dto"
)

type fakeReadModel struct {
	products map[string]*dto.ProductDTO
	calls    int
}

func (f *fakeReadModel) GetProduct(_ context.Context, id string) (*dto.ProductDTO, error) {
	f.calls++
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeReadModel) ListProducts(context.Context, dto.ProductFilter, dto.ProductSort, dto.PageRequest) (*dto.ProductPage, error) {
	return nil, nil
}

func (f *fakeReadModel) ListFacets(context.Context) (*dto.Facets, error) {
	return nil, nil
}

func TestHandler_InvalidIDSkipsStore(t *testing.T) {
	rm := &fakeReadModel{}

	_, err := NewHandler(rm).Execute(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, domain.ErrInvalidProductID)
	assert.Zero(t, rm.calls)
}

func TestHandler_FoundAndNotFound(t *testing.T) {
	const id = "6f1c2b7e-6c1e-4a53-9d0e-0c6b1a7f7e11"
	rm := &fakeReadModel{products: map[string]*dto.ProductDTO{id: {ProductID: id, Name: "Serum"}}}
	h := NewHandler(rm)

	got, err := h.Execute(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Serum", got.Name)

	_, err = h.Execute(context.Background(), "0b8f0a52-3c55-4b8e-9b0a-7b2c5ad6f1aa")
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}
