package update_product

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-service/internal/app/outbox"
	"github.com/murkotick/storefront-service/internal/app/product/domain"
	"github.com/murkotick/storefront-service/internal/app/product/dto"
	"github.com/murkotick/storefront-service/internal/app/product/repo"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	commitplan "github.com/murkotick/storefront-service/internal/pkg/committer"
)

type recordingCommitter struct {
	plans []*commitplan.Plan
}

func (c *recordingCommitter) Apply(_ context.Context, p *commitplan.Plan) error {
	c.plans = append(c.plans, p)
	return nil
}

type stubReadModel struct {
	product *dto.ProductDTO
}

func (s *stubReadModel) GetProduct(_ context.Context, id string) (*dto.ProductDTO, error) {
	if s.product == nil || s.product.ProductID != id {
		return nil, domain.ErrProductNotFound
	}
	return s.product, nil
}

func (s *stubReadModel) ListProducts(context.Context, dto.ProductFilter, dto.ProductSort, dto.PageRequest) (*dto.ProductPage, error) {
	return nil, nil
}

func (s *stubReadModel) ListFacets(context.Context) (*dto.Facets, error) {
	return nil, nil
}

func stored() *dto.ProductDTO {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &dto.ProductDTO{
		ProductID:   "p-1",
		Name:        "Clay Mask",
		Brand:       "Terra",
		Description: "Detox mask",
		PriceNum:    1800,
		PriceDen:    100,
		Gender:      "unisex",
		Category:    "skincare",
		Sizes:       []dto.SizeDTO{{Size: "100ml", Stock: 3}},
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func newInteractor(rm *stubReadModel, cm *recordingCommitter) *Interactor {
	return NewInteractor(repo.NewProductRepo(), outbox.NewRepo(), cm, rm, clock.NewFake(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestExecute_PriceChangeEmitsTwoEvents(t *testing.T) {
	cm := &recordingCommitter{}
	it := newInteractor(&stubReadModel{product: stored()}, cm)

	err := it.Execute(context.Background(), Request{
		ProductID: "p-1",
		Patch:     domain.ProductPatch{Price: domain.NewMoneyFromCents(2000)},
	})
	require.NoError(t, err)

	require.Len(t, cm.plans, 1)
	// update + product.updated + price.changed
	assert.Equal(t, 3, cm.plans[0].Len())
}

func TestExecute_NoopPatchCommitsNothing(t *testing.T) {
	cm := &recordingCommitter{}
	it := newInteractor(&stubReadModel{product: stored()}, cm)

	name := "Clay Mask"
	require.NoError(t, it.Execute(context.Background(), Request{ProductID: "p-1", Patch: domain.ProductPatch{Name: &name}}))

	require.Len(t, cm.plans, 1)
	assert.True(t, cm.plans[0].IsEmpty())
}

func TestExecute_NotFound(t *testing.T) {
	cm := &recordingCommitter{}
	it := newInteractor(&stubReadModel{}, cm)

	err := it.Execute(context.Background(), Request{ProductID: "missing"})
	require.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Empty(t, cm.plans)
}

func TestExecute_InvalidPatch(t *testing.T) {
	cm := &recordingCommitter{}
	it := newInteractor(&stubReadModel{product: stored()}, cm)

	err := it.Execute(context.Background(), Request{
		ProductID: "p-1",
		Patch:     domain.ProductPatch{DiscountPrice: domain.NewMoneyFromCents(1900)},
	})
	require.ErrorIs(t, err, domain.ErrDiscountNotBelowPrice)
	assert.Empty(t, cm.plans)
}
