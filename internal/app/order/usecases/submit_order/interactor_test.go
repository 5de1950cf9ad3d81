package submit_order

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-service/internal/app/order/domain"
	"github.com/murkotick/storefront-service/internal/app/order/repo"
	"github.com/murkotick/storefront-service/internal/app/outbox"
	pdomain "github.com/murkotick/storefront-service/internal/app/product/domain"
	"github.com/murkotick/storefront-service/internal/app/product/dto"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	commitplan "github.com/murkotick/storefront-service/internal/pkg/committer"
)

type stubCatalog struct {
	mu       sync.Mutex
	products map[string]*dto.ProductDTO
	calls    int
}

func (c *stubCatalog) GetProduct(_ context.Context, id string) (*dto.ProductDTO, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	p, ok := c.products[id]
	if !ok {
		return nil, pdomain.ErrProductNotFound
	}
	return p, nil
}

type recordingCommitter struct {
	plans []*commitplan.Plan
	err   error
}

func (c *recordingCommitter) Apply(_ context.Context, p *commitplan.Plan) error {
	c.plans = append(c.plans, p)
	return c.err
}

func int64p(v int64) *int64 { return &v }

func catalog() *stubCatalog {
	return &stubCatalog{products: map[string]*dto.ProductDTO{
		"p-1": {
			ProductID:   "p-1",
			Name:        "Rose Serum",
			Brand:       "Terra",
			PriceNum:    25,
			PriceDen:    1,
			DiscountNum: int64p(20),
			DiscountDen: int64p(1),
			Sizes:       []dto.SizeDTO{{Size: "30ml", Stock: 5}},
			Images:      []string{"rose.jpg"},
		},
		"p-2": {
			ProductID: "p-2",
			Name:      "Clay Mask",
			Brand:     "Terra",
			PriceNum:  60,
			PriceDen:  1,
			Sizes:     []dto.SizeDTO{{Size: "100ml", Stock: 1}},
		},
	}}
}

func newInteractor(cat *stubCatalog, cm *recordingCommitter) (*Interactor, *logtest.Hook) {
	log, hook := logtest.NewNullLogger()
	clk := clock.NewFake(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	return NewInteractor(cat, repo.NewOrderRepo(), outbox.NewRepo(), cm, clk, log, 2), hook
}

func request(items ...LineRequest) Request {
	return Request{
		UserID:          "u-1",
		Items:           items,
		ShippingAddress: domain.Address{FullName: "Ada", Street: "1 Loop", City: "London", PostalCode: "N1"},
		PaymentMethod:   "credit-card",
	}
}

func TestExecute_RepricesAndMergesLines(t *testing.T) {
	cm := &recordingCommitter{}
	it, _ := newInteractor(catalog(), cm)

	order, err := it.Execute(context.Background(), request(
		LineRequest{ProductID: "p-1", Size: "30ml", Quantity: 1},
		LineRequest{ProductID: "p-1", Size: "30ML", Quantity: 1},
	))
	require.NoError(t, err)

	require.Len(t, order.Items(), 1)
	line := order.Items()[0]
	assert.Equal(t, int64(2), line.Quantity)
	assert.Equal(t, "30ml", line.Size)
	assert.Equal(t, "rose.jpg", line.ProductImage)
	assert.True(t, line.UnitPrice.Equals(pdomain.NewMoneyFromCents(2000)))

	totals := order.Totals()
	assert.Equal(t, "40.00", totals.Subtotal.String())
	assert.Equal(t, "8.99", totals.ShippingCost.String())
	assert.Equal(t, "2.80", totals.Tax.String())
	assert.Equal(t, "51.79", totals.Total.String())
	assert.Equal(t, domain.PaymentCreditCard, order.PaymentMethod())
	assert.Equal(t, domain.StatusPending, order.Status())

	require.Len(t, cm.plans, 1)
	assert.Equal(t, 3, cm.plans[0].Len())
}

func TestExecute_LogsClientTotalMismatch(t *testing.T) {
	it, hook := newInteractor(catalog(), &recordingCommitter{})

	req := request(LineRequest{ProductID: "p-2", Size: "100ml", Quantity: 1})
	wrong := 1.00
	req.ClientTotal = &wrong

	order, err := it.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "73.19", order.Totals().Total.String())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "73.19", entry.Data["server_total"])
}

func TestExecute_ValidationBeforeLookup(t *testing.T) {
	cat := catalog()
	cm := &recordingCommitter{}
	it, _ := newInteractor(cat, cm)

	req := request(LineRequest{ProductID: "p-1", Size: "30ml", Quantity: 0})
	req.PaymentMethod = "cash"
	_, err := it.Execute(context.Background(), req)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 2)
	assert.Zero(t, cat.calls)
	assert.Empty(t, cm.plans)
}

func TestExecute_CatalogRejections(t *testing.T) {
	cases := []struct {
		name string
		line LineRequest
		want error
	}{
		{"unknown product", LineRequest{ProductID: "nope", Size: "30ml", Quantity: 1}, pdomain.ErrProductNotFound},
		{"size not offered", LineRequest{ProductID: "p-1", Size: "50ml", Quantity: 1}, domain.ErrSizeUnavailable},
		{"not enough stock", LineRequest{ProductID: "p-2", Size: "100ml", Quantity: 2}, domain.ErrInsufficientStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cm := &recordingCommitter{}
			it, _ := newInteractor(catalog(), cm)

			_, err := it.Execute(context.Background(), request(tc.line))
			require.ErrorIs(t, err, tc.want)
			assert.Empty(t, cm.plans)
		})
	}
}

func TestExecute_LooksUpEachProductOnce(t *testing.T) {
	cat := catalog()
	it, _ := newInteractor(cat, &recordingCommitter{})

	_, err := it.Execute(context.Background(), request(
		LineRequest{ProductID: "p-1", Size: "30ml", Quantity: 1},
		LineRequest{ProductID: "p-2", Size: "100ml", Quantity: 1},
		LineRequest{ProductID: "p-1", Size: "30ml", Quantity: 2},
	))
	require.NoError(t, err)
	assert.Equal(t, 2, cat.calls)
}

func TestExecute_CommitError(t *testing.T) {
	boom := errors.New("aborted")
	it, _ := newInteractor(catalog(), &recordingCommitter{err: boom})

	_, err := it.Execute(context.Background(), request(LineRequest{ProductID: "p-2", Size: "100ml", Quantity: 1}))
	require.ErrorIs(t, err, boom)
}

func TestMergeLines_KeepsFirstSeenOrder(t *testing.T) {
	got := mergeLines([]LineRequest{
		{ProductID: "b", Size: "S", Quantity: 1},
		{ProductID: "a", Size: "M", Quantity: 1},
		{ProductID: "b", Size: "s", Quantity: 3},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ProductID)
	assert.Equal(t, int64(4), got[0].Quantity)
	assert.Equal(t, "a", got[1].ProductID)
}
