package product

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-service/internal/app/outbox"
	"github.com/murkotick/storefront-service/internal/app/product/domain"
	"github.com/murkotick/storefront-service/internal/app/product/dto"
	"github.com/murkotick/storefront-service/internal/app/product/queries/get_product"
	"github.com/murkotick/storefront-service/internal/app/product/queries/list_products"
	"github.com/murkotick/storefront-service/internal/app/product/repo"
	"github.com/murkotick/storefront-service/internal/app/product/usecases/create_product"
	"github.com/murkotick/storefront-service/internal/app/product/usecases/delete_product"
	"github.com/murkotick/storefront-service/internal/app/product/usecases/update_product"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	commitplan "github.com/murkotick/storefront-service/internal/pkg/committer"
	"github.com/murkotick/storefront-service/internal/pkg/logger"
	"github.com/murkotick/storefront-service/internal/transport/rest/httpx"
)

const knownID = "0b6f3f5e-9a57-4c57-a3a2-0d5e8cf2a001"

type stubReadModel struct {
	// any reports every well-formed id as existing, for create flows.
	any        bool
	lastFilter dto.ProductFilter
	lastSort   dto.ProductSort
	lastPage   dto.PageRequest
}

func sample(id string) *dto.ProductDTO {
	num, den := int64(1999), int64(100)
	return &dto.ProductDTO{
		ProductID:   id,
		Name:        "Rose Serum",
		Brand:       "Terra",
		Description: "Hydrating",
		PriceNum:    2500,
		PriceDen:    100,
		DiscountNum: &num,
		DiscountDen: &den,
		Gender:      "unisex",
		Category:    "skincare",
		Sizes:       []dto.SizeDTO{{Size: "30ml", Stock: 3}},
		CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *stubReadModel) GetProduct(_ context.Context, id string) (*dto.ProductDTO, error) {
	if id == knownID || s.any {
		return sample(id), nil
	}
	return nil, domain.ErrProductNotFound
}

func (s *stubReadModel) ListProducts(_ context.Context, f dto.ProductFilter, srt dto.ProductSort, p dto.PageRequest) (*dto.ProductPage, error) {
	s.lastFilter, s.lastSort, s.lastPage = f, srt, p
	return &dto.ProductPage{Products: []*dto.ProductDTO{sample(knownID)}, TotalCount: 25}, nil
}

func (s *stubReadModel) ListFacets(context.Context) (*dto.Facets, error) {
	return &dto.Facets{Brands: []string{"Terra"}, Categories: []string{"skincare"}}, nil
}

type recordingCommitter struct {
	plans []*commitplan.Plan
}

func (c *recordingCommitter) Apply(_ context.Context, p *commitplan.Plan) error {
	c.plans = append(c.plans, p)
	return nil
}

func newRouter(rm *stubReadModel, cm *recordingCommitter, admin func(http.Handler) http.Handler) *mux.Router {
	clk := clock.NewFake(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	pr, ob := repo.NewProductRepo(), outbox.NewRepo()
	h := NewHandler(Commands{
		Create: create_product.NewInteractor(pr, ob, cm, clk),
		Update: update_product.NewInteractor(pr, ob, cm, rm, clk),
		Delete: delete_product.NewInteractor(pr, ob, cm, rm, clk),
	}, Queries{
		Get:  get_product.NewHandler(rm),
		List: list_products.NewHandler(rm),
	}, logger.Discard())

	if admin == nil {
		admin = func(next http.Handler) http.Handler { return next }
	}
	r := mux.NewRouter()
	h.Register(r, admin)
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestListProducts(t *testing.T) {
	rm := &stubReadModel{}
	r := newRouter(rm, &recordingCommitter{}, nil)

	rec := do(r, http.MethodGet, "/api/products?gender=Female&brand=Terra&minPrice=10&sortBy=price&sortOrder=asc&page=2&limit=10&featured=true&search=rose", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body listReply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, paginationJSON{CurrentPage: 2, TotalPages: 3, TotalProducts: 25, Limit: 10}, body.Pagination)
	assert.Equal(t, []string{"Terra"}, body.Filters.Brands)
	require.Len(t, body.Products, 1)
	assert.Equal(t, knownID, body.Products[0].ID)
	assert.InDelta(t, 19.99, body.Products[0].EffectivePrice, 1e-9)

	assert.Equal(t, "female", rm.lastFilter.Gender)
	assert.True(t, rm.lastFilter.Featured)
	require.NotNil(t, rm.lastFilter.MinPrice)
	assert.Equal(t, 10.0, *rm.lastFilter.MinPrice)
	assert.Equal(t, dto.ProductSort{By: dto.SortByPrice, Desc: false}, rm.lastSort)
	assert.Equal(t, 10, rm.lastPage.Offset())
}

func TestListProducts_Defaults(t *testing.T) {
	rm := &stubReadModel{}
	r := newRouter(rm, &recordingCommitter{}, nil)

	require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/products?sortBy=popularity", "").Code)
	assert.Equal(t, dto.ProductSort{By: dto.SortByCreatedAt, Desc: true}, rm.lastSort)
	assert.Equal(t, dto.PageRequest{Page: 1, Limit: list_products.DefaultLimit}, rm.lastPage)
}

func TestListProducts_BadQuery(t *testing.T) {
	r := newRouter(&stubReadModel{}, &recordingCommitter{}, nil)

	rec := do(r, http.MethodGet, "/api/products?page=zero&maxPrice=-1", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body httpx.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Fields, 2)
}

func TestListProducts_PageOutOfRange(t *testing.T) {
	rm := &stubReadModel{}
	r := newRouter(rm, &recordingCommitter{}, nil)

	for _, page := range []string{"1000001", "9223372036854775807", "9223372036854775808"} {
		rec := do(r, http.MethodGet, "/api/products?page="+page+"&limit=100", "")
		require.Equal(t, http.StatusBadRequest, rec.Code, page)

		var body httpx.ErrorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Fields, 1)
		assert.Equal(t, "page", body.Fields[0].Field)
	}
	assert.Zero(t, rm.lastPage)

	require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/products?page=1000000&limit=100", "").Code)
	assert.Equal(t, (list_products.MaxPage-1)*list_products.MaxLimit, rm.lastPage.Offset())
}

func TestGetProduct(t *testing.T) {
	r := newRouter(&stubReadModel{}, &recordingCommitter{}, nil)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/products/"+knownID, "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/products/not-a-uuid", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/products/6a0c7b9e-1111-4c57-a3a2-0d5e8cf2a001", "").Code)
}

func TestGetProduct_DirectWithURLVars(t *testing.T) {
	h := NewHandler(Commands{}, Queries{Get: get_product.NewHandler(&stubReadModel{})}, logger.Discard())

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/products/"+knownID, nil), map[string]string{"id": knownID})
	rec := httptest.NewRecorder()
	h.GetProduct(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var p productJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.NotNil(t, p.DiscountPrice)
	assert.InDelta(t, 25.0, p.Price, 1e-9)
}

func TestCreateProduct_ReportsAllMissingFields(t *testing.T) {
	cm := &recordingCommitter{}
	r := newRouter(&stubReadModel{}, cm, nil)

	rec := do(r, http.MethodPost, "/api/products", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body httpx.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Fields, 7)
	assert.Empty(t, cm.plans)
}

func TestCreateProduct(t *testing.T) {
	cm := &recordingCommitter{}
	r := newRouter(&stubReadModel{any: true}, cm, nil)

	rec := do(r, http.MethodPost, "/api/products", `{
		"name": "Rose Serum", "brand": "Terra", "description": "Hydrating",
		"price": 25, "discountPrice": 19.99, "gender": "unisex", "category": "skincare",
		"sizes": [{"size": "30ml", "stock": 3}]
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, cm.plans, 1)
	assert.Equal(t, 2, cm.plans[0].Len())
}

func TestCreateProduct_DomainRule(t *testing.T) {
	r := newRouter(&stubReadModel{any: true}, &recordingCommitter{}, nil)

	rec := do(r, http.MethodPost, "/api/products", `{
		"name": "Rose Serum", "brand": "Terra", "description": "Hydrating",
		"price": 25, "discountPrice": 30, "gender": "unisex", "category": "skincare",
		"sizes": [{"size": "30ml", "stock": 3}]
	}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"discountPrice"`)
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	cm := &recordingCommitter{}
	r := newRouter(&stubReadModel{}, cm, nil)

	assert.Equal(t, http.StatusOK, do(r, http.MethodPut, "/api/products/"+knownID, `{"discountPrice": null}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/api/products/"+knownID, `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/api/products/nope", `{"name":"x"}`).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/api/products/"+knownID, "").Code)
	assert.Len(t, cm.plans, 2)
}

func TestWritesGoThroughAdminGate(t *testing.T) {
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
	}
	r := newRouter(&stubReadModel{}, &recordingCommitter{}, deny)

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/api/products", `{}`).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodDelete, "/api/products/"+knownID, "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/products/"+knownID, "").Code)
}

func TestMapUpdateRequest(t *testing.T) {
	var req productRequest
	require.NoError(t, json.Unmarshal([]byte(`{"discountPrice": null, "gender": "MALE"}`), &req))
	patch, err := mapUpdateRequest(req)
	require.NoError(t, err)
	assert.True(t, patch.ClearDiscount)
	require.NotNil(t, patch.Gender)
	assert.Equal(t, domain.GenderMale, *patch.Gender)

	req = productRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"discountPrice": 5}`), &req))
	patch, err = mapUpdateRequest(req)
	require.NoError(t, err)
	assert.False(t, patch.ClearDiscount)
	assert.Equal(t, "5.00", patch.DiscountPrice.String())

	_, err = mapUpdateRequest(productRequest{Gender: ptr("robot")})
	assert.ErrorIs(t, err, domain.ErrInvalidGender)
}

func ptr[T any](v T) *T { return &v }
