package list_products

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/murkotick/storefront-service/internal/app/product/dto"
)

func ptr(f float64) *float64 { return &f }

func TestBuildListStatement_Defaults(t *testing.T) {
	stmt := buildListStatement(dto.ProductFilter{}, dto.ProductSort{By: dto.SortByCreatedAt, Desc: true}, dto.PageRequest{Page: 1, Limit: 12})

	assert.NotContains(t, stmt.SQL, "WHERE")
	assert.Contains(t, stmt.SQL, "ORDER BY created_at DESC, product_id DESC")
	assert.Equal(t, int64(12), stmt.Params["limit"])
	assert.Equal(t, int64(0), stmt.Params["offset"])
}

func TestBuildListStatement_EveryFilter(t *testing.T) {
	f := dto.ProductFilter{
		Gender:   "Female",
		Category: "skincare",
		Brand:    "Aqualis",
		MinPrice: ptr(10),
		MaxPrice: ptr(50),
		Search:   "Rose 100%",
		Featured: true,
		IsNew:    true,
	}
	stmt := buildListStatement(f, dto.ProductSort{By: dto.SortByPrice}, dto.PageRequest{Page: 3, Limit: 20})

	for _, frag := range []string{
		"gender = @gender",
		"category = @category",
		"brand = @brand",
		"(price_numerator / price_denominator) >= @minPrice",
		"(price_numerator / price_denominator) <= @maxPrice",
		"featured = TRUE",
		"is_new = TRUE",
		"LOWER(name) LIKE @q0 OR LOWER(brand) LIKE @q0 OR LOWER(description) LIKE @q0",
		" OR LOWER(name) LIKE @q1",
		"ORDER BY (price_numerator / price_denominator) ASC, product_id ASC",
	} {
		assert.Contains(t, stmt.SQL, frag)
	}

	assert.Equal(t, "female", stmt.Params["gender"])
	assert.Equal(t, 10.0, stmt.Params["minPrice"])
	assert.Equal(t, 50.0, stmt.Params["maxPrice"])
	assert.Equal(t, "%rose%", stmt.Params["q0"])
	assert.Equal(t, `%100\%%`, stmt.Params["q1"])
	assert.Equal(t, int64(40), stmt.Params["offset"])
	assert.Equal(t, 1, strings.Count(stmt.SQL, " WHERE "))
}

func TestBuildListStatement_SortKeys(t *testing.T) {
	cases := map[string]string{
		dto.SortByName:   "ORDER BY name DESC",
		dto.SortByRating: "ORDER BY rating DESC",
		"popularity":     "ORDER BY created_at DESC",
	}
	for by, want := range cases {
		stmt := buildListStatement(dto.ProductFilter{}, dto.ProductSort{By: by, Desc: true}, dto.PageRequest{Page: 1, Limit: 1})
		assert.Contains(t, stmt.SQL, want, by)
	}
}

func TestBuildCountStatement_SharesFilter(t *testing.T) {
	f := dto.ProductFilter{Brand: "Aqualis", Featured: true}
	stmt := buildCountStatement(f)

	assert.True(t, strings.HasPrefix(stmt.SQL, "SELECT COUNT(*) FROM products WHERE "))
	assert.Contains(t, stmt.SQL, "brand = @brand AND featured = TRUE")
	assert.NotContains(t, stmt.Params, "limit")
}
