package product

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/murkotick/storefront-service/internal/app/product/dto"
	"github.com/murkotick/storefront-service/internal/app/product/queries/list_products"
	"github.com/murkotick/storefront-service/internal/transport/rest/httpx"
)

// parseListQuery reads the listing query string. Unknown sort keys fall back
// to newest first; malformed numbers are rejected.
func parseListQuery(v url.Values) (list_products.Query, error) {
	var (
		q    list_products.Query
		bad  []httpx.FieldError
		trim = func(k string) string { return strings.TrimSpace(v.Get(k)) }
	)

	intParam := func(key string, upper int) int {
		s := trim(key)
		if s == "" {
			return 0
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			bad = append(bad, httpx.FieldError{Field: key, Description: "must be a positive integer"})
			return 0
		}
		if upper > 0 && n > upper {
			bad = append(bad, httpx.FieldError{Field: key, Description: "must be at most " + strconv.Itoa(upper)})
			return 0
		}
		return n
	}
	priceParam := func(key string) *float64 {
		s := trim(key)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < 0 {
			bad = append(bad, httpx.FieldError{Field: key, Description: "must be a non-negative number"})
			return nil
		}
		return &f
	}
	flag := func(key string) bool {
		b, err := strconv.ParseBool(trim(key))
		return err == nil && b
	}

	q.Filter = dto.ProductFilter{
		Gender:   strings.ToLower(trim("gender")),
		Category: trim("category"),
		Brand:    trim("brand"),
		MinPrice: priceParam("minPrice"),
		MaxPrice: priceParam("maxPrice"),
		Search:   trim("search"),
		Featured: flag("featured"),
		IsNew:    flag("isNew"),
	}
	q.Sort = dto.ProductSort{
		By:   trim("sortBy"),
		Desc: !strings.EqualFold(trim("sortOrder"), "asc"),
	}
	q.Page = intParam("page", list_products.MaxPage)
	q.Limit = intParam("limit", 0)

	if len(bad) > 0 {
		return list_products.Query{}, httpx.InvalidArgument("invalid query parameters", bad...)
	}
	return q.Normalize(), nil
}
