package list_products

import (
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/storefront-service/internal/app/product/dto"
	"github.com/murkotick/storefront-service/internal/models/m_product"
)

const priceExpr = "(price_numerator / price_denominator)"

var sortColumns = map[string]string{
	dto.SortByCreatedAt: "created_at",
	dto.SortByPrice:     priceExpr,
	dto.SortByName:      "name",
	dto.SortByRating:    "rating",
}

// whereClause renders the filter as a WHERE clause (or "") and fills params.
func whereClause(f dto.ProductFilter, params map[string]interface{}) string {
	var conds []string

	if f.Gender != "" {
		conds = append(conds, "gender = @gender")
		params["gender"] = strings.ToLower(f.Gender)
	}
	if f.Category != "" {
		conds = append(conds, "category = @category")
		params["category"] = f.Category
	}
	if f.Brand != "" {
		conds = append(conds, "brand = @brand")
		params["brand"] = f.Brand
	}
	if f.MinPrice != nil {
		conds = append(conds, priceExpr+" >= @minPrice")
		params["minPrice"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		conds = append(conds, priceExpr+" <= @maxPrice")
		params["maxPrice"] = *f.MaxPrice
	}
	if f.Featured {
		conds = append(conds, "featured = TRUE")
	}
	if f.IsNew {
		conds = append(conds, "is_new = TRUE")
	}

	if words := strings.Fields(strings.ToLower(f.Search)); len(words) > 0 {
		ors := make([]string, 0, len(words))
		for i, w := range words {
			p := fmt.Sprintf("q%d", i)
			params[p] = "%" + escapeLike(w) + "%"
			ors = append(ors, fmt.Sprintf(
				"LOWER(name) LIKE @%[1]s OR LOWER(brand) LIKE @%[1]s OR LOWER(description) LIKE @%[1]s", p))
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

// buildListStatement selects one page of products. Ties on the sort key are
// broken by product_id so paging is stable.
func buildListStatement(f dto.ProductFilter, s dto.ProductSort, page dto.PageRequest) spanner.Statement {
	params := map[string]interface{}{}
	where := whereClause(f, params)

	col, ok := sortColumns[s.By]
	if !ok {
		col = sortColumns[dto.SortByCreatedAt]
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}

	params["limit"] = int64(page.Limit)
	params["offset"] = int64(page.Offset())

	sql := "SELECT " + strings.Join(m_product.Columns, ", ") +
		" FROM " + m_product.TableName + where +
		fmt.Sprintf(" ORDER BY %s %s, product_id %s", col, dir, dir) +
		" LIMIT @limit OFFSET @offset"
	return spanner.Statement{SQL: sql, Params: params}
}

func buildCountStatement(f dto.ProductFilter) spanner.Statement {
	params := map[string]interface{}{}
	where := whereClause(f, params)
	return spanner.Statement{
		SQL:    "SELECT COUNT(*) FROM " + m_product.TableName + where,
		Params: params,
	}
}

// escapeLike neutralises LIKE wildcards in user input.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
