package list_products

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/storefront-service/internal/app/product/dto"
	"github.com/murkotick/storefront-service/internal/models/m_product"
)

// SpannerListProductsQuery runs filtered, sorted, paginated catalog listings.
type SpannerListProductsQuery struct {
	Client *spanner.Client
}

func NewSpannerListProductsQuery(client *spanner.Client) *SpannerListProductsQuery {
	return &SpannerListProductsQuery{Client: client}
}

// ListProducts reads the page and the total match count from one
// read-only snapshot so both agree.
func (q *SpannerListProductsQuery) ListProducts(ctx context.Context, f dto.ProductFilter, s dto.ProductSort, page dto.PageRequest) (*dto.ProductPage, error) {
	tx := q.Client.ReadOnlyTransaction()
	defer tx.Close()

	out := &dto.ProductPage{Products: make([]*dto.ProductDTO, 0, page.Limit)}

	iter := tx.Query(ctx, buildListStatement(f, s, page))
	err := iter.Do(func(row *spanner.Row) error {
		var r m_product.Row
		if err := row.ToStruct(&r); err != nil {
			return err
		}
		out.Products = append(out.Products, dto.FromRow(r))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	countIter := tx.Query(ctx, buildCountStatement(f))
	defer countIter.Stop()
	row, err := countIter.Next()
	if err == iterator.Done {
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	if err := row.Columns(&out.TotalCount); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	return out, nil
}

// ListFacets returns the distinct brands and categories in the catalog.
func (q *SpannerListProductsQuery) ListFacets(ctx context.Context) (*dto.Facets, error) {
	tx := q.Client.ReadOnlyTransaction()
	defer tx.Close()

	brands, err := distinct(ctx, tx, m_product.ColBrand)
	if err != nil {
		return nil, err
	}
	categories, err := distinct(ctx, tx, m_product.ColCategory)
	if err != nil {
		return nil, err
	}
	return &dto.Facets{Brands: brands, Categories: categories}, nil
}

func distinct(ctx context.Context, tx *spanner.ReadOnlyTransaction, col string) ([]string, error) {
	stmt := spanner.Statement{
		SQL: fmt.Sprintf("SELECT DISTINCT %[1]s FROM %[2]s ORDER BY %[1]s", col, m_product.TableName),
	}
	out := []string{}
	err := tx.Query(ctx, stmt).Do(func(row *spanner.Row) error {
		var v string
		if err := row.Columns(&v); err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", col, err)
	}
	return out, nil
}
