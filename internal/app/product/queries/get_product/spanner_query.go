package get_product

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/murkotick/storefront-service/internal/app/product/domain"
	"github.com/murkotick/storefront-service/internal/app/product/dto"
	"github.com/murkotick/storefront-service/internal/models/m_product"
)

// SpannerGetProductQuery reads a single product row by primary key.
type SpannerGetProductQuery struct {
	Client *spanner.Client
}

func NewSpannerGetProductQuery(client *spanner.Client) *SpannerGetProductQuery {
	return &SpannerGetProductQuery{Client: client}
}

func (q *SpannerGetProductQuery) GetProduct(ctx context.Context, productID string) (*dto.ProductDTO, error) {
	row, err := q.Client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{productID}, m_product.Columns)
	if spanner.ErrCode(err) == codes.NotFound {
		return nil, fmt.Errorf("get product %s: %w", productID, domain.ErrProductNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", productID, err)
	}

	var r m_product.Row
	if err := row.ToStruct(&r); err != nil {
		return nil, fmt.Errorf("decode product %s: %w", productID, err)
	}
	return dto.FromRow(r), nil
}
