package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/murkotick/storefront-service/internal/app/order/domain"
	pdomain "github.com/murkotick/storefront-service/internal/app/product/domain"
	"github.com/murkotick/storefront-service/internal/models/m_order"
	"github.com/murkotick/storefront-service/internal/models/m_order_item"
)

// SpannerOrderReader loads orders with their items from one snapshot.
type SpannerOrderReader struct {
	Client *spanner.Client
}

func NewSpannerOrderReader(client *spanner.Client) *SpannerOrderReader {
	return &SpannerOrderReader{Client: client}
}

// GetOrder returns domain.ErrOrderNotFound for an unknown id.
func (r *SpannerOrderReader) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	tx := r.Client.ReadOnlyTransaction()
	defer tx.Close()

	row, err := tx.ReadRow(ctx, m_order.TableName, spanner.Key{orderID}, m_order.Columns)
	if spanner.ErrCode(err) == codes.NotFound {
		return nil, fmt.Errorf("get order %s: %w", orderID, domain.ErrOrderNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	var or m_order.Row
	if err := row.ToStruct(&or); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", orderID, err)
	}

	var items []m_order_item.Row
	err = tx.Read(ctx, m_order_item.TableName, spanner.Key{orderID}.AsPrefix(), m_order_item.Columns).
		Do(func(row *spanner.Row) error {
			var it m_order_item.Row
			if err := row.ToStruct(&it); err != nil {
				return err
			}
			items = append(items, it)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("get order %s items: %w", orderID, err)
	}

	return fromRows(or, items)
}

func fromRows(or m_order.Row, itemRows []m_order_item.Row) (*domain.Order, error) {
	var shipping, billing domain.Address
	if err := json.Unmarshal([]byte(or.ShippingAddress), &shipping); err != nil {
		return nil, fmt.Errorf("decode shipping address: %w", err)
	}
	if err := json.Unmarshal([]byte(or.BillingAddress), &billing); err != nil {
		return nil, fmt.Errorf("decode billing address: %w", err)
	}

	items := make([]domain.Item, 0, len(itemRows))
	for _, it := range itemRows {
		items = append(items, domain.Item{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			ProductImage: it.ProductImage,
			Brand:        it.Brand,
			Size:         it.Size,
			Quantity:     it.Quantity,
			UnitPrice:    pdomain.NewMoney(it.UnitPriceNumerator, it.UnitPriceDenominator),
		})
	}

	return domain.ReconstructOrder(
		or.OrderID,
		or.UserID,
		items,
		domain.Status(or.Status),
		shipping,
		billing,
		domain.PaymentMethod(or.PaymentMethod),
		domain.PaymentStatus(or.PaymentStatus),
		domain.Totals{
			Subtotal:     pdomain.NewMoney(or.SubtotalNumerator, or.SubtotalDenominator),
			ShippingCost: pdomain.NewMoney(or.ShippingCostNumerator, or.ShippingCostDenominator),
			Tax:          pdomain.NewMoney(or.TaxNumerator, or.TaxDenominator),
			Total:        pdomain.NewMoney(or.TotalNumerator, or.TotalDenominator),
		},
		or.Notes,
		or.CreatedAt.UTC(),
		or.UpdatedAt.UTC(),
	), nil
}
