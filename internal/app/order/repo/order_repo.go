package repo

import (
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/storefront-service/internal/app/order/domain"
	"github.com/murkotick/storefront-service/internal/models/m_order"
	"github.com/murkotick/storefront-service/internal/models/m_order_item"
)

// OrderRepo builds the mutations that persist an order and its items.
type OrderRepo struct{}

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{}
}

// InsertMuts returns the orders row followed by one order_items row per line.
func (r *OrderRepo) InsertMuts(o *domain.Order) ([]*spanner.Mutation, error) {
	if o == nil {
		return nil, nil
	}
	row, err := toRow(o)
	if err != nil {
		return nil, err
	}

	muts := make([]*spanner.Mutation, 0, 1+len(o.Items()))
	muts = append(muts, m_order.InsertMutation(row))
	for _, it := range toItemRows(o) {
		muts = append(muts, m_order_item.InsertMutation(it))
	}
	return muts, nil
}

func toRow(o *domain.Order) (m_order.Row, error) {
	shipping, err := json.Marshal(o.ShippingAddress())
	if err != nil {
		return m_order.Row{}, fmt.Errorf("encode shipping address: %w", err)
	}
	billing, err := json.Marshal(o.BillingAddress())
	if err != nil {
		return m_order.Row{}, fmt.Errorf("encode billing address: %w", err)
	}

	t := o.Totals()
	return m_order.Row{
		OrderID:                 o.ID(),
		UserID:                  o.UserID(),
		Status:                  string(o.Status()),
		ShippingAddress:         string(shipping),
		BillingAddress:          string(billing),
		PaymentMethod:           string(o.PaymentMethod()),
		PaymentStatus:           string(o.PaymentStatus()),
		SubtotalNumerator:       t.Subtotal.Numerator(),
		SubtotalDenominator:     t.Subtotal.Denominator(),
		ShippingCostNumerator:   t.ShippingCost.Numerator(),
		ShippingCostDenominator: t.ShippingCost.Denominator(),
		TaxNumerator:            t.Tax.Numerator(),
		TaxDenominator:          t.Tax.Denominator(),
		TotalNumerator:          t.Total.Numerator(),
		TotalDenominator:        t.Total.Denominator(),
		Notes:                   o.Notes(),
		CreatedAt:               o.CreatedAt().UTC(),
		UpdatedAt:               o.UpdatedAt().UTC(),
	}, nil
}

func toItemRows(o *domain.Order) []m_order_item.Row {
	items := o.Items()
	out := make([]m_order_item.Row, 0, len(items))
	for i, it := range items {
		out = append(out, m_order_item.Row{
			OrderID:              o.ID(),
			LineNo:               int64(i + 1),
			ProductID:            it.ProductID,
			ProductName:          it.ProductName,
			ProductImage:         it.ProductImage,
			Brand:                it.Brand,
			Size:                 it.Size,
			Quantity:             it.Quantity,
			UnitPriceNumerator:   it.UnitPrice.Numerator(),
			UnitPriceDenominator: it.UnitPrice.Denominator(),
		})
	}
	return out
}
