package submit_order

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	contracts "github.com/murkotick/storefront-service/internal/app/order/contracts"
	"github.com/murkotick/storefront-service/internal/app/order/domain"
	"github.com/murkotick/storefront-service/internal/app/outbox"
	pdomain "github.com/murkotick/storefront-service/internal/app/product/domain"
	"github.com/murkotick/storefront-service/internal/app/product/dto"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	commitplan "github.com/murkotick/storefront-service/internal/pkg/committer"
)

const defaultConcurrency = 8

type LineRequest struct {
	ProductID string
	Size      string
	Quantity  int64
}

// Request is an order as submitted by a shopper. ClientTotal is what the
// client displayed; it is compared against the server total and otherwise ignored.
type Request struct {
	UserID          string
	Items           []LineRequest
	ShippingAddress domain.Address
	BillingAddress  *domain.Address
	PaymentMethod   string
	Notes           string
	ClientTotal     *float64
}

type Interactor struct {
	Catalog     contracts.CatalogReader
	OrderRepo   contracts.OrderRepo
	OutboxRepo  contracts.OutboxRepo
	Committer   contracts.Committer
	Clock       clock.Clock
	Log         logrus.FieldLogger
	Concurrency int
}

func NewInteractor(
	catalog contracts.CatalogReader,
	orderRepo contracts.OrderRepo,
	outboxRepo contracts.OutboxRepo,
	committer contracts.Committer,
	clk clock.Clock,
	log logrus.FieldLogger,
	concurrency int,
) *Interactor {
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	return &Interactor{
		Catalog:     catalog,
		OrderRepo:   orderRepo,
		OutboxRepo:  outboxRepo,
		Committer:   committer,
		Clock:       clk,
		Log:         log,
		Concurrency: concurrency,
	}
}

// Execute prices the request against the catalog and commits the order
// together with its order.placed outbox event.
func (it *Interactor) Execute(ctx context.Context, req Request) (*domain.Order, error) {
	params := domain.PlaceOrderParams{
		UserID:          req.UserID,
		Items:           toItems(req.Items),
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		PaymentMethod:   domain.PaymentMethod(req.PaymentMethod),
		Notes:           req.Notes,
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	lines := mergeLines(req.Items)
	products, err := it.lookup(ctx, lines)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(lines))
	for _, l := range lines {
		item, err := priceLine(l, products[l.ProductID])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	now := it.Clock.Now()
	params.ID = uuid.New().String()
	params.Items = items
	order, err := domain.PlaceOrder(params, now)
	if err != nil {
		return nil, err
	}

	if req.ClientTotal != nil {
		client := pdomain.NewMoneyFromFloat(*req.ClientTotal)
		if !client.Equals(order.Totals().Total) {
			it.Log.WithFields(logrus.Fields{
				"order_id":     order.ID(),
				"client_total": client.String(),
				"server_total": order.Totals().Total.String(),
			}).Warn("client total differs from server total")
		}
	}

	plan := commitplan.NewPlan("order.submit")
	muts, err := it.OrderRepo.InsertMuts(order)
	if err != nil {
		return nil, err
	}
	plan.AddAll(muts)

	for _, ev := range order.DomainEvents() {
		payload, err := marshalEvent(ev)
		if err != nil {
			return nil, err
		}
		plan.Add(it.OutboxRepo.InsertMut(outbox.NewEvent(ev.EventType(), ev.AggregateID(), payload, now)))
	}

	if err := it.Committer.Apply(ctx, plan); err != nil {
		return nil, err
	}
	return order, nil
}

// lookup fetches every distinct product once, at most Concurrency at a time.
func (it *Interactor) lookup(ctx context.Context, lines []LineRequest) (map[string]*dto.ProductDTO, error) {
	var ids []string
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if !seen[l.ProductID] {
			seen[l.ProductID] = true
			ids = append(ids, l.ProductID)
		}
	}

	found := make([]*dto.ProductDTO, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(it.Concurrency)
	for i, id := range ids {
		g.Go(func() error {
			p, err := it.Catalog.GetProduct(gctx, id)
			if err != nil {
				return fmt.Errorf("product %s: %w", id, err)
			}
			found[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]*dto.ProductDTO, len(ids))
	for i, id := range ids {
		out[id] = found[i]
	}
	return out, nil
}

func priceLine(l LineRequest, p *dto.ProductDTO) (domain.Item, error) {
	var size *dto.SizeDTO
	for i := range p.Sizes {
		if strings.EqualFold(p.Sizes[i].Size, l.Size) {
			size = &p.Sizes[i]
			break
		}
	}
	if size == nil {
		return domain.Item{}, fmt.Errorf("%s in size %s: %w", p.Name, l.Size, domain.ErrSizeUnavailable)
	}
	if size.Stock < l.Quantity {
		return domain.Item{}, fmt.Errorf("%s in size %s: %d requested, %d left: %w",
			p.Name, size.Size, l.Quantity, size.Stock, domain.ErrInsufficientStock)
	}

	var image string
	if len(p.Images) > 0 {
		image = p.Images[0]
	}
	return domain.Item{
		ProductID:    p.ProductID,
		ProductName:  p.Name,
		ProductImage: image,
		Brand:        p.Brand,
		Size:         size.Size,
		Quantity:     l.Quantity,
		UnitPrice:    p.EffectivePrice(),
	}, nil
}

// mergeLines folds lines sharing a product and size (case-insensitive), keeping first-seen order.
func mergeLines(lines []LineRequest) []LineRequest {
	out := make([]LineRequest, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, l := range lines {
		l.ProductID = strings.TrimSpace(l.ProductID)
		l.Size = strings.TrimSpace(l.Size)
		key := l.ProductID + "\x00" + strings.ToLower(l.Size)
		if i, ok := index[key]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		index[key] = len(out)
		out = append(out, l)
	}
	return out
}

func toItems(lines []LineRequest) []domain.Item {
	items := make([]domain.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.Item{
			ProductID: strings.TrimSpace(l.ProductID),
			Size:      strings.TrimSpace(l.Size),
			Quantity:  l.Quantity,
		})
	}
	return items
}

func marshalEvent(ev domain.DomainEvent) (string, error) {
	e, ok := ev.(*domain.OrderPlacedEvent)
	if !ok {
		return "", fmt.Errorf("unexpected order event %T", ev)
	}
	b, err := json.Marshal(map[string]interface{}{
		"order_id":   e.OrderID,
		"user_id":    e.UserID,
		"item_count": e.ItemCount,
		"total": map[string]int64{
			"numerator":   e.Total.Numerator(),
			"denominator": e.Total.Denominator(),
		},
		"placed_at": e.PlacedAt,
	})
	if err != nil {
		return "", fmt.Errorf("marshal outbox payload for %s: %w", ev.EventType(), err)
	}
	return string(b), nil
}
