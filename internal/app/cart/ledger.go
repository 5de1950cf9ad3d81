// Package cart is the client-held shopping cart ledger.
//
// A Ledger is owned by a single browsing session and is not safe for
// concurrent use. Every effective mutation writes the whole ledger to the
// Store synchronously.
package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/murkotick/storefront-service/internal/app/pricing"
)

// Ledger is the ordered list of cart lines, unique by product id and size.
type Ledger struct {
	store      Store
	log        logrus.FieldLogger
	calculator pricing.Calculator
	items      []LineItem
}

// Option configures Open.
type Option func(*Ledger)

// WithLogger replaces the standard logrus logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(lg *Ledger) { lg.log = l }
}

// WithCalculator replaces pricing.Default.
func WithCalculator(c pricing.Calculator) Option {
	return func(lg *Ledger) { lg.calculator = c }
}

// Open rehydrates the ledger from store. It never fails: missing data gives
// an empty ledger, and unreadable or corrupt data is logged and discarded.
func Open(ctx context.Context, store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:      store,
		log:        logrus.StandardLogger(),
		calculator: pricing.Default,
	}
	for _, o := range opts {
		o(l)
	}

	raw, ok, err := store.Load(ctx, StorageKey)
	if err != nil {
		l.log.WithError(err).Warn("cart: load failed, starting empty")
		return l
	}
	if !ok || len(raw) == 0 {
		return l
	}

	items, err := decode(raw)
	if err != nil {
		l.log.WithError(err).Warn("cart: stored data is corrupt, starting empty")
		return l
	}
	l.items = items
	return l
}

// decode parses the stored array and checks every line invariant.
func decode(raw []byte) ([]LineItem, error) {
	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	seen := make(map[Key]bool, len(items))
	for i, it := range items {
		if err := it.validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		if seen[it.Key()] {
			return nil, fmt.Errorf("line %d: duplicate %s/%s", i, it.ProductID, it.Size)
		}
		seen[it.Key()] = true
	}
	return items, nil
}

// Add merges item into the line with the same product id and size, or
// appends it as a new line.
func (l *Ledger) Add(ctx context.Context, item LineItem) error {
	if err := item.validate(); err != nil {
		return err
	}
	if i := l.indexOf(item.Key()); i >= 0 {
		l.items[i].Quantity += item.Quantity
	} else {
		l.items = append(l.items, item)
	}
	return l.persist(ctx)
}

// Remove deletes the line if present. Removing an absent line is a no-op.
func (l *Ledger) Remove(ctx context.Context, productID, size string) error {
	i := l.indexOf(Key{ProductID: productID, Size: size})
	if i < 0 {
		return nil
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return l.persist(ctx)
}

// UpdateQuantity sets the quantity of an existing line. Quantities below one
// and absent lines are ignored.
func (l *Ledger) UpdateQuantity(ctx context.Context, productID, size string, quantity int) error {
	if quantity < 1 {
		return nil
	}
	i := l.indexOf(Key{ProductID: productID, Size: size})
	if i < 0 {
		return nil
	}
	if l.items[i].Quantity == quantity {
		return nil
	}
	l.items[i].Quantity = quantity
	return l.persist(ctx)
}

// Clear empties the ledger.
func (l *Ledger) Clear(ctx context.Context) error {
	l.items = nil
	return l.persist(ctx)
}

// TotalItems is the sum of line quantities.
func (l *Ledger) TotalItems() int {
	n := 0
	for _, it := range l.items {
		n += it.Quantity
	}
	return n
}

// Subtotal is the sum of line totals before shipping and tax.
func (l *Ledger) Subtotal() float64 {
	var sum float64
	for _, it := range l.items {
		sum += it.LineTotal()
	}
	return sum
}

// Items returns a copy of the lines in insertion order.
func (l *Ledger) Items() []LineItem {
	return append([]LineItem(nil), l.items...)
}

// Len is the number of distinct lines.
func (l *Ledger) Len() int {
	return len(l.items)
}

// Pricing runs the calculator over Subtotal.
func (l *Ledger) Pricing() pricing.Result {
	return l.calculator.Calculate(l.Subtotal())
}

func (l *Ledger) indexOf(k Key) int {
	for i, it := range l.items {
		if it.Key() == k {
			return i
		}
	}
	return -1
}

// persist writes the whole ledger. On failure the in-memory state is kept;
// the next successful write stores it in full.
func (l *Ledger) persist(ctx context.Context) error {
	items := l.items
	if items == nil {
		items = []LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cart: encode: %w", err)
	}
	if err := l.store.Save(ctx, StorageKey, raw); err != nil {
		l.log.WithError(err).Error("cart: save failed")
		return fmt.Errorf("cart: save: %w", err)
	}
	return nil
}
