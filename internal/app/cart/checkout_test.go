package cart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-service/internal/app/cart"
	"github.com/murkotick/storefront-service/internal/app/cart/storage/memory"
)

type fakeSubmitter struct {
	got   []cart.OrderSnapshot
	reply cart.Confirmation
	err   error
}

func (f *fakeSubmitter) Submit(_ context.Context, snap cart.OrderSnapshot) (cart.Confirmation, error) {
	f.got = append(f.got, snap)
	return f.reply, f.err
}

var details = cart.CheckoutDetails{
	ShippingAddress: cart.Address{FullName: "Ada Lovelace", Street: "1 Main St", City: "London", PostalCode: "N1"},
	PaymentMethod:   "credit_card",
}

func TestCheckout_EmptyCartDoesNotSubmit(t *testing.T) {
	sub := &fakeSubmitter{}
	l := open(t, memory.New())

	_, err := l.Checkout(context.Background(), sub, details)
	require.ErrorIs(t, err, cart.ErrEmptyCart)
	assert.Empty(t, sub.got)
}

func TestCheckout_AcceptedClearsLedger(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	l := open(t, store)
	require.NoError(t, l.Add(ctx, item("p1", "M", 25, 2)))

	sub := &fakeSubmitter{reply: cart.Confirmation{OrderID: "o-1", Status: "pending"}}
	conf, err := l.Checkout(ctx, sub, details)
	require.NoError(t, err)
	assert.Equal(t, "o-1", conf.OrderID)

	require.Len(t, sub.got, 1)
	snap := sub.got[0]
	assert.Len(t, snap.Items, 1)
	assert.InDelta(t, 62.49, snap.Total, 1e-9)
	assert.Equal(t, "Ada Lovelace", snap.ShippingAddress.FullName)

	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 0, open(t, store).Len())
}

func TestCheckout_RejectedLeavesLedgerUntouched(t *testing.T) {
	ctx := context.Background()
	l := open(t, memory.New())
	require.NoError(t, l.Add(ctx, item("p1", "M", 25, 2)))
	before := l.Items()

	rejection := errors.New("insufficient stock")
	_, err := l.Checkout(ctx, &fakeSubmitter{err: rejection}, details)
	require.ErrorIs(t, err, rejection)

	assert.Equal(t, before, l.Items())
}

func TestSnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	l := open(t, memory.New())
	require.NoError(t, l.Add(ctx, item("p1", "M", 25, 2)))

	snap := l.Snapshot(details)
	snap.Items[0].Quantity = 99

	assert.Equal(t, 2, l.Items()[0].Quantity)
}
