package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
)

var ErrNoClient = errors.New("committer: spanner client is nil")

// Adapter applies plans against one Spanner database.
type Adapter struct {
	client *spanner.Client
}

func NewAdapter(client *spanner.Client) *Adapter {
	return &Adapter{client: client}
}

// Apply buffers every mutation of plan and commits them together. An empty
// plan is a no-op and never opens a transaction.
func (a *Adapter) Apply(ctx context.Context, plan *Plan) error {
	if plan == nil || plan.IsEmpty() {
		return nil
	}
	if a.client == nil {
		return ErrNoClient
	}

	opts := spanner.TransactionOptions{TransactionTag: plan.Tag()}
	_, err := a.client.ReadWriteTransactionWithOptions(ctx, func(_ context.Context, tx *spanner.ReadWriteTransaction) error {
		return tx.BufferWrite(plan.Mutations())
	}, opts)
	if err != nil {
		return fmt.Errorf("commit %s (%d mutations): %w", plan.Tag(), plan.Len(), err)
	}
	return nil
}
