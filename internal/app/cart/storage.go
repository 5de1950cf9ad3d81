package cart

import "context"

// StorageKey is the fixed key the ledger is persisted under.
const StorageKey = "cart"

// Store is durable key/value storage for the serialized ledger.
type Store interface {
	// Load returns the stored bytes and whether the key exists.
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, data []byte) error
}
