package contracts

import (
	"context"

	commitplan "github.com/murkotick/storefront-service/internal/pkg/committer"
)

// Committer applies a plan of mutations atomically.
type Committer interface {
	Apply(ctx context.Context, plan *commitplan.Plan) error
}
