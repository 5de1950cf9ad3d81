package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/storefront-service/internal/app/account/domain"
	"github.com/murkotick/storefront-service/internal/app/outbox"
	commitplan "github.com/murkotick/storefront-service/internal/pkg/committer"
)

type UserRepo interface {
	InsertMut(u *domain.User) *spanner.Mutation
}

type UserReader interface {
	EmailExists(ctx context.Context, email string) (bool, error)
}

type OutboxRepo interface {
	InsertMut(e *outbox.Event) *spanner.Mutation
}

type Committer interface {
	Apply(ctx context.Context, plan *commitplan.Plan) error
}
