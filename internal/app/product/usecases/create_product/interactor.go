package create_product

import (
	"context"

	"github.com/google/uuid"

	contracts "github.com/murkotick/storefront-service/internal/app/product/contracts"
	"github.com/murkotick/storefront-service/internal/app/product/domain"
	shared "github.com/murkotick/storefront-service/internal/app/product/usecases/shared"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	commitplan "github.com/murkotick/storefront-service/internal/pkg/committer"
)

// Request is the application-level create-product request.
type Request struct {
	Details domain.ProductDetails
}

// Interactor implements the create-product usecase following the Golden Mutation pattern.
type Interactor struct {
	ProductRepo contracts.ProductRepo
	OutboxRepo  contracts.OutboxRepo
	Committer   contracts.Committer
	Clock       clock.Clock
}

func NewInteractor(prodRepo contracts.ProductRepo, outboxRepo contracts.OutboxRepo, committer contracts.Committer, clk clock.Clock) *Interactor {
	return &Interactor{
		ProductRepo: prodRepo,
		OutboxRepo:  outboxRepo,
		Committer:   committer,
		Clock:       clk,
	}
}

// Execute creates the product and its outbox events in a single commit
// and returns the new product id.
func (it *Interactor) Execute(ctx context.Context, req Request) (string, error) {
	now := it.Clock.Now()

	product, err := domain.NewProduct(uuid.New().String(), req.Details, now)
	if err != nil {
		return "", err
	}

	plan := commitplan.NewPlan("product.create")
	plan.Add(it.ProductRepo.InsertMut(product))

	events, err := shared.OutboxEvents(product.DomainEvents(), now)
	if err != nil {
		return "", err
	}
	for _, e := range events {
		plan.Add(it.OutboxRepo.InsertMut(e))
	}

	if err := it.Committer.Apply(ctx, plan); err != nil {
		return "", err
	}
	return product.ID(), nil
}
