package update_product

import (
	"context"

	contracts "github.com/murkotick/storefront-service/internal/app/product/contracts"
	"github.com/murkotick/storefront-service/internal/app/product/domain"
	shared "github.com/murkotick/storefront-service/internal/app/product/usecases/shared"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	commitplan "github.com/murkotick/storefront-service/internal/pkg/committer"
)

// Request is a partial update; nil patch fields are left as they are.
type Request struct {
	ProductID string
	Patch     domain.ProductPatch
}

// Interactor applies partial updates using the Golden Mutation Pattern.
type Interactor struct {
	ProductRepo contracts.ProductRepo
	OutboxRepo  contracts.OutboxRepo
	Committer   contracts.Committer
	ReadModel   contracts.ReadModel
	Clock       clock.Clock
}

func NewInteractor(repo contracts.ProductRepo, outboxRepo contracts.OutboxRepo, committer contracts.Committer, readModel contracts.ReadModel, clk clock.Clock) *Interactor {
	return &Interactor{
		ProductRepo: repo,
		OutboxRepo:  outboxRepo,
		Committer:   committer,
		ReadModel:   readModel,
		Clock:       clk,
	}
}

func (it *Interactor) Execute(ctx context.Context, req Request) error {
	now := it.Clock.Now()

	current, err := it.ReadModel.GetProduct(ctx, req.ProductID)
	if err != nil {
		return err
	}
	product := current.ToDomain()

	if err := product.Update(req.Patch, now); err != nil {
		return err
	}

	plan := commitplan.NewPlan("product.update")
	plan.Add(it.ProductRepo.UpdateMut(product))

	events, err := shared.OutboxEvents(product.DomainEvents(), now)
	if err != nil {
		return err
	}
	for _, e := range events {
		plan.Add(it.OutboxRepo.InsertMut(e))
	}

	return it.Committer.Apply(ctx, plan)
}
