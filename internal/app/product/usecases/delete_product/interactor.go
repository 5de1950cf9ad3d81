package delete_product

import (
	"context"

	contracts "github.com/murkotick/storefront-service/internal/app/product/contracts"
	shared "github.com/murkotick/storefront-service/internal/app/product/usecases/shared"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	commitplan "github.com/murkotick/storefront-service/internal/pkg/committer"
)

// Interactor hard-deletes a product and records product.deleted.
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

// Execute returns domain.ErrProductNotFound when the product does not exist.
func (it *Interactor) Execute(ctx context.Context, productID string) error {
	now := it.Clock.Now()

	current, err := it.ReadModel.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	product := current.ToDomain()
	product.MarkDeleted(now)

	plan := commitplan.NewPlan("product.delete")
	plan.Add(it.ProductRepo.DeleteMut(product))

	events, err := shared.OutboxEvents(product.DomainEvents(), now)
	if err != nil {
		return err
	}
	for _, e := range events {
		plan.Add(it.OutboxRepo.InsertMut(e))
	}

	return it.Committer.Apply(ctx, plan)
}
