package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/spanner"
	"github.com/sirupsen/logrus"

	"github.com/murkotick/storefront-service/internal/app/outbox"
	"github.com/murkotick/storefront-service/internal/app/product/repo"
	"github.com/murkotick/storefront-service/internal/app/product/seed"
	"github.com/murkotick/storefront-service/internal/app/product/usecases/create_product"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	committer "github.com/murkotick/storefront-service/internal/pkg/committer"
	"github.com/murkotick/storefront-service/internal/pkg/config"
	"github.com/murkotick/storefront-service/internal/pkg/logger"
)

// Loads seed/catalog.yaml (or SEED_CATALOG_FILE) into the catalog through the
// same create-product path the API uses.
func main() {
	cfg, err := config.LoadSeed()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(logger.Options{Service: "storefront-seed", Level: cfg.LogLevel, Format: "text"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f, err := os.Open(cfg.CatalogFile)
	if err != nil {
		log.WithError(err).Fatal("open catalog")
	}
	reqs, err := seed.Parse(f)
	_ = f.Close()
	if err != nil {
		log.WithError(err).Fatal("parse catalog")
	}

	client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
	if err != nil {
		log.WithError(err).Fatal("spanner client")
	}
	defer client.Close()

	create := create_product.NewInteractor(repo.NewProductRepo(), outbox.NewRepo(), committer.NewAdapter(client), clock.RealClock{})
	n, err := seed.Run(ctx, create, reqs, log)
	if err != nil {
		log.WithError(err).WithField("created", n).Fatal("seed failed")
	}
	log.WithField("created", n).Info("catalog seeded")
}
