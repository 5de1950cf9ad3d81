package main

import (
	"context"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	"github.com/sirupsen/logrus"

	"github.com/murkotick/storefront-service/internal/pkg/config"
	"github.com/murkotick/storefront-service/internal/pkg/logger"
	"github.com/murkotick/storefront-service/migrations"
)

// Applies the embedded DDL to a Cloud Spanner database, usually the emulator:
//
//	SPANNER_EMULATOR_HOST=localhost:9010 \
//	SPANNER_DATABASE=projects/test-project/instances/emulator-instance/databases/test-db \
//	go run ./cmd/migrate
func main() {
	cfg, err := config.LoadMigrate()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(logger.Options{Service: "storefront-migrate", Level: cfg.LogLevel, Format: "text"})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	stmts, err := migrations.Statements()
	if err != nil {
		log.WithError(err).Fatal("read DDL")
	}
	if len(stmts) == 0 {
		log.Fatal("no DDL statements found")
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		log.WithError(err).Fatal("database admin client")
	}
	defer admin.Close()

	op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   cfg.SpannerDatabase,
		Statements: stmts,
	})
	if err != nil {
		log.WithError(err).Fatal("update database DDL")
	}
	if err := op.Wait(ctx); err != nil {
		log.WithError(err).Fatal("wait for DDL")
	}

	log.WithFields(logrus.Fields{"statements": len(stmts), "database": cfg.SpannerDatabase}).Info("schema applied")
}
