package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	accountrepo "github.com/murkotick/storefront-service/internal/app/account/repo"
	"github.com/murkotick/storefront-service/internal/app/account/usecases/register_user"
	orderrepo "github.com/murkotick/storefront-service/internal/app/order/repo"
	"github.com/murkotick/storefront-service/internal/app/order/usecases/get_order"
	"github.com/murkotick/storefront-service/internal/app/order/usecases/submit_order"
	"github.com/murkotick/storefront-service/internal/app/outbox"
	"github.com/murkotick/storefront-service/internal/app/outbox/relay"
	"github.com/murkotick/storefront-service/internal/app/product/queries"
	"github.com/murkotick/storefront-service/internal/app/product/queries/get_product"
	"github.com/murkotick/storefront-service/internal/app/product/queries/list_products"
	productrepo "github.com/murkotick/storefront-service/internal/app/product/repo"
	"github.com/murkotick/storefront-service/internal/app/product/usecases/create_product"
	"github.com/murkotick/storefront-service/internal/app/product/usecases/delete_product"
	"github.com/murkotick/storefront-service/internal/app/product/usecases/update_product"
	"github.com/murkotick/storefront-service/internal/pkg/auth"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	committer "github.com/murkotick/storefront-service/internal/pkg/committer"
	"github.com/murkotick/storefront-service/internal/pkg/config"
	"github.com/murkotick/storefront-service/internal/pkg/logger"
	"github.com/murkotick/storefront-service/internal/pkg/metrics"
	"github.com/murkotick/storefront-service/internal/pkg/tracing"
	"github.com/murkotick/storefront-service/internal/transport/rest"
	restaccount "github.com/murkotick/storefront-service/internal/transport/rest/account"
	"github.com/murkotick/storefront-service/internal/transport/rest/middleware"
	restorder "github.com/murkotick/storefront-service/internal/transport/rest/order"
	restproduct "github.com/murkotick/storefront-service/internal/transport/rest/product"
)

const serviceName = "storefront-service"

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(logger.Options{Service: serviceName, Env: cfg.AppEnv, Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg config.Server, log *logrus.Entry) error {
	shutdownTracing, err := tracing.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.WithError(err).Warn("tracing shutdown")
		}
	}()

	client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
	if err != nil {
		return err
	}
	defer client.Close()

	clk := clock.RealClock{}
	cm := committer.NewAdapter(client)
	outboxRepo := outbox.NewRepo()
	readModel := queries.NewSpannerReadModel(client)
	m := metrics.New()

	products := restproduct.NewHandler(
		restproduct.Commands{
			Create: create_product.NewInteractor(productrepo.NewProductRepo(), outboxRepo, cm, clk),
			Update: update_product.NewInteractor(productrepo.NewProductRepo(), outboxRepo, cm, readModel, clk),
			Delete: delete_product.NewInteractor(productrepo.NewProductRepo(), outboxRepo, cm, readModel, clk),
		},
		restproduct.Queries{
			Get:  get_product.NewHandler(readModel),
			List: list_products.NewHandler(readModel),
		},
		log,
	)

	orders := restorder.NewHandler(
		submit_order.NewInteractor(readModel, orderrepo.NewOrderRepo(), outboxRepo, cm, clk, log, cfg.OrderLookupConcurrency),
		get_order.NewHandler(orderrepo.NewSpannerOrderReader(client)),
		m,
		log,
	)

	accounts := restaccount.NewHandler(
		register_user.NewInteractor(accountrepo.NewSpannerUserReader(client), accountrepo.NewUserRepo(), outboxRepo, cm, clk),
		log,
	)

	router := rest.NewRouter(rest.Deps{
		Log:         log,
		Metrics:     m,
		Verifier:    auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer),
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, log),
		Products:    products,
		Orders:      orders,
		Accounts:    accounts,
		Ready:       spannerReady(client),
	})

	rl := relay.New(outbox.NewSpannerReader(client), cm, relay.LogPublisher{Log: log.WithField("component", "outbox")}, clk, log, cfg.OutboxBatchSize)
	rl.Metrics = m
	relayCron, err := rl.Start(ctx, cfg.OutboxSchedule)
	if err != nil {
		return err
	}
	defer func() { <-relayCron.Stop().Done() }()

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	grpcSrv := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return err
	}

	errCh := make(chan error, 2)
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("HTTP server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		log.WithField("addr", cfg.GRPCAddr).Info("gRPC health server listening")
		if err := grpcSrv.Serve(lis); err != nil {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case runErr = <-errCh:
	}

	healthSrv.Shutdown()
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(sctx); err != nil {
		log.WithError(err).Warn("http shutdown")
	}

	stopped := make(chan struct{})
	go func() {
		grpcSrv.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-sctx.Done():
		grpcSrv.Stop()
	}
	return runErr
}

func spannerReady(client *spanner.Client) rest.ReadyFunc {
	return func(ctx context.Context) error {
		iter := client.Single().Query(ctx, spanner.Statement{SQL: "SELECT 1"})
		defer iter.Stop()
		if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
			return err
		}
		return nil
	}
}
