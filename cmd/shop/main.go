package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/murkotick/storefront-service/internal/app/cart"
	"github.com/murkotick/storefront-service/internal/app/cart/storage/sqlite"
	"github.com/murkotick/storefront-service/internal/client/storefront"
	"github.com/murkotick/storefront-service/internal/pkg/config"
	"github.com/murkotick/storefront-service/internal/pkg/logger"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(logger.Options{Service: "shop", Level: cfg.LogLevel, Format: "text", Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.Open(cfg.CartPath)
	if err != nil {
		log.WithError(err).Fatal("open cart storage")
	}

	a := &app{
		ledger: cart.Open(ctx, store, cart.WithLogger(log)),
		api:    storefront.New(cfg.APIURL, cfg.RequestTimeout, storefront.WithToken(cfg.Token), storefront.WithLogger(log)),
		out:    os.Stdout,
	}
	err = a.run(ctx, os.Args[1:])
	_ = store.Close()
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, "shop:", err)
		os.Exit(1)
	}
}
