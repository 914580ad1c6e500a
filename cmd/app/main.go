package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mmoldabe-dev/ListingSubscriptions/internal/clock"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/config"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/handler"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/metrics"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/payment"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/repository"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/service"
	"github.com/mmoldabe-dev/ListingSubscriptions/internal/storage/postgres"
	"github.com/mmoldabe-dev/ListingSubscriptions/pkg/logger"
)

//@title Listing Subscriptions
//@version 1.0
//@description Paid visibility subscriptions for rental listings

// host@ localhost:8080
// basePath /
func main() {
	// грузим конфиг
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("cant load config: %s", err)
		os.Exit(1)
	}

	log := logger.SetupLoggerWithFormat(cfg.Logger.Level, cfg.Logger.Format, "listing_subscriptions")

	// запускаем миграции перед стартом
	if cfg.Database.MigrationsEnabled {
		if err := postgres.RunMigrations(cfg, log); err != nil {
			log.Error("migration failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
	}

	db, err := postgres.NewPostgres(cfg, log)
	if err != nil {
		log.Error("db init error")
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Checkout.StripeSecretKey == "" {
		log.Warn("STRIPE_SECRET_KEY is empty, checkout sessions will fail")
	}

	// собираем слои
	clk := clock.SystemClock{}
	m := metrics.New()
	gateway := payment.NewStripeGateway(
		cfg.Checkout.StripeSecretKey,
		cfg.Checkout.StripeWebhookSecret,
		cfg.Checkout.SuccessURL,
		cfg.Checkout.CancelURL,
		cfg.Checkout.Currency,
	)
	repo := repository.NewSubscriptionRepository(db, log)
	resolver := service.NewStatusResolver(repo, clk, log)
	checkout := service.NewCheckoutService(repo, gateway, clk, log)
	h := handler.NewHandlerSubscription(resolver, checkout, gateway, m, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      h.SetupRouter(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("server starting...", slog.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen error", slog.String("err", err.Error()))
		}
	}()

	// ждем сигнал на выход
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}
