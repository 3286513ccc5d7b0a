package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/farmstayhq/farmstay-backend/api/routes"
	"github.com/farmstayhq/farmstay-backend/internal/analytics"
	"github.com/farmstayhq/farmstay-backend/internal/billing"
	"github.com/farmstayhq/farmstay-backend/internal/contact"
	"github.com/farmstayhq/farmstay-backend/internal/events"
	"github.com/farmstayhq/farmstay-backend/internal/payments"
	"github.com/farmstayhq/farmstay-backend/internal/properties"
	"github.com/farmstayhq/farmstay-backend/pkg/calendar"
	"github.com/farmstayhq/farmstay-backend/pkg/config"
	"github.com/farmstayhq/farmstay-backend/pkg/db"
	"github.com/farmstayhq/farmstay-backend/pkg/logger"
	"github.com/farmstayhq/farmstay-backend/pkg/migrate"
	"github.com/farmstayhq/farmstay-backend/pkg/pubsub"
	"github.com/farmstayhq/farmstay-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	cal, err := calendar.New(cfg.Analytics.Timezone)
	if err != nil {
		logg.Error(context.Background(), "failed to load analytics timezone", err)
		os.Exit(1)
	}

	propertiesRepo := properties.NewRepository(dbClient.DB())

	billingService, err := billing.NewService(billing.ServiceParams{
		Repo:    billing.NewRepository(dbClient.DB()),
		Logger:  logg,
		Billing: cfg.Billing,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create billing service", err)
		os.Exit(1)
	}

	eventsService, err := events.NewService(events.ServiceParams{
		Repo:     events.NewRepository(dbClient.DB()),
		DB:       dbClient,
		Logger:   logg,
		Calendar: cal,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create events service", err)
		os.Exit(1)
	}

	var publisher *pubsub.Client
	if cfg.GCP.ProjectID != "" {
		publisher, err = pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create pubsub client", err)
			os.Exit(1)
		}
		defer publisher.Close()
	}

	contactParams := contact.ServiceParams{
		Properties: propertiesRepo,
		Ledger:     billingService,
		Events:     eventsService,
		Logger:     logg,
	}
	if publisher != nil {
		contactParams.Publisher = publisher
	}
	contactService, err := contact.NewService(contactParams)
	if err != nil {
		logg.Error(context.Background(), "failed to create contact service", err)
		os.Exit(1)
	}

	paymentsService, err := payments.NewService(payments.ServiceParams{
		Repo:       payments.NewRepository(dbClient.DB()),
		Properties: propertiesRepo,
		Ledger:     billingService,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	analyticsRepo := analytics.NewRepository(dbClient.DB())
	ownerService, err := analytics.NewOwnerService(analytics.OwnerServiceParams{
		Repo:       analyticsRepo,
		Properties: propertiesRepo,
		Logger:     logg,
		Calendar:   cal,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create owner analytics service", err)
		os.Exit(1)
	}

	adminService, err := analytics.NewAdminService(analytics.AdminServiceParams{
		Repo:       analyticsRepo,
		Properties: propertiesRepo,
		Logger:     logg,
		Calendar:   cal,
		LeadCost:   cfg.Billing.LeadCost,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create admin analytics service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:        cfg,
			Logger:        logg,
			DB:            dbClient,
			Redis:         redisClient,
			Properties:    propertiesRepo,
			Contact:       contactService,
			Events:        eventsService,
			Billing:       billingService,
			Payments:      paymentsService,
			OwnerReports:  ownerService,
			AdminAnalytic: adminService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
