// Package server boots the FreshFold HTTP application: configuration,
// MongoDB, Redis, storage, the dependency graph of repositories, services
// and controllers, and finally the HTTP listener with graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/freshfold/app/controllers"
	"github.com/shashiranjanraj/freshfold/app/repositories"
	"github.com/shashiranjanraj/freshfold/app/routes"
	"github.com/shashiranjanraj/freshfold/app/services"
	"github.com/shashiranjanraj/freshfold/config"
	"github.com/shashiranjanraj/freshfold/pkg/cache"
	"github.com/shashiranjanraj/freshfold/pkg/database"
	"github.com/shashiranjanraj/freshfold/pkg/logger"
	"github.com/shashiranjanraj/freshfold/pkg/metrics"
	"github.com/shashiranjanraj/freshfold/pkg/middleware"
	"github.com/shashiranjanraj/freshfold/pkg/reqid"
	"github.com/shashiranjanraj/freshfold/pkg/router"
	"github.com/shashiranjanraj/freshfold/pkg/session"
	"github.com/shashiranjanraj/freshfold/pkg/storage"
	"github.com/shashiranjanraj/freshfold/pkg/view"
	"github.com/shashiranjanraj/freshfold/pkg/workerpool"
)

// archiveWorkers is the size of the pool that copies report exports onto
// the storage disk.
const archiveWorkers = 2

// Start boots every subsystem and blocks until the process receives
// SIGINT or SIGTERM, then drains in-flight requests before returning.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoLog, err := logger.EnableMongo(config.MongoURI(), config.DatabaseName(), database.ColLogs)
	if err != nil {
		logger.Warn("server: mongo log handler unavailable", "error", err)
	}
	if mongoLog != nil {
		defer mongoLog.Close()
	}

	client, err := database.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	// Sessions live in Redis, so a missing cache is fatal.
	if err := cache.Connect(); err != nil {
		return err
	}
	storage.Connect()

	archive := workerpool.New(archiveWorkers)
	defer archive.Shutdown()

	handler := buildHandler(database.Database(client), archive)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildHandler wires repositories, services and controllers onto the router
// with the full middleware stack.
func buildHandler(db *mongo.Database, archive *workerpool.Pool) http.Handler {
	users := repositories.NewUserRepository(db)
	catalog := repositories.NewServiceRepository(db)
	orders := repositories.NewOrderRepository(db)
	payments := repositories.NewPaymentRepository(db)
	tickets := repositories.NewTicketRepository(db)

	services.RegisterListeners()

	auth := services.NewAuthService(users)
	reports := services.NewReportService(orders, users)
	exporters := services.NewExporters(config.CurrencySymbol())

	bundle := routes.Controllers{
		Home:     controllers.NewHomeController(catalog),
		Auth:     controllers.NewAuthController(auth),
		Password: controllers.NewPasswordController(auth),
		Profile:  controllers.NewProfileController(users, auth),
		Booking:  controllers.NewBookingController(catalog, orders),
		Order:    controllers.NewOrderController(orders, payments, tickets),
		Billing:  controllers.NewBillingController(payments),
		Support:  controllers.NewSupportController(tickets),
		Admin:    controllers.NewAdminController(users, catalog, orders, payments, tickets),
		Report:   controllers.NewReportController(reports, exporters, archive),
	}

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		session.Middleware(session.DefaultOptions()),
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(200, time.Minute),
	)

	r.Get("/metrics", "metrics", metrics.Handler())
	routes.RegisterWeb(r, bundle)
	r.NotFound(view.NotFound)

	return r.Handler()
}
