package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rihlah-erp/rihlah-erp/internal/app"
	"github.com/rihlah-erp/rihlah-erp/internal/bookings"
	"github.com/rihlah-erp/rihlah-erp/internal/catalog/hotels"
	svccatalog "github.com/rihlah-erp/rihlah-erp/internal/catalog/services"
	"github.com/rihlah-erp/rihlah-erp/internal/currency"
	"github.com/rihlah-erp/rihlah-erp/internal/customers"
	"github.com/rihlah-erp/rihlah-erp/internal/expenses"
	"github.com/rihlah-erp/rihlah-erp/internal/payments"
	"github.com/rihlah-erp/rihlah-erp/internal/platform/cache"
	"github.com/rihlah-erp/rihlah-erp/internal/platform/db"
	"github.com/rihlah-erp/rihlah-erp/internal/reports"
	"github.com/rihlah-erp/rihlah-erp/internal/settings"
	"github.com/rihlah-erp/rihlah-erp/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	// Reports degrade to uncached queries when Redis is unavailable.
	var redisClient *redis.Client
	if client, err := cache.New(ctx, cfg.RedisAddr); err != nil {
		logger.Warn("redis unavailable, report caching disabled", slog.Any("error", err))
	} else {
		redisClient = client
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	reportCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)

	customerRepo := customers.NewRepository(pool)
	hotelRepo := hotels.NewRepository(pool)
	serviceRepo := svccatalog.NewRepository(pool)
	currencyRepo := currency.NewRepository(pool)
	bookingRepo := bookings.NewRepository(pool)
	paymentRepo := payments.NewRepository(pool)
	expenseRepo := expenses.NewRepository(pool)
	settingsRepo := settings.NewRepository(pool)
	userRepo := users.NewRepository(pool)
	reportRepo := reports.NewRepository(pool)

	customerService := customers.NewService(customerRepo)
	hotelService := hotels.NewService(hotelRepo)
	serviceService := svccatalog.NewService(serviceRepo)
	currencyService := currency.NewService(currencyRepo)
	bookingService := bookings.NewService(bookingRepo, customerRepo, hotelRepo, serviceRepo, reportCache)
	paymentService := payments.NewService(paymentRepo, bookingRepo, currencyRepo, cfg.BaseCurrency, reportCache)
	expenseService := expenses.NewService(expenseRepo, bookingRepo)
	settingsService := settings.NewService(settingsRepo)
	userService := users.NewService(userRepo, cfg.BcryptCost)
	reportService := reports.NewService(reportRepo, reportCache)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		CustomersHandler: customers.NewHandler(logger, customerService),
		HotelsHandler:    hotels.NewHandler(logger, hotelService),
		ServicesHandler:  svccatalog.NewHandler(logger, serviceService),
		CurrencyHandler:  currency.NewHandler(logger, currencyService),
		BookingsHandler:  bookings.NewHandler(logger, bookingService),
		PaymentsHandler:  payments.NewHandler(logger, paymentService),
		ExpensesHandler:  expenses.NewHandler(logger, expenseService),
		SettingsHandler:  settings.NewHandler(logger, settingsService),
		UsersHandler:     users.NewHandler(logger, userService),
		ReportsHandler:   reports.NewHandler(logger, reportService),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
