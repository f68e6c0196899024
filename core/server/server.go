package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"

	"legalease-api/core/config"
	"legalease-api/core/constants"
	"legalease-api/core/database"
	"legalease-api/core/logger"
	"legalease-api/core/middleware"
	"legalease-api/core/validator"
	"legalease-api/core/worker"
	"legalease-api/modules/appointment"
	"legalease-api/modules/availability"
	"legalease-api/modules/billing"
	"legalease-api/modules/notification"
	"legalease-api/modules/provider"
)

// Run wires the whole application together and blocks until shutdown.
func Run() error {
	logger.Init()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("server: init database: %w", err)
	}
	defer db.Close()

	cache := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.CacheDB,
	})
	defer cache.Close()

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RequestID())

	mw := middleware.NewMiddleware()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")
	private := api.Group("/private")

	providerSvc := provider.Init(db, cache)
	notificationSvc := notification.Init(private, db, mw)
	billing.Init(private, db, mw)
	availability.Init(private, db, mw)
	appointmentSvc := appointment.Init(private, db, mw, providerSvc, notificationSvc)

	// Background expiration sweeps run alongside the API server.
	sweeper := worker.New(cfg, appointmentSvc)
	sweeper.Start()
	defer sweeper.Shutdown()

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("server: start", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("server: shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
	defer cancel()
	return e.Shutdown(ctx)
}
