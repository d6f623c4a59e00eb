package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"storefront-be/internal/auth"
	"storefront-be/internal/cart"
	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/httpapi"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/middleware"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/user"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	if cfg.RunMigrations {
		version, err := db.RunMigrations(database, db.DirectionUp)
		if err != nil {
			logger.L().Fatal("migrations failed", zap.Error(err))
		}
		logger.L().Info("migrations applied", zap.Uint("version", version))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limiter := middleware.NewRateLimiter()
	go limiter.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           setupRouter(cfg, database, limiter),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.L().Info("server running", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.L().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("graceful shutdown failed", zap.Error(err))
	}
}

func setupRouter(cfg *config.Config, database *sql.DB, limiter *middleware.RateLimiter) http.Handler {
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	intake := &metrics.Intake{}

	productRepo := product.NewRepository(database)
	orderRepo := order.NewRepository(database)
	userRepo := user.NewRepository(database)
	cartRepo := cart.NewRepository(database)

	h := httpapi.NewHandler(httpapi.Deps{
		Orders:       order.NewService(orderRepo, productRepo, intake),
		Products:     product.NewService(productRepo),
		Users:        user.NewService(userRepo, issuer),
		Carts:        cart.NewService(cartRepo, productRepo),
		Intake:       intake,
		TokenTTL:     cfg.TokenTTL,
		SecureCookie: cfg.IsProduction(),
	})

	return httpapi.NewRouter(h, httpapi.RouterOptions{
		Sessions:       issuer,
		InternalSecret: cfg.InternalSecretKey,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Limiter:        limiter,
	})
}
