package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/urmu/storefront/internal/config"
	"github.com/urmu/storefront/internal/infrastructure/auth"
	"github.com/urmu/storefront/internal/infrastructure/database"
)

const shutdownTimeout = 10 * time.Second

// Run serves the storefront until ctx is cancelled, then drains in-flight
// requests.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	gin.SetMode(cfg.GinMode)

	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	policies, err := c.Casbin.E.GetPolicy()
	if err != nil {
		return fmt.Errorf("failed to read access policies: %w", err)
	}
	if len(policies) == 0 {
		if err := c.Casbin.SeedDefaults(); err != nil {
			return err
		}
		logger.Info("casbin: seeded default policies")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Migrate creates the database schema and seeds the default access policies
func Migrate(cfg *config.Config, logger *zap.Logger) error {
	db, err := database.Open(cfg.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(db)
	if err != nil {
		return err
	}
	if err := cas.SeedDefaults(); err != nil {
		return err
	}
	logger.Info("database migrated", zap.String("driver", db.Dialector.Name()))
	return nil
}
