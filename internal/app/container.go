package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/urmu/storefront/domain"
	"github.com/urmu/storefront/internal/config"
	httpx "github.com/urmu/storefront/internal/http"
	"github.com/urmu/storefront/internal/http/handlers"
	"github.com/urmu/storefront/internal/http/middleware"
	"github.com/urmu/storefront/internal/infrastructure/audit"
	"github.com/urmu/storefront/internal/infrastructure/auth"
	"github.com/urmu/storefront/internal/infrastructure/backend"
	"github.com/urmu/storefront/internal/infrastructure/database"
	"github.com/urmu/storefront/internal/infrastructure/notifications"
	"github.com/urmu/storefront/internal/infrastructure/repositories"
	"github.com/urmu/storefront/internal/otpflow"
	"github.com/urmu/storefront/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Logger *zap.Logger

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Backend     *backend.Client
	Casbin      *auth.CasbinService

	// Repositories
	SessionRepo domain.SessionRepository
	FlowStore   otpflow.Store
	Ledger      domain.CheckoutLedger

	// Services
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	Events          domain.EventLogger
	AuthFlowSvc     domain.AuthFlowService
	CatalogSvc      domain.CatalogService
	CartSvc         domain.CartService
	CheckoutSvc     domain.CheckoutService
	OrderSvc        domain.OrderService
	AddressSvc      domain.AddressService
	WholesaleSvc    domain.WholesaleService
}

// NewContainer creates and initializes all dependencies
func NewContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	container := &Container{Config: cfg, Logger: logger}

	// Initialize infrastructure
	if err := container.initDatabase(); err != nil {
		container.Close()
		return nil, err
	}
	if err := container.initRedis(ctx); err != nil {
		container.Close()
		return nil, err
	}
	if err := container.initBackend(); err != nil {
		container.Close()
		return nil, err
	}

	// Initialize repositories
	container.initRepositories()

	// Initialize services
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	if c.Config.DSN == "" {
		return errors.New("database.dsn is required")
	}
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	c.DB = db
	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(db)
	if err != nil {
		return fmt.Errorf("failed to load access policies: %w", err)
	}
	c.Casbin = cas
	return nil
}

func (c *Container) initRedis(ctx context.Context) error {
	rdb := database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	c.RedisClient = rdb.Client
	if err := rdb.Ping(ctx); err != nil {
		return fmt.Errorf("failed to reach redis at %s: %w", c.Config.RedisAddr, err)
	}
	return nil
}

func (c *Container) initBackend() error {
	client, err := backend.NewClient(c.Config.BackendURL, c.Config.BackendTimeout, c.Logger.Named("backend"))
	if err != nil {
		return err
	}
	c.Backend = client
	return nil
}

func (c *Container) initRepositories() {
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient)
	c.FlowStore = repositories.NewFlowRepository(c.RedisClient, c.Config.OTP_FlowTTL)
	c.Ledger = repositories.NewCheckoutLedger(c.DB)
}

func (c *Container) initServices() {
	cfg := c.Config

	// Initialize basic services
	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer)
	c.NotificationSvc = notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom, c.Logger)
	c.Events = audit.NewEventLogger(c.Logger)

	c.AuthFlowSvc = services.NewAuthFlowService(c.FlowStore, c.Backend, c.SessionRepo, c.TokenSvc, c.Events, services.AuthFlowConfig{
		ResendWait:      cfg.OTP_ResendWait,
		AttemptsAllowed: cfg.OTP_AttemptsAllowed,
		PhoneMinLength:  cfg.OTP_PhoneMinLength,
		CodeLength:      cfg.OTP_CodeLength,
		LoginDelay:      cfg.OTP_LoginDelay,
		SessionTTL:      cfg.SessionTTL,
	})
	c.CatalogSvc = services.NewCatalogService(c.Backend, c.RedisClient, services.CatalogConfig{
		PageSize:      cfg.CatalogPageSize,
		CacheTTL:      cfg.CatalogCacheTTL,
		CurrencyLabel: cfg.CurrencyLabel,
	}, c.Logger.Named("catalog"))
	c.CartSvc = services.NewCartService(c.Backend, cfg.CurrencyLabel)
	c.CheckoutSvc = services.NewCheckoutService(c.Backend, c.Ledger, c.NotificationSvc, c.Events, cfg.OTP_PhoneMinLength, c.Logger.Named("checkout"))
	c.OrderSvc = services.NewOrderService(c.Backend, cfg.CurrencyLabel)
	c.AddressSvc = services.NewAddressService(c.Backend, cfg.OTP_PhoneMinLength)
	c.WholesaleSvc = services.NewWholesaleService(c.Backend, c.NotificationSvc, c.Events, cfg.TwilioOps, c.Logger.Named("wholesale"))
}

// Router builds the HTTP handler over the container's services
func (c *Container) Router() *gin.Engine {
	return httpx.BuildRouter(c.Logger, httpx.Handlers{
		Auth:     handlers.NewAuthHandlers(c.AuthFlowSvc),
		Catalog:  handlers.NewCatalogHandlers(c.CatalogSvc),
		Commerce: handlers.NewCommerceHandlers(c.CartSvc, c.CheckoutSvc, c.OrderSvc),
		Account:  handlers.NewAccountHandlers(c.AddressSvc, c.WholesaleSvc),
	}, middleware.NewAuthMW(c.TokenSvc, c.SessionRepo), middleware.NewCasbinMW(c.Casbin))
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Backend != nil {
		c.Backend.Close()
	}
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
