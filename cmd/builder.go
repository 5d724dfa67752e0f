package cmd

import (
	"database/sql"
	"fmt"
	"net/http"

	"backoffice/api"
	apiclient "backoffice/api/client"
	apidashboard "backoffice/api/dashboard"
	apifollowup "backoffice/api/followup"
	"backoffice/api/health"
	apiorder "backoffice/api/order"
	apiproduct "backoffice/api/product"
	apiquote "backoffice/api/quote"
	clientapp "backoffice/application/client"
	followupapp "backoffice/application/followup"
	orderapp "backoffice/application/order"
	paymentapp "backoffice/application/payment"
	productapp "backoffice/application/product"
	quoteapp "backoffice/application/quote"
	reportapp "backoffice/application/report"
	"backoffice/config"
	"backoffice/infrastructure/persistence/rdb"
	"backoffice/infrastructure/persistence/retry"
	"backoffice/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppBuilder builds an App with customizable components
type AppBuilder struct {
	cfg          *config.Config
	db           *gorm.DB
	controllers  []api.ControllerRegister
	middlewares  []api.MiddlewareRegister
	customRoutes []api.Route
}

// NewBuilder creates a new AppBuilder
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{
		cfg:          cfg,
		controllers:  []api.ControllerRegister{},
		middlewares:  []api.MiddlewareRegister{},
		customRoutes: []api.Route{},
	}
}

// WithDB uses an already opened database instead of connecting from config.
// Tests pass an in-memory sqlite handle here.
func (b *AppBuilder) WithDB(db *gorm.DB) *AppBuilder {
	b.db = db
	return b
}

// WithController adds a controller to the app
func (b *AppBuilder) WithController(c api.ControllerRegister) *AppBuilder {
	b.controllers = append(b.controllers, c)
	return b
}

// WithMiddleware adds a middleware to the app
func (b *AppBuilder) WithMiddleware(m api.MiddlewareRegister) *AppBuilder {
	b.middlewares = append(b.middlewares, m)
	return b
}

// WithRoute adds a custom route
func (b *AppBuilder) WithRoute(method, path string, handler gin.HandlerFunc) *AppBuilder {
	b.customRoutes = append(b.customRoutes, api.Route{
		Method:  method,
		Path:    path,
		Handler: handler,
	})
	return b
}

// Services groups the application services so the worker and the HTTP app
// share one construction path.
type Services struct {
	Clients   *clientapp.Service
	Products  *productapp.Service
	Orders    *orderapp.Service
	Payments  *paymentapp.Service
	Quotes    *quoteapp.Service
	FollowUps *followupapp.Service
	Reports   *reportapp.Service
}

// NewServices wires repositories and a unit of work factory over db.
func NewServices(cfg *config.Config, db *gorm.DB) *Services {
	clientRepo := rdb.NewClientRepository(db)
	productRepo := rdb.NewProductRepository(db)
	orderRepo := rdb.NewOrderRepository(db)
	quoteRepo := rdb.NewQuoteRepository(db)
	followUpRepo := rdb.NewFollowUpRepository(db)
	uowFactory := rdb.NewUnitOfWorkFactory(db, retry.FromAppConfig(cfg))

	return &Services{
		Clients:   clientapp.NewService(clientRepo, uowFactory),
		Products:  productapp.NewService(productRepo, uowFactory),
		Orders:    orderapp.NewService(orderRepo, clientRepo, productRepo, followUpRepo, uowFactory),
		Payments:  paymentapp.NewService(orderRepo, uowFactory),
		Quotes:    quoteapp.NewService(quoteRepo, orderRepo, clientRepo, productRepo, uowFactory),
		FollowUps: followupapp.NewService(followUpRepo, clientRepo, orderRepo, uowFactory),
		Reports:   reportapp.NewService(rdb.NewReportRepository(db)),
	}
}

// OpenDatabase connects with the configured driver and migrates the schema
// when database.auto_migrate is set.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	dbConfig := rdb.FromAppConfig(cfg)
	db, err := dbConfig.Connect()
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := rdb.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to auto migrate: %w", err)
		}
		logger.Info("Database schema migrated")
	}
	return db, nil
}

// Build creates the App instance. The logger must already be initialized.
func (b *AppBuilder) Build() (*App, error) {
	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env))

	db := b.db
	if db == nil {
		var err error
		if db, err = OpenDatabase(b.cfg); err != nil {
			return nil, err
		}
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	services := NewServices(b.cfg, db)
	controllers := append([]api.ControllerRegister{
		health.NewController(b.cfg, sqlDB),
		apiclient.NewController(services.Clients),
		apiproduct.NewController(services.Products),
		apiorder.NewController(services.Orders, services.Payments),
		apiquote.NewController(services.Quotes),
		apifollowup.NewController(services.FollowUps),
		apidashboard.NewController(services.Reports),
	}, b.controllers...)

	router := api.NewRouter(b.cfg, controllers, b.middlewares, b.customRoutes)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config: b.cfg,
		router: router,
		server: server,
		db:     sqlDB,
	}, nil
}

func closeDB(db *sql.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Warn("Failed to close database", zap.Error(err))
	}
}
