package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-vendas/docs"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/route"
	"github.com/hugohenrick/erp-vendas/internal/adapter/repository"
	"github.com/hugohenrick/erp-vendas/internal/adapter/repository/memory"
	"github.com/hugohenrick/erp-vendas/internal/application/balance"
	"github.com/hugohenrick/erp-vendas/internal/application/customers"
	"github.com/hugohenrick/erp-vendas/internal/application/products"
	"github.com/hugohenrick/erp-vendas/internal/application/sales"
	"github.com/hugohenrick/erp-vendas/internal/application/stock"
	"github.com/hugohenrick/erp-vendas/internal/config"
	"github.com/hugohenrick/erp-vendas/internal/domain/pricing"
	"github.com/hugohenrick/erp-vendas/internal/domain/store"
	"github.com/hugohenrick/erp-vendas/internal/domain/tenant"
	"github.com/hugohenrick/erp-vendas/internal/infrastructure/database"
	"github.com/hugohenrick/erp-vendas/pkg/auth"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
	"github.com/hugohenrick/erp-vendas/pkg/middleware"
	pkgtenant "github.com/hugohenrick/erp-vendas/pkg/tenant"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const basePath = "/api/v1"

// persistence é o armazenamento usado pela aplicação
type persistence interface {
	store.TxManager
	Tenants() tenant.Repository
}

// App representa a aplicação e suas dependências
type App struct {
	config config.Config
	logger logger.Logger
	db     *database.PostgresDB
	router *gin.Engine
	server *http.Server
}

// NewApp cria uma nova instância do aplicativo
func NewApp(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	app := &App{config: cfg, logger: log}

	var storage persistence
	switch cfg.Database.Driver {
	case config.DriverMemory:
		log.Warn("usando armazenamento em memória; os dados não serão persistidos")
		storage = memory.NewStore()
	default:
		if err := database.RunMigrations(cfg.Database, database.Up, log); err != nil {
			return nil, err
		}
		db, err := database.NewPostgresDB(ctx, cfg.Database, log)
		if err != nil {
			return nil, err
		}
		app.db = db
		storage = repository.NewStore(db)
	}

	jwtService, err := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiration)
	if err != nil {
		app.Close()
		return nil, err
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	var healthCheck func(ctx context.Context) error
	if app.db != nil {
		healthCheck = app.db.Ping
	}

	app.router = newRouter(cfg, storage, jwtService, healthCheck, log)
	app.server = &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      app.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// newRouter monta o router com middlewares globais, swagger e as rotas da API
func newRouter(cfg config.Config, storage persistence, jwtService *auth.JWTService, healthCheck func(ctx context.Context) error, log logger.Logger) *gin.Engine {
	dto.RegisterValidators()

	ledger := stock.NewLedger(storage, log)
	manager := sales.NewManager(storage, ledger, pricing.NewEngine(), sales.Config{
		CardCommissionRate: cfg.CardCommissionRate,
	}, log)

	handlers := route.Handlers{
		Tenant:      controller.NewTenantController(storage.Tenants(), log),
		Customer:    controller.NewCustomerController(customers.NewService(storage, log), balance.NewCalculator(storage), log),
		Product:     controller.NewProductController(products.NewService(storage, log), ledger, log),
		Sale:        controller.NewSaleController(manager, log),
		Return:      controller.NewReturnController(manager, log),
		Collection:  controller.NewCollectionController(manager, log),
		HealthCheck: healthCheck,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	docs.SwaggerInfo.BasePath = basePath
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	route.SetupRoutes(router, basePath, handlers,
		auth.JWTAuthMiddleware(jwtService),
		pkgtenant.TenantMiddleware(repository.NewTenantValidator(storage.Tenants())),
	)
	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowAllOrigins = false
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
		}
	}
	if !c.AllowAllOrigins {
		c.AllowOrigins = origins
	}
	c.AddAllowHeaders("Authorization", pkgtenant.HeaderName, middleware.RequestIDHeader)
	c.AddExposeHeaders(middleware.RequestIDHeader)
	return c
}

// Start inicia o servidor e bloqueia até ctx ser cancelado, encerrando as
// conexões abertas dentro do tempo de desligamento configurado
func (a *App) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("servidor iniciado", "port", a.config.HTTPPort, "driver", a.config.Database.Driver)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("erro ao iniciar servidor: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("desligando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("erro ao desligar servidor: %w", err)
	}
	return nil
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
