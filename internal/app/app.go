package app

import (
	"context"
	"errors"
	"net/http"

	"go-pos/internal/authz"
	"go-pos/internal/branch"
	"go-pos/internal/business"
	"go-pos/internal/category"
	"go-pos/internal/config"
	"go-pos/internal/crud"
	"go-pos/internal/expense"
	"go-pos/internal/manager"
	"go-pos/internal/messaging/kafka"
	"go-pos/internal/middleware"
	"go-pos/internal/order"
	"go-pos/internal/product"
	"go-pos/internal/rbac"
	"go-pos/internal/reporting"
	"go-pos/internal/salesman"
	"go-pos/internal/shared/connection"
	"go-pos/internal/shared/validation"
	"go-pos/internal/stock"
	"go-pos/internal/store/gormstore"
	"go-pos/internal/store/memstore"
	"go-pos/internal/supplier"
	"go-pos/internal/user"
	"go-pos/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Infra is the opened persistence layer plus the optional redis client.
type Infra struct {
	Tables Tables
	Deps   crud.Deps
	Redis  *redis.Client

	closers []func() error
}

// Close releases every connection Open made.
func (in *Infra) Close() error {
	var errs []error
	for i := len(in.closers) - 1; i >= 0; i-- {
		errs = append(errs, in.closers[i]())
	}
	return errors.Join(errs...)
}

// Open connects the configured store and, for postgres, redis.
func Open(cfg *config.Config, logger *zap.Logger) (*Infra, error) {
	in := &Infra{}

	var b backend
	switch cfg.App.Store {
	case config.StoreMemory:
		b.mem = memstore.New()
		logger.Warn("using in-memory store, data is lost on exit")
	default:
		db, err := connection.ConnectGORMWithRetry(
			connection.DSN(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port, cfg.DB.SSLMode),
			cfg.DB.Retries,
			logger,
		)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		in.closers = append(in.closers, sqlDB.Close)
		b.gorm = gormstore.New(db)

		rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.DB.Retries, logger)
		if err != nil {
			_ = in.Close()
			return nil, err
		}
		in.closers = append(in.closers, rdb.Close)
		in.Redis = rdb
	}

	in.Tables = openTables(b)
	in.Deps = crud.Deps{
		Tx:        b.transactor(),
		Validator: validation.New(),
		Views:     view.Noop(),
		Events:    kafka.NewRecorder(in.Tables.Outbox),
	}
	if in.Redis != nil {
		in.Deps.Views = view.NewRedisInvalidator(in.Redis)
	}
	return in, nil
}

// Modules are the assembled repositories and services.
type Modules struct {
	Businesses *business.Repository
	Branches   *branch.Repository
	Categories *category.Repository
	Suppliers  *supplier.Repository
	Products   *product.Repository
	Stock      *stock.Service
	Orders     *order.Repository
	Expenses   *expense.Repository
	Salesmen   *salesman.Repository
	Users      *user.Service
	Managers   *manager.Repository
	RBAC       *rbac.Service
	Resolver   *rbac.Resolver
	Reports    *reporting.Service
}

func NewModules(t Tables, deps crud.Deps, cfg *config.Config, cache view.Cache) Modules {
	policy := rbac.NewPolicy(t.Roles, t.Permissions, t.RolePermissions, rbac.PolicyOptions{TTL: cfg.RBAC.PolicyTTL})

	return Modules{
		Businesses: business.NewRepository(t.Businesses, deps),
		Branches:   branch.NewRepository(t.Branches, deps),
		Categories: category.NewRepository(t.Categories, deps),
		Suppliers:  supplier.NewRepository(t.Suppliers, deps),
		Products: product.NewRepository(t.Products, product.References{
			Categories: t.Categories,
			Suppliers:  t.Suppliers,
		}, deps),
		Stock: stock.NewService(t.Stocks, stock.References{
			Branches: t.Branches,
			Products: t.Products,
		}, deps),
		Orders: order.NewRepository(t.Orders, order.Inventory{
			Branches: t.Branches,
			Products: t.Products,
			Stocks:   t.Stocks,
		}, deps),
		Expenses: expense.NewRepository(t.Expenses, t.Branches, deps),
		Salesmen: salesman.NewRepository(t.Salesmen, t.Branches, deps),
		Users: user.NewService(t.Users, user.References{
			Roles:    rbac.RoleLookup{Roles: t.Roles},
			Branches: t.Branches,
		}, deps),
		Managers: manager.NewRepository(t.Managers, manager.Links{
			Users:    t.Users,
			Branches: t.Branches,
			Roles:    rbac.RoleLookup{Roles: t.Roles},
		}, deps),
		RBAC:     rbac.NewService(t.Roles, t.Permissions, t.RolePermissions, policy, deps),
		Resolver: rbac.NewResolver(t.Users, t.Roles, policy),
		Reports: reporting.NewService(reporting.Sources{
			Orders:   t.Orders,
			Expenses: t.Expenses,
			Branches: t.Branches,
			Products: t.Products,
			Salesmen: t.Salesmen,
			Stocks:   t.Stocks,
		}, reporting.Options{
			Location:          cfg.Report.Location,
			LowStockThreshold: cfg.Report.LowStockThreshold,
			Cache:             cache,
		}),
	}
}

// BuildApp opens the infrastructure and mounts every route on router. The
// returned Infra must be closed by the caller.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (*Infra, error) {
	in, err := Open(cfg, logger)
	if err != nil {
		return nil, err
	}

	cache := view.NoCache()
	if in.Redis != nil {
		cache = view.NewRedisCache(in.Redis, cfg.Redis.CacheTTL)
	}
	m := NewModules(in.Tables, in.Deps, cfg, cache)

	if cfg.App.Store == config.StoreMemory && cfg.Seed.SuperadminEmail != "" {
		if err := seedMemory(context.Background(), in, cfg); err != nil {
			_ = in.Close()
			return nil, err
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	Mount(router, m, Mounting{
		Secret:      cfg.JWT.Secret,
		Logger:      logger,
		Registry:    reg,
		RateLimit:   rate.Limit(cfg.RateLimit.PerSecond),
		Burst:       cfg.RateLimit.Burst,
		IPRateLimit: rate.Limit(cfg.RateLimit.IPPerSecond),
		IPBurst:     cfg.RateLimit.IPBurst,
		Redis:       in.Redis,
	})
	return in, nil
}

// Mounting carries the HTTP-level settings for Mount.
type Mounting struct {
	Secret    string
	Logger    *zap.Logger
	Registry  *prometheus.Registry
	RateLimit rate.Limit
	Burst     int
	// IPRateLimit guards /api/v1 per client IP ahead of token checks; zero
	// disables it.
	IPRateLimit rate.Limit
	IPBurst     int
	// Redis enables Idempotency-Key replay on mutations when set.
	Redis *redis.Client
}

// Mount installs the middleware chain and every module's routes.
func Mount(router *gin.Engine, m Modules, opt Mounting) {
	metrics := middleware.NewHTTPMetrics(opt.Registry)
	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(opt.Logger),
		metrics.Middleware(),
	)
	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opt.Registry, promhttp.HandlerOpts{})))

	mutate := []gin.HandlerFunc{middleware.RateLimitByUser(opt.RateLimit, opt.Burst)}
	if opt.Redis != nil {
		mutate = append(mutate, middleware.Idempotency(opt.Redis))
	}

	var guard []gin.HandlerFunc
	if opt.IPRateLimit > 0 {
		guard = append(guard, middleware.RateLimitByIP(opt.IPRateLimit, opt.IPBurst))
	}
	guard = append(guard,
		middleware.AuthMiddleware(opt.Secret),
		middleware.ResolveActor(m.Resolver),
	)
	api := router.Group("/api/v1", guard...)
	{
		business.RegisterRoutes(api, m.Businesses, mutate...)
		branch.RegisterRoutes(api, m.Branches, mutate...)
		category.RegisterRoutes(api, m.Categories, mutate...)
		supplier.RegisterRoutes(api, m.Suppliers, mutate...)
		product.RegisterRoutes(api, m.Products, mutate...)
		stock.RegisterRoutes(api, m.Stock, mutate...)
		order.RegisterRoutes(api, m.Orders, mutate...)
		expense.RegisterRoutes(api, m.Expenses, mutate...)
		salesman.RegisterRoutes(api, m.Salesmen, mutate...)
		manager.RegisterRoutes(api, m.Managers, mutate...)
		user.RegisterRoutes(api, m.Users, mutate...)
		rbac.RegisterRoutes(api, m.RBAC, mutate...)
		reporting.RegisterRoutes(api, m.Reports,
			middleware.RequirePermission(authz.Code(reporting.Resource, authz.ActionView)),
		)
	}
}

func seedMemory(ctx context.Context, in *Infra, cfg *config.Config) error {
	seeder := rbac.NewSeeder(in.Deps.Tx, in.Tables.Roles, in.Tables.Permissions, in.Tables.Users)
	if _, err := seeder.Permissions(ctx, Catalogue()); err != nil {
		return err
	}
	_, err := seeder.Superadmin(ctx, "Superadmin", cfg.Seed.SuperadminEmail, cfg.Seed.SuperadminPassword)
	return err
}

// Catalogue is every permission code the service checks.
func Catalogue() []string {
	return rbac.Catalogue(Resources, authz.Code(reporting.Resource, authz.ActionView))
}
