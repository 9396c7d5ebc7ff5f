package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/towntreasure/backend/internal/application/catalog"
	identityapp "github.com/towntreasure/backend/internal/application/identity"
	orderingapp "github.com/towntreasure/backend/internal/application/ordering"
	shoppingapp "github.com/towntreasure/backend/internal/application/shopping"
	"github.com/towntreasure/backend/internal/domain/ordering"
	"github.com/towntreasure/backend/internal/infrastructure/auth"
	"github.com/towntreasure/backend/internal/infrastructure/cache"
	"github.com/towntreasure/backend/internal/infrastructure/config"
	"github.com/towntreasure/backend/internal/infrastructure/fx"
	"github.com/towntreasure/backend/internal/infrastructure/geocode"
	"github.com/towntreasure/backend/internal/infrastructure/logger"
	"github.com/towntreasure/backend/internal/infrastructure/persistence"
	"github.com/towntreasure/backend/internal/interfaces/http/handler"
	"github.com/towntreasure/backend/internal/interfaces/http/middleware"
	"github.com/towntreasure/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Town Treasure backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	// The SQLite local store migrates on boot; Postgres uses cmd/migrate
	if db.Driver() == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}
	log.Info("Database connected", zap.String("driver", db.Driver()))

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Exchange rate provider for dual-currency display
	rates := fx.NewRateProvider(cfg.FX, log)
	fxCtx, fxCancel := context.WithCancel(context.Background())
	defer fxCancel()
	if cfg.FX.Enabled {
		go rates.Start(fxCtx)
	}

	var rateSource catalogapp.RateSource = rates
	if !cfg.FX.Enabled {
		rateSource = catalogapp.StaticRate(decimal.NewFromFloat(cfg.FX.FallbackRate))
	}

	// Catalog cache: Redis when configured, in-memory otherwise
	productCache := cache.NewProductCache(cfg.Redis, 0, log)
	defer func() {
		_ = productCache.Close()
	}()

	// Address lookup with debounced upstream queries
	searcher := geocode.NewDebouncedSearcher(
		geocode.NewClient(cfg.Geocode, log),
		cfg.Geocode.DebounceDelay,
	)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	productService := catalogapp.NewProductService(productRepo, productCache, rateSource, log)
	cartService := shoppingapp.NewCartService(cartRepo, productService, log)
	checkoutService := shoppingapp.NewCheckoutService(cartRepo, orderRepo, ordering.NewOrderIDGenerator(), log)
	orderService := orderingapp.NewOrderService(orderRepo, log)

	// Gin engine and middleware stack
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	middleware.SetupValidator()

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint outside API versioning
	engine.GET("/health", healthHandler(db))

	// Routes: public storefront surface skips authentication
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/register",
			"/api/v1/offers",
			"/api/v1/fx/rate",
		},
		SkipPathPrefixes: []string{
			"/api/v1/locations",
		},
		Logger: log,
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(publicProductGate(jwtConfig))
	r.Register(handler.NewAuthHandler(authService)).
		Register(handler.NewProductHandler(productService)).
		Register(handler.NewCartHandler(cartService)).
		Register(handler.NewCheckoutHandler(checkoutService)).
		Register(handler.NewOrderHandler(orderService)).
		Register(handler.NewLocationHandler(searcher)).
		Register(handler.NewFXHandler(rates))
	r.Setup()

	// HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// publicProductGate wraps the JWT middleware so catalog reads stay
// public while catalog writes require a token. GET /products and
// GET /products/:id skip auth; POST/PUT/DELETE go through it.
func publicProductGate(cfg middleware.JWTMiddlewareConfig) gin.HandlerFunc {
	authRequired := middleware.JWTAuthMiddlewareWithConfig(cfg)
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet &&
			len(c.Request.URL.Path) >= len("/api/v1/products") &&
			c.Request.URL.Path[:len("/api/v1/products")] == "/api/v1/products" {
			c.Next()
			return
		}
		authRequired(c)
	}
}

// healthHandler reports liveness and database reachability
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
