package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	dashboardapp "github.com/storefront/backend/internal/application/dashboard"
	identityapp "github.com/storefront/backend/internal/application/identity"
	orderapp "github.com/storefront/backend/internal/application/order"
	preorderapp "github.com/storefront/backend/internal/application/preorder"
	shoppingapp "github.com/storefront/backend/internal/application/shopping"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/storage"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

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

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing first so the gorm and gin instrumentation pick up the global
	// provider.
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	gormLogLevel := gormlogger.Warn
	if cfg.Log.Level == "debug" {
		gormLogLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if tracerProvider.IsEnabled() {
		if err := db.EnableTracing(); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected")

	// Token revocation backend. Redis keeps logout effective across
	// instances; the in-memory fallback is for single-node development.
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		log.Info("Redis token blacklist enabled", zap.String("addr", cfg.Redis.Addr()))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Using in-memory token blacklist, logout will not survive restarts")
	}

	tokenService := auth.NewTokenService(cfg.Auth)

	// Preorder image storage. Without credentials the stub keeps uploads in
	// memory so the rest of the API works in development.
	var objectStorage preorderapp.ObjectStorage
	if cfg.Storage.AccessKey != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("S3 object storage enabled", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Using in-memory object storage, uploads will not persist")
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	wishlistRepo := persistence.NewGormWishlistRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	preorderRepo := persistence.NewGormPreorderRepository(db.DB)

	// Order state machines come from configuration, not code
	statusPolicy := order.PermissivePolicy()
	paymentPolicy := order.PermissivePolicy()
	if cfg.Orders.StrictTransitions {
		statusPolicy = order.StrictStatusPolicy()
		paymentPolicy = order.StrictPaymentPolicy()
		log.Info("Strict order transition policies enabled")
	}

	// Application services
	authService := identityapp.NewAuthService(userRepo, tokenService, blacklist, log)
	productService := catalogapp.NewProductService(productRepo, brandRepo, categoryRepo, log)
	brandService := catalogapp.NewBrandService(brandRepo, productRepo, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo, log)
	reviewService := catalogapp.NewReviewService(reviewRepo, productRepo, log)
	cartService := shoppingapp.NewCartService(cartRepo, productRepo, orderRepo, addressRepo, log)
	wishlistService := shoppingapp.NewWishlistService(wishlistRepo, productRepo, log)
	orderService := orderapp.NewOrderService(orderRepo, statusPolicy, paymentPolicy, log)
	addressService := orderapp.NewAddressService(addressRepo, orderRepo, log)
	preorderService := preorderapp.NewPreorderService(preorderRepo, objectStorage, log)
	dashboardService := dashboardapp.NewDashboardService(orderRepo, productRepo, reviewRepo, userRepo, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if tracerProvider.IsEnabled() {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           "43200",
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	guards := handler.Guards{
		Auth:  middleware.SessionAuth(tokenService, blacklist, log),
		Admin: middleware.RequireAdmin(),
	}
	// Admin routes authenticate first, then check the role
	guards.Admin = chain(guards.Auth, guards.Admin)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler(log, db.Ping))
	r.Register(handler.NewAuthHandler(authService, guards, log))
	r.Register(handler.NewProductHandler(productService, guards, log))
	r.Register(handler.NewBrandHandler(brandService, guards, log))
	r.Register(handler.NewCategoryHandler(categoryService, guards, log))
	r.Register(handler.NewReviewHandler(reviewService, guards, log))
	r.Register(handler.NewCartHandler(cartService, guards, log))
	r.Register(handler.NewWishlistHandler(wishlistService, guards, log))
	r.Register(handler.NewOrderHandler(orderService, guards, log))
	r.Register(handler.NewAddressHandler(addressService, guards, log))
	r.Register(handler.NewPreorderHandler(preorderService, guards, log))
	r.Register(handler.NewDashboardHandler(dashboardService, guards, log))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
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

// chain composes middleware so a single gin.HandlerFunc can be attached to a
// route group.
func chain(handlers ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range handlers {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
