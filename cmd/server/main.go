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
	"go.uber.org/zap"

	adminapp "github.com/velora/storefront/internal/application/admin"
	authapp "github.com/velora/storefront/internal/application/auth"
	cartapp "github.com/velora/storefront/internal/application/cart"
	catalogapp "github.com/velora/storefront/internal/application/catalog"
	checkoutapp "github.com/velora/storefront/internal/application/checkout"
	notificationapp "github.com/velora/storefront/internal/application/notification"
	orderapp "github.com/velora/storefront/internal/application/order"
	paymentapp "github.com/velora/storefront/internal/application/payment"
	"github.com/velora/storefront/internal/domain/shared"
	"github.com/velora/storefront/internal/infrastructure/auth"
	"github.com/velora/storefront/internal/infrastructure/commerce"
	"github.com/velora/storefront/internal/infrastructure/config"
	"github.com/velora/storefront/internal/infrastructure/event"
	"github.com/velora/storefront/internal/infrastructure/logger"
	"github.com/velora/storefront/internal/infrastructure/store"
	"github.com/velora/storefront/internal/interfaces/http/handler"
	"github.com/velora/storefront/internal/interfaces/http/middleware"
	"github.com/velora/storefront/internal/interfaces/http/router"
)

//	@title			Storefront Gateway API
//	@version		1.0
//	@description	BFF for the storefront and admin console, fronting the commerce service.

//	@host		localhost:8080
//	@BasePath	/api/v1

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

	log.Info("Starting storefront gateway",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Session store: Redis when configured, embedded SQLite otherwise
	var (
		sessionStore store.SessionStore
		redisClient  *redis.Client
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		sessionStore = store.NewRedisStore(redisClient, cfg.Store.SessionTTL)
		log.Info("Session store ready", zap.String("backend", "redis"))
	} else {
		db, err := store.OpenSQLite(cfg.Store.SQLitePath, log)
		if err != nil {
			log.Fatal("Failed to open session database", zap.Error(err))
		}
		sessionStore = store.NewGormStore(db, cfg.Store.SessionTTL)
		log.Info("Session store ready",
			zap.String("backend", "sqlite"),
			zap.String("path", cfg.Store.SQLitePath))
	}

	// Event bus; with Redis the relay mirrors events across instances
	inMemoryBus := event.NewInMemoryBus(log)
	var eventBus shared.EventBus = inMemoryBus
	if redisClient != nil {
		eventBus = event.NewRedisRelay(redisClient, inMemoryBus, log)
	}
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	commerceClient := commerce.NewClient(cfg.Commerce, log)

	// Session-scoped repositories
	cartRepo := store.NewCartRepository(sessionStore)
	checkoutRepo := store.NewCheckoutRepository(sessionStore)
	authRepo := store.NewAuthRepository(sessionStore)
	imageMapRepo := store.NewImageMapRepository(sessionStore)

	// Application services
	catalogSvc := catalogapp.NewService(commerceClient, imageMapRepo, log)
	cartSvc := cartapp.NewService(cartRepo, commerceClient, eventBus, log)
	checkoutSvc := checkoutapp.NewService(checkoutRepo, cartRepo, commerceClient, eventBus, cfg.Checkout, log)
	orderSvc := orderapp.NewService(commerceClient, log)
	watcher := paymentapp.NewWatcher(commerceClient, eventBus, cfg.Payment, log)
	defer watcher.Stop()
	paymentSvc := paymentapp.NewService(commerceClient, watcher, eventBus, log)
	authSvc := authapp.NewService(commerceClient, authRepo, log)
	adminSvc := adminapp.NewService(commerceClient, imageMapRepo, log)

	center := notificationapp.NewCenter(log)
	eventBus.Subscribe(center, center.EventTypes()...)

	sessionTokens := auth.NewSessionTokenService(cfg.Session)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(cfg.HTTP))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}
	engine.Use(middleware.Session(sessionTokens, authRepo, cfg.Cookie, log))

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewCatalogHandler(catalogSvc)).
		Register(handler.NewCartHandler(cartSvc)).
		Register(handler.NewCheckoutHandler(checkoutSvc)).
		Register(handler.NewOrderHandler(orderSvc, paymentSvc)).
		Register(handler.NewAuthHandler(authSvc)).
		Register(handler.NewNotificationHandler(center)).
		Register(handler.NewAdminHandler(adminSvc, cfg.Commerce.AdminToken, cfg.Commerce.MaxUploadBytes)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
