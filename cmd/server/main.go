package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	boardapp "github.com/boardhub/backend/internal/application/board"
	categoryapp "github.com/boardhub/backend/internal/application/category"
	navapp "github.com/boardhub/backend/internal/application/navigation"
	"github.com/boardhub/backend/internal/domain/category"
	"github.com/boardhub/backend/internal/domain/navigation"
	"github.com/boardhub/backend/internal/domain/tree"
	"github.com/boardhub/backend/internal/infrastructure/cache"
	"github.com/boardhub/backend/internal/infrastructure/config"
	"github.com/boardhub/backend/internal/infrastructure/logger"
	"github.com/boardhub/backend/internal/infrastructure/persistence"
	"github.com/boardhub/backend/internal/interfaces/http/handler"
	"github.com/boardhub/backend/internal/interfaces/http/middleware"
	"github.com/boardhub/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting BoardHub Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	newDB := persistence.NewDatabase
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		newDB = persistence.NewDatabaseWithTracing
	}
	db, err := newDB(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories and transaction runner
	txRunner := persistence.NewGormTxRunner(db.DB)
	boardRepo := persistence.NewGormBoardRepository(db.DB)
	categoryRepo := persistence.NewCategoryRepository(db.DB)
	menuRepo := persistence.NewMenuItemRepository(db.DB)
	postCounter := persistence.NewPostCounter(db.DB)

	// Menu cache
	var menuCache navapp.MenuCache = navapp.NoopMenuCache{}
	if cfg.Cache.Enabled {
		redisCache, err := cache.NewRedisMenuCache(cfg.Redis, cfg.Cache.TTL, log)
		if err != nil {
			log.Warn("Redis unavailable, menu cache disabled", zap.Error(err))
		} else {
			menuCache = redisCache
			defer func() {
				if err := redisCache.Close(); err != nil {
					log.Error("Error closing redis client", zap.Error(err))
				}
			}()
			log.Info("Menu cache enabled", zap.Duration("ttl", cfg.Cache.TTL))
		}
	}

	// Tree engines
	categoryGuard := categoryapp.NewBoardScopeGuard(boardRepo, categoryRepo)
	categoryMutations := tree.NewMutationEngine[*category.Category](
		categoryRepo, categoryGuard, postCounter, txRunner, cfg.Tree.MaxCategoryDepth, log)
	categoryQueries := tree.NewQueryEngine[*category.Category](categoryRepo)

	menuGuard := navapp.NewMenuScopeGuard(menuRepo)
	menuMutations := tree.NewMutationEngine[*navigation.MenuItem](
		menuRepo, menuGuard, nil, txRunner, cfg.Tree.MaxMenuDepth, log)
	menuQueries := tree.NewQueryEngine[*navigation.MenuItem](menuRepo)

	// Application services
	boardService := boardapp.NewService(boardRepo)
	categoryService := categoryapp.NewService(categoryMutations, categoryQueries)
	menuService := navapp.NewService(menuMutations, menuQueries, txRunner, menuCache, log)

	// HTTP handlers
	boardHandler := handler.NewBoardHandler(boardService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	menuHandler := handler.NewMenuHandler(menuService)
	healthHandler := handler.NewHealthHandler(db)

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
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.GET("/health", healthHandler.Health)
	engine.GET("/ready", healthHandler.Ready)

	r := router.New(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.Tenant())
	r.Register(
		router.BoardRoutes(boardHandler),
		router.CategoryRoutes(categoryHandler),
		router.MenuRoutes(menuHandler),
	)
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
