package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/labstack/echo/v4"

	"auctions/internal/auth"
	"auctions/internal/cache"
	"auctions/internal/config"
	"auctions/internal/db"
	"auctions/internal/events"
	"auctions/internal/handler"
	"auctions/internal/logger"
	"auctions/internal/repository"
	"auctions/internal/router"
	"auctions/internal/service"
)

// @title Auctions API
// @version 1.0
// @description Online auction marketplace: listings, bids, comments and watchlists.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", map[string]any{"error": err.Error()})
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("database init failed", map[string]any{"error": err.Error(), "driver": cfg.DBDriver})
	}
	if cfg.ResetDB {
		logger.Warn("RESET_DB=true detected, dropping all tables", nil)
		if err := db.Reset(gormDB); err != nil {
			logger.Fatal("database reset failed", map[string]any{"error": err.Error()})
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Fatal("auto-migrate failed", map[string]any{"error": err.Error()})
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(context.Background()); err != nil {
		logger.Warn("redis unavailable, caching and session revocation disabled", map[string]any{"error": err.Error()})
	}

	publisher := events.Connect(cfg.AMQPURL, cfg.EventsExchange)
	defer publisher.Close()

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	listingRepo := repository.NewListingRepository(gormDB)
	auctionRepo := repository.NewAuctionRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	watchlistRepo := repository.NewWatchlistRepository(gormDB)

	// Auth
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.SessionTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Services
	userService := service.NewUserService(userRepo, cacheClient)
	authService := service.NewAuthService(userRepo, userService, jwtService, tokenStore, cfg.BcryptCost)
	categoryService := service.NewCategoryService(categoryRepo, cacheClient)
	auctionService := service.NewAuctionService(auctionRepo, userRepo, publisher)
	listingService := service.NewListingService(listingRepo, categoryRepo, auctionRepo, commentRepo, watchlistRepo, cfg.PageRadius)
	watchlistService := service.NewWatchlistService(watchlistRepo, listingRepo)
	commentService := service.NewCommentService(commentRepo, listingRepo)

	layout := handler.Layout{PageSize: cfg.PageSize, Columns: cfg.GridColumns}
	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authService, handler.CookieConfig{Name: cfg.SessionCookie, Secure: cfg.CookieSecure}),
		Listing:  handler.NewListingHandler(listingService, auctionService, watchlistService, commentService, categoryService, layout),
		Category: handler.NewCategoryHandler(categoryService, listingService, layout),
		User:     handler.NewUserHandler(userService),
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, handlers, jwtService, authService)

	logger.Info("Swagger documentation available", map[string]any{"url": swaggerURL(cfg)})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info("server starting", map[string]any{"addr": addr})
		if err := e.Start(addr); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server start failed", map[string]any{"error": err.Error()})
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", map[string]any{"error": err.Error()})
	}
	logger.Info("server stopped", nil)
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return strings.TrimRight(host, "/") + "/swagger/index.html"
}
