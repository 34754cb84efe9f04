package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"campusmarket/internal/adapter/api"
	"campusmarket/internal/adapter/api/handler"
	apimiddleware "campusmarket/internal/adapter/api/middleware"
	"campusmarket/internal/adapter/api/router"
	"campusmarket/internal/adapter/repository"
	"campusmarket/internal/infrastructure/auth"
	"campusmarket/internal/infrastructure/ratelimit"
	"campusmarket/internal/infrastructure/seed"
	"campusmarket/internal/infrastructure/websocket"
	"campusmarket/internal/usecase"
	"campusmarket/pkg/config"
	"campusmarket/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.ServerPort, "port", cfg.ServerPort, "port to listen on")
	flag.StringVar(&cfg.SeedFile, "seed", cfg.SeedFile, "YAML catalog to seed from (built-in catalog when empty)")
	flag.StringVar(&cfg.Environment, "env", cfg.Environment, "runtime environment (development or production)")
	flag.Parse()

	logger.SetEnvironment(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	userRepo := repository.NewMemoryUserRepository()
	listingRepo := repository.NewMemoryListingRepository()
	threadRepo := repository.NewMemoryThreadRepository()
	notificationRepo := repository.NewMemoryNotificationRepository()
	draftRepo := repository.NewMemoryDraftRepository()

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.JWTExpiry)*time.Second)

	chatLimiter := ratelimit.NewRateLimiter(ratelimit.DefaultPolicies(), ratelimit.Policy{Burst: 60, Every: time.Second})
	chatLimiter.StartCleanupRoutine(10*time.Minute, ctx.Done())

	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, threadRepo, wsManager, usecase.NotificationConfig{
		TTL:          cfg.NotificationTTL,
		ClearDelay:   cfg.NotificationClearDelay,
		ClickDelay:   cfg.NotificationClickDelay,
		VisibleLimit: cfg.NotificationVisibleLimit,
	})
	defer notificationUseCase.Close()

	draftUseCase := usecase.NewDraftUseCase(draftRepo, cfg.DraftAutosaveDelay)
	defer draftUseCase.Close()

	listingUseCase := usecase.NewListingUseCase(listingRepo, userRepo, threadRepo, draftUseCase, notificationUseCase, wsManager)
	browseUseCase := usecase.NewBrowseUseCase(listingRepo, userRepo)
	userUseCase := usecase.NewUserUseCase(userRepo, listingRepo)
	chatUseCase := usecase.NewChatUseCase(threadRepo, userRepo, listingRepo, notificationUseCase, wsManager, chatLimiter)

	catalog, err := seed.Load(cfg.SeedFile)
	if err != nil {
		logger.Error("Failed to load seed catalog: %v", err)
		os.Exit(1)
	}
	if err := seed.Apply(ctx, catalog, userRepo, listingUseCase, time.Now()); err != nil {
		logger.Error("Failed to seed store: %v", err)
		os.Exit(1)
	}

	handler.Setup(listingUseCase, browseUseCase, userUseCase, draftUseCase, chatUseCase, notificationUseCase)
	handler.SetupHealthHandler(cfg.Environment)
	handler.SetupDevTokenHandler(tokens, userRepo)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	requestLimiter := apimiddleware.NewRateLimiter(cfg.RateLimitRPS)
	requestLimiter.StartCleanup(10*time.Minute, ctx.Done())
	e.Use(requestLimiter.RateLimitMiddleware())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(tokens)
	wsHandler := handler.NewWebSocketHandler(ctx, wsManager, authMiddleware, chatUseCase)

	router.Setup(e, authMiddleware)
	router.SetupDevRouter(e, cfg)
	router.SetupWebSocketRouter(e, wsHandler)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error: %v", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
