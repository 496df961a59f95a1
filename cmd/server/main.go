package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"shopper/internal/authz"
	"shopper/internal/config"
	"shopper/internal/events"
	"shopper/internal/httpserver"
	"shopper/internal/logging"
	"shopper/internal/repo"
	"shopper/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
	}

	gormRepo := &repo.GormRepo{DB: db}

	authSvc := &service.AuthService{Repo: gormRepo, JWTSecret: cfg.JWTSecret, RefreshSecret: cfg.RefreshSecret}
	cartSvc := &service.CartService{Repo: gormRepo}
	catalogSvc := &service.CatalogService{Repo: gormRepo}
	userSvc := &service.UserService{Repo: gormRepo}

	gate := &authz.Gate{Repo: gormRepo, JWTSecret: cfg.JWTSecret}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(logging.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		Gate:           gate,
		AuthHandler:    &httpserver.AuthHandler{Svc: authSvc, Events: producer},
		CartHandler:    &httpserver.CartHandler{Svc: cartSvc, Events: producer},
		ProductHandler: &httpserver.ProductHandler{Svc: catalogSvc, Events: producer},
		UserHandler:    &httpserver.UserHandler{Svc: userSvc, Events: producer},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	logger.Info("shutdown complete")
}
