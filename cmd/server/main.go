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

	"github.com/packnbake/storefront/internal/config"
	"github.com/packnbake/storefront/internal/db"
	"github.com/packnbake/storefront/internal/events"
	"github.com/packnbake/storefront/internal/httpserver"
	"github.com/packnbake/storefront/internal/idgen"
	"github.com/packnbake/storefront/internal/logging"
	authmw "github.com/packnbake/storefront/internal/middleware/auth"
	loggingmw "github.com/packnbake/storefront/internal/middleware/logging"
	"github.com/packnbake/storefront/internal/repo"
	"github.com/packnbake/storefront/internal/search"
	"github.com/packnbake/storefront/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()

	database, err := db.Open(ctx, cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatalf("database migrate: %v", err)
	}

	ids := idgen.UUID{}
	if err := db.Seed(database, ids); err != nil {
		log.Fatalf("database seed: %v", err)
	}

	var producer events.Producer = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaProducer(cfg.KafkaBrokers)
		defer kp.Close()
		producer = kp
	}

	var searchClient *search.Client
	if cfg.ESURL != "" {
		searchClient, err = search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch init: %v", err)
		}
	}

	store := repo.New(database, ids)

	authSvc := &service.AuthService{
		Repo:          store,
		IDs:           ids,
		JWTSecret:     cfg.JWTSecret,
		RefreshSecret: cfg.RefreshSecret,
	}
	catalogSvc := &service.CatalogService{Repo: store}
	cartSvc := &service.CartService{Repo: store}
	orderSvc := &service.OrderService{Repo: store, IDs: ids}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	deps := &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc, Producer: producer},
		ProductHandler: &httpserver.ProductHTTP{Svc: catalogSvc, Producer: producer, Search: searchClient},
		CartHandler:    &httpserver.CartHTTP{Svc: cartSvc},
		OrderHandler:   &httpserver.OrderHTTP{Svc: orderSvc, Producer: producer},
		Tokens:         &authmw.TokenMiddleware{JWTSecret: cfg.JWTSecret},
		IDs:            ids,
	}
	if searchClient != nil {
		deps.SearchHandler = &httpserver.SearchHTTP{Client: searchClient}
	}
	httpserver.Register(e, deps)

	go func() {
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()
	logger.Info("server started", "addr", cfg.Addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
