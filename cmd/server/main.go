package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/techhub-shop/techhub/internal/config"
	"github.com/techhub-shop/techhub/internal/es"
	"github.com/techhub-shop/techhub/internal/handlers"
	"github.com/techhub-shop/techhub/internal/logging"
	authmw "github.com/techhub-shop/techhub/internal/middleware/auth"
	loggingmw "github.com/techhub-shop/techhub/internal/middleware/logging"
	"github.com/techhub-shop/techhub/internal/mykafka"
	"github.com/techhub-shop/techhub/internal/repo"
	"github.com/techhub-shop/techhub/internal/service"
	"github.com/techhub-shop/techhub/internal/session"
	"github.com/techhub-shop/techhub/internal/token"
	httpserver "github.com/techhub-shop/techhub/internal/transport/http"
	"github.com/techhub-shop/techhub/internal/view"
)

const productIndex = "products"

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("Ошибка инициализации БД: %v", err)
	}

	var sessions session.Store
	if configuration.SESSION_BACKEND == "redis" {
		config.MustNonEmpty(configuration.REDIS_ADDR, "REDIS_ADDR")
		client := redis.NewClient(&redis.Options{Addr: configuration.REDIS_ADDR})
		sessions = session.NewRedisStore(client, configuration.SESSION_TTL)
	} else {
		sessions = session.NewMemoryStore()
	}

	var producer mykafka.Publisher = mykafka.NopPublisher{}
	if configuration.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	gormRepo := repo.New(db)
	tokens := &token.Service{
		Secret: []byte(configuration.JWT_SECRET),
		TTL:    configuration.ACCESS_TTL,
	}
	authSvc := &service.AuthService{Repo: gormRepo, Tokens: tokens, Events: producer}
	cartSvc := &service.CartService{Sessions: sessions, Repo: gormRepo}
	reviewSvc := &service.ReviewService{Repo: gormRepo, Events: producer}

	deps := &httpserver.Deps{
		Auth:      &handlers.AuthHandler{Svc: authSvc},
		Cart:      &handlers.CartHandler{Svc: cartSvc},
		Reviews:   &handlers.ReviewHandler{Svc: reviewSvc},
		Products:  &handlers.ProductHandler{Repo: gormRepo, Producer: producer},
		Pages:     &handlers.PageHandler{Repo: gormRepo},
		AuthMW:    &authmw.Middleware{Svc: authSvc},
		SessionMW: session.Middleware(sessions, configuration.COOKIE_SECURE),
	}

	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
		deps.Products.ES = esClient
		deps.Products.Index = productIndex
		deps.Search = &handlers.SearchHandler{ES: esClient, Index: productIndex}
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatalf("Ошибка загрузки шаблонов: %v", err)
	}
	e.Renderer = renderer

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", configuration.SERVER_PORT),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

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

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
