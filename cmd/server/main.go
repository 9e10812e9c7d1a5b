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

	"github.com/cocomarket/shop/internal/config"
	"github.com/cocomarket/shop/internal/es"
	"github.com/cocomarket/shop/internal/handlers"
	"github.com/cocomarket/shop/internal/logging"
	"github.com/cocomarket/shop/internal/mykafka"
	"github.com/cocomarket/shop/internal/service/token"
	httpserver "github.com/cocomarket/shop/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	prod := mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})

	esClient, err := es.NewClient(configuration)
	if err != nil {
		// search stays down, the rest of the shop keeps serving
		logger.Warn("elasticsearch unavailable", "error", err)
		esClient = nil
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), logging.RequestLogger(logger))

	tokenService := &token.TokenService{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret}

	deps := httpserver.Deps{
		DB:            db,
		AuthHandler:   &handlers.AuthHandler{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret, Producer: prod},
		GoodsHandler:  &handlers.GoodsHandler{DB: db, Producer: prod, ES: esClient, ESIndex: configuration.ES_INDEX, JWTSecret: jwtSecret},
		QAHandler:     &handlers.QAHandler{DB: db, Producer: prod, JWTSecret: jwtSecret},
		ReviewHandler: &handlers.ReviewHandler{DB: db, Producer: prod, JWTSecret: jwtSecret},
		OrderHandler:  &handlers.OrderHandler{DB: db, Producer: prod, JWTSecret: jwtSecret},
		SearchHandler: &handlers.SearchHandler{ES: esClient, Index: configuration.ES_INDEX},
		TokenService:  tokenService,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	} else {
		logger.Error("db handle error", "error", err)
	}

	if err := prod.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
