package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashendes/catalog-service/internal/api"
	"github.com/ashendes/catalog-service/internal/catalog"
	"github.com/ashendes/catalog-service/internal/config"
	"github.com/ashendes/catalog-service/internal/store"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	config.ConfigureLogging(cfg.Log)
	gin.SetMode(gin.ReleaseMode)

	db, err := store.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database: ", err)
		}
	}()

	if cfg.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := db.Migrate(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	svc := catalog.NewService(db, catalog.WithBcryptCost(cfg.BcryptCost))
	router := api.NewRouter(
		api.RouterConfig{ServiceName: cfg.ServiceName, CORSOrigins: cfg.CORS.Origins},
		svc,
		api.NewHealthChecker(db, cfg.Health.Timeout),
	)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"addr":    cfg.Addr(),
			"service": cfg.ServiceName,
		}).Info("Catalog service starting")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
