package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"credisight-service/internal/artifact"
	"credisight-service/internal/config"
	"credisight-service/internal/handler"
	"credisight-service/internal/metrics"
	"credisight-service/internal/middleware"
	"credisight-service/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Load artifacts once; they are shared read-only across all requests.
	// Any missing or malformed artifact is fatal.
	bundle, err := artifact.LoadBundle(
		cfg.Artifacts.PreprocessorPath(),
		cfg.Artifacts.LogisticPath(),
		cfg.Artifacts.XGBoostPath(),
	)
	if err != nil {
		log.Fatalf("load artifacts: %v", err)
	}
	log.Info("all artifacts loaded")

	m := metrics.New()

	predictUC := usecase.NewPredictUseCase(bundle)
	explainUC := usecase.NewExplainUseCase(bundle)
	h := handler.New(predictUC, explainUC, m)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), middleware.Metrics(m), gin.Recovery())

	h.RegisterRoutes(router)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
