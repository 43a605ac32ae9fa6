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

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rcpp-platform/rcpp-api/api/handlers"
	"github.com/rcpp-platform/rcpp-api/config"
)

func main() {
	_ = godotenv.Load()

	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil {
		zap.S().Fatalw("failed to initialize", "error", err)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%v", a.Config.Port),
		Handler: a.Router,
	}

	go func() {
		zap.S().Infow("rcpp-api is up and running",
			"port", a.Config.Port,
			"url", a.Config.BaseURL,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalw("server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zap.S().Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zap.S().Errorw("server shutdown failed", "error", err)
	}
	if err := a.Shutdown(ctx); err != nil {
		zap.S().Errorw("database disconnect failed", "error", err)
	}
}
