package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/Leadpulse/leadpulse/config"
	"github.com/Leadpulse/leadpulse/internal/app"
	"github.com/Leadpulse/leadpulse/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewLogger().WithField("error", err.Error()).Fatal("Failed to load configuration")
	}

	appLogger := logger.NewLoggerWithLevel(cfg.LogLevel)
	if err := runServer(cfg, appLogger); err != nil && err != http.ErrServerClosed {
		appLogger.WithField("error", err.Error()).Fatal("Server exited with error")
	}
}

func runServer(cfg *config.Config, appLogger logger.Logger) error {
	appInstance := app.NewApp(cfg, app.WithLogger(appLogger))

	if err := appInstance.Initialize(); err != nil {
		return err
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverError := make(chan error, 1)
	go func() {
		serverError <- appInstance.Start()
	}()

	select {
	case err := <-serverError:
		return err
	case sig := <-shutdown:
		appLogger.WithField("signal", sig.String()).Info("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), 35*time.Second)
		defer cancel()
		if err := appInstance.Shutdown(ctx); err != nil {
			return err
		}
		return nil
	}
}
