package core

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pulseboard/internal/dashboard"
	m "pulseboard/internal/middlewares"
	"pulseboard/internal/models"
	"pulseboard/internal/refresh"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger rebuilds the global zap logger at the configured level.
func NewLogger(level string) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		zap.L().Warn("Unknown log level, keeping info", zap.String("level", level))
		parsed = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(parsed)
	zap.ReplaceGlobals(zap.Must(config.Build()))
}

// StartHTTPServer serves the dashboard until SIGINT/SIGTERM, then shuts the
// server down gracefully and closes the controller so no fetch cycle
// outlives the process.
func StartHTTPServer(config models.Configuration, controller *refresh.Controller) {
	r := chi.NewRouter()

	r.Use(middleware.Timeout(5 * time.Second))
	r.Use(m.Logger)
	r.Use(middleware.Recoverer)

	if len(config.App.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: config.App.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Mount("/", dashboard.Service{
		Controller: controller,
		Validate:   validator.New(),
	}.Routes())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.App.Port),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  5 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		zap.L().Info("HTTP server starting", zap.Int("port", config.App.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Error("Failed to start the app", zap.Error(err))
		}
	}()

	<-shutdown
	zap.L().Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zap.L().Error("HTTP server shutdown failed", zap.Error(err))
	}

	controller.Close()
}
