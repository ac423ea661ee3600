package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"tabpulse/internal/config"
	"tabpulse/internal/dataprocessing"
	"tabpulse/internal/infrastructure"
	"tabpulse/internal/services"
	transport "tabpulse/internal/transport/http"
	"tabpulse/pkg/contracts"
)

// Version is overridable at build time with -ldflags.
var Version = contracts.Version

// Application is the assembled server.
type Application struct {
	Config  *config.Config
	Logger  *slog.Logger
	Router  chi.Router
	Server  *http.Server
	Service *services.AnalysisService
}

// NewApplication loads configuration and builds the full dependency graph.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port))

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	service := services.NewAnalysisService(logger, dataprocessing.ProcessorConfig{
		CategoricalMaxRatio:  cfg.Processing.CategoricalMaxRatio,
		CategoricalMinValues: cfg.Processing.CategoricalMinValues,
	})

	router := transport.NewRouter(transport.RouterConfig{
		Config:  cfg,
		Logger:  logger,
		Service: service,
		Version: Version,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Application{
		Config:  cfg,
		Logger:  logger,
		Router:  router,
		Server:  server,
		Service: service,
	}, nil
}

// Run serves until the process receives an interrupt, then shuts down
// within the configured timeout. The serve and shutdown goroutines are tied
// together so a listen failure also unwinds the waiter.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.InfoContext(ctx, "HTTP server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.Logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil
	})

	err := g.Wait()
	_ = infrastructure.CloseLogFile()
	if err != nil {
		return err
	}
	a.Logger.Info("shutdown complete")
	return nil
}
