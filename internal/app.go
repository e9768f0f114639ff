package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"housing-price-service/internal/adapters/artifact"
	logger_adapter "housing-price-service/internal/adapters/logger"
	"housing-price-service/internal/adapters/rest"
	"housing-price-service/internal/configs"
	"housing-price-service/internal/core/port"
	"housing-price-service/internal/core/usecase"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// App is the long-running prediction service: config, loggers, the model
// registry and the REST API wired together.
type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server

	logger       port.LoggerPort
	fluentClient *fluent.Fluent // kept for a clean close on shutdown
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, fluentClient, err := buildLoggers(appConfig)
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// Artifact store and the process-wide model handle.
	store := artifact.NewStore(appConfig.Model.Dir)
	registry := artifact.NewModelRegistry(store, baseLogger.WithFields(port.Fields{"component": "model_registry"}))

	// Load the model at startup when the artifact is already there. When it
	// is not, the first prediction request triggers a lazy load attempt.
	if store.HasPipeline() {
		if err := registry.Load(); err != nil {
			appLogger.Warn("Model artifact exists but could not be loaded", port.Fields{"error": err.Error()})
		}
	} else {
		appLogger.Warn("No model artifact found, starting without a model", port.Fields{
			"path": store.PipelinePath(),
		})
	}

	predictUC := usecase.NewPredictPriceUseCase(registry)
	neighborhoodsUC := usecase.NewListNeighborhoodsUseCase(store)
	statusUC := usecase.NewModelStatusUseCase(registry)
	appLogger.Info("All use cases initialized", nil)

	apiHandlers := rest.NewPredictionHandlers(predictUC, neighborhoodsUC, statusUC)
	apiServer := rest.NewServer(appConfig.Rest.Port, appConfig.Rest.AllowedOrigins, apiHandlers, baseLogger)

	return &App{
		config:       appConfig,
		apiServer:    apiServer,
		logger:       appLogger,
		fluentClient: fluentClient,
	}, nil
}

// Run starts the HTTP server and blocks until an OS signal or a server
// error, then shuts everything down gracefully.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Log to stdout, fluent itself may already be unreachable.
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.Port})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	case err := <-serverErrors:
		a.logger.Error("HTTP server failed to start, shutting down", err, nil)
	}

	cancelApp()
	return nil
}

// buildLoggers assembles the stdout logger and, when enabled, the Fluent
// Bit logger into one composite logger bound to the application name.
func buildLoggers(appConfig *configs.AppConfig) (port.LoggerPort, *fluent.Fluent, error) {
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		var err error
		fluentClient, err = logger_adapter.NewFluentClient(logger_adapter.FluentClientConfig{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})
	return baseLogger, fluentClient, nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
