package internal

import (
	"context"
	"fmt"

	"housing-price-service/internal/adapters/artifact"
	"housing-price-service/internal/adapters/dataset"
	"housing-price-service/internal/configs"
	"housing-price-service/internal/contextkeys"
	"housing-price-service/internal/core/port"
	"housing-price-service/internal/core/port/usecases_port"
	"housing-price-service/internal/core/usecase"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// TrainerApp is the offline training run: it reads the historical sales
// file, fits the pipeline and writes the artifacts the prediction service
// loads. It shares configuration and logging with the service.
type TrainerApp struct {
	config       *configs.AppConfig
	logger       port.LoggerPort
	trainUC      usecases_port.TrainModelUseCase
	fluentClient *fluent.Fluent
}

func NewTrainerApp() (*TrainerApp, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, fluentClient, err := buildLoggers(appConfig)
	if err != nil {
		return nil, err
	}

	store := artifact.NewStore(appConfig.Model.Dir)
	trainUC := usecase.NewTrainModelUseCase(dataset.NewCSVReader(), store)

	return &TrainerApp{
		config:       appConfig,
		logger:       baseLogger.WithFields(port.Fields{"component": "trainer"}),
		trainUC:      trainUC,
		fluentClient: fluentClient,
	}, nil
}

// Run executes one training run. An empty dataPath falls back to the
// configured training data file.
func (t *TrainerApp) Run(ctx context.Context, dataPath string) error {
	defer func() {
		if t.fluentClient != nil {
			if err := t.fluentClient.Close(); err != nil {
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	if dataPath == "" {
		dataPath = t.config.Training.DataPath
	}

	ctx = contextkeys.ContextWithLogger(ctx, t.logger)
	t.logger.Info("Training run starting", port.Fields{
		"data":      dataPath,
		"model_dir": t.config.Model.Dir,
	})

	report, err := t.trainUC.Execute(ctx, dataPath)
	if err != nil {
		t.logger.Error("Training run failed", err, nil)
		return err
	}

	t.logger.Info("Model trained and persisted", port.Fields{
		"rmse":           report.RMSE,
		"r2":             report.R2,
		"train_rows":     report.TrainRows,
		"test_rows":      report.TestRows,
		"neighborhoods":  report.Neighborhoods,
		"property_types": report.PropertyTypes,
	})
	return nil
}
