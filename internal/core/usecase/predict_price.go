package usecase

import (
	"context"

	"housing-price-service/internal/contextkeys"
	"housing-price-service/internal/core/domain"
	"housing-price-service/internal/core/port"
)

// PredictPriceUseCase answers a single-record price prediction against the
// loaded model. The registry performs a lazy load if the model has not been
// loaded yet.
type PredictPriceUseCase struct {
	registry port.ModelRegistryPort
}

func NewPredictPriceUseCase(registry port.ModelRegistryPort) *PredictPriceUseCase {
	return &PredictPriceUseCase{registry: registry}
}

// EnsureModel makes sure a trained pipeline is in memory, loading it lazily
// when needed. Prediction requests check this before touching the body, so a
// missing model answers the same way regardless of the payload.
func (uc *PredictPriceUseCase) EnsureModel(ctx context.Context) error {
	if uc.registry.IsLoaded() {
		return nil
	}
	if err := uc.registry.Load(); err != nil {
		contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "PredictPrice"}).
			Error("Model load failed", err, nil)
		return err
	}
	return nil
}

func (uc *PredictPriceUseCase) Execute(ctx context.Context, record domain.PropertyRecord) (float64, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "PredictPrice"})

	price, err := uc.registry.Predict(record)
	if err != nil {
		logger.Error("Prediction failed", err, nil)
		return 0, err
	}

	logger.Debug("Prediction computed", port.Fields{"prediction": price})
	return price, nil
}
