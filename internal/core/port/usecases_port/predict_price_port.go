package usecases_port

import (
	"context"

	"housing-price-service/internal/core/domain"
)

type PredictPriceUseCase interface {
	// EnsureModel loads the trained model if it is not in memory yet.
	EnsureModel(ctx context.Context) error

	Execute(ctx context.Context, record domain.PropertyRecord) (float64, error)
}
