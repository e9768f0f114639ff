package port

import (
	"context"

	"housing-price-service/internal/core/domain"
)

// SalesDatasetPort loads the historical sales used to fit the model.
type SalesDatasetPort interface {
	Load(ctx context.Context, path string) ([]domain.SalesRecord, error)
}
