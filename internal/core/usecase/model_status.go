package usecase

import (
	"context"

	"housing-price-service/internal/core/port"
)

// ModelStatusUseCase reports whether a trained model is currently loaded.
type ModelStatusUseCase struct {
	registry port.ModelRegistryPort
}

func NewModelStatusUseCase(registry port.ModelRegistryPort) *ModelStatusUseCase {
	return &ModelStatusUseCase{registry: registry}
}

func (uc *ModelStatusUseCase) Execute(ctx context.Context) bool {
	return uc.registry.IsLoaded()
}
