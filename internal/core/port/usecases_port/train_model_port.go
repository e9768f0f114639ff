package usecases_port

import (
	"context"

	"housing-price-service/internal/core/domain"
)

type TrainModelUseCase interface {
	Execute(ctx context.Context, dataPath string) (domain.EvaluationReport, error)
}
