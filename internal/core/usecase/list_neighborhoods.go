package usecase

import (
	"context"

	"housing-price-service/internal/contextkeys"
	"housing-price-service/internal/core/port"
)

// ListNeighborhoodsUseCase returns the neighborhood vocabulary captured at
// training time, in the order training produced it.
type ListNeighborhoodsUseCase struct {
	vocabulary port.VocabularyStorePort
}

func NewListNeighborhoodsUseCase(vocabulary port.VocabularyStorePort) *ListNeighborhoodsUseCase {
	return &ListNeighborhoodsUseCase{vocabulary: vocabulary}
}

func (uc *ListNeighborhoodsUseCase) Execute(ctx context.Context) ([]string, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "ListNeighborhoods"})

	values, err := uc.vocabulary.Neighborhoods()
	if err != nil {
		logger.Error("Could not read neighborhood vocabulary", err, nil)
		return nil, err
	}
	return values, nil
}
