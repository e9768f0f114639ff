package usecases_port

import "context"

type ListNeighborhoodsUseCase interface {
	Execute(ctx context.Context) ([]string, error)
}
