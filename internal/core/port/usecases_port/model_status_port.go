package usecases_port

import "context"

type ModelStatusUseCase interface {
	Execute(ctx context.Context) bool
}
