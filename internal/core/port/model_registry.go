package port

import "housing-price-service/internal/core/domain"

// ModelRegistryPort is the process-wide handle on the trained pipeline.
// The model is either loaded or not; there is no unload transition. Predict
// attempts a lazy load when the model is not loaded yet and returns
// domain.ErrModelNotAvailable if that fails.
type ModelRegistryPort interface {
	Load() error
	IsLoaded() bool
	Predict(record domain.PropertyRecord) (float64, error)
}
