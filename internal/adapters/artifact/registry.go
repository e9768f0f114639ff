package artifact

import (
	"fmt"
	"sync"

	"housing-price-service/internal/core/domain"
	"housing-price-service/internal/core/port"
	"housing-price-service/internal/ml"
)

// ModelRegistry owns the process-wide reference to the loaded pipeline. The
// reference is written on load and only read afterwards; there is no unload
// or hot-reload transition. A mutex guards the load-then-use sequence so
// concurrent first requests trigger at most one load.
type ModelRegistry struct {
	store  *Store
	logger port.LoggerPort

	mu       sync.RWMutex
	pipeline *ml.Pipeline
}

// NewModelRegistry creates a registry backed by the given artifact store.
func NewModelRegistry(store *Store, logger port.LoggerPort) *ModelRegistry {
	return &ModelRegistry{store: store, logger: logger}
}

// IsLoaded reports whether a pipeline is currently held in memory.
func (r *ModelRegistry) IsLoaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pipeline != nil
}

// Load reads the pipeline artifact from disk and installs it. Loading is
// idempotent; a pipeline that is already installed stays in place.
func (r *ModelRegistry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pipeline != nil {
		return nil
	}
	p, err := r.store.LoadPipeline()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrModelNotAvailable, err)
	}
	r.pipeline = p
	r.logger.Info("Model loaded successfully", port.Fields{"path": r.store.PipelinePath()})
	return nil
}

// Predict encodes the record with the fitted pipeline and returns the
// predicted price. When no pipeline is loaded yet it attempts the load on
// demand first.
func (r *ModelRegistry) Predict(record domain.PropertyRecord) (float64, error) {
	r.mu.RLock()
	p := r.pipeline
	r.mu.RUnlock()

	if p == nil {
		if err := r.Load(); err != nil {
			return 0, err
		}
		r.mu.RLock()
		p = r.pipeline
		r.mu.RUnlock()
	}

	return p.Predict(ml.Row{
		Numeric:     record.NumericFeatures(),
		Categorical: record.CategoricalFeatures(),
	})
}
