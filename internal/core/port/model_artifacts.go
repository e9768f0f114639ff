package port

import "housing-price-service/internal/ml"

// ModelArtifactsPort persists the results of a training run. Each artifact
// overwrites any previous one at its fixed path. The property-type list is
// written for compatibility with downstream consumers even though the
// service itself never reads it back.
type ModelArtifactsPort interface {
	SavePipeline(p *ml.Pipeline) error
	SaveNeighborhoods(values []string) error
	SavePropertyTypes(values []string) error
}
