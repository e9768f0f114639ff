package artifact

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"housing-price-service/internal/core/domain"
	"housing-price-service/internal/ml"
)

// Fixed artifact file names. The ".pkl" names are kept for compatibility
// with the existing frontend and tooling that look for them; the content is
// a gob-encoded Go object, opaque to every consumer.
const (
	pipelineFile      = "housing_model.pkl"
	neighborhoodsFile = "neighborhoods.pkl"
	propertyTypesFile = "property_types.pkl"
)

// Store reads and writes training artifacts under a single directory. Each
// save overwrites the previous artifact at its fixed path.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// PipelinePath is the location of the serialized model pipeline.
func (s *Store) PipelinePath() string {
	return filepath.Join(s.dir, pipelineFile)
}

// HasPipeline reports whether a trained pipeline artifact exists on disk.
func (s *Store) HasPipeline() bool {
	_, err := os.Stat(s.PipelinePath())
	return err == nil
}

// SavePipeline persists the fitted pipeline.
func (s *Store) SavePipeline(p *ml.Pipeline) error {
	return s.save(s.PipelinePath(), p)
}

// LoadPipeline reads the fitted pipeline back from disk.
func (s *Store) LoadPipeline() (*ml.Pipeline, error) {
	f, err := os.Open(s.PipelinePath())
	if err != nil {
		return nil, fmt.Errorf("open model artifact: %w", err)
	}
	defer f.Close()

	var p ml.Pipeline
	if err := gob.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}
	p.Rehydrate()
	return &p, nil
}

// SaveNeighborhoods persists the neighborhood vocabulary.
func (s *Store) SaveNeighborhoods(values []string) error {
	return s.save(filepath.Join(s.dir, neighborhoodsFile), values)
}

// SavePropertyTypes persists the property-type vocabulary. The service does
// not read this file back; it is written for external consumers.
func (s *Store) SavePropertyTypes(values []string) error {
	return s.save(filepath.Join(s.dir, propertyTypesFile), values)
}

// Neighborhoods returns the persisted neighborhood vocabulary in the order
// training produced it.
func (s *Store) Neighborhoods() ([]string, error) {
	path := filepath.Join(s.dir, neighborhoodsFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrVocabularyNotFound
		}
		return nil, fmt.Errorf("open neighborhoods artifact: %w", err)
	}
	defer f.Close()

	var values []string
	if err := gob.NewDecoder(f).Decode(&values); err != nil {
		return nil, fmt.Errorf("decode neighborhoods artifact: %w", err)
	}
	return values, nil
}

func (s *Store) save(path string, value interface{}) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create artifact %s: %w", filepath.Base(path), err)
	}
	if err := gob.NewEncoder(f).Encode(value); err != nil {
		f.Close()
		return fmt.Errorf("encode artifact %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
