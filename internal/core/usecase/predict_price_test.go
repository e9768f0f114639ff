package usecase

import (
	"context"
	"errors"
	"testing"

	"housing-price-service/internal/core/domain"
)

// stubRegistry satisfies port.ModelRegistryPort with canned answers.
type stubRegistry struct {
	loaded bool
	price  float64
	err    error
}

func (s *stubRegistry) Load() error    { return s.err }
func (s *stubRegistry) IsLoaded() bool { return s.loaded }
func (s *stubRegistry) Predict(domain.PropertyRecord) (float64, error) {
	return s.price, s.err
}

func TestPredictPriceUseCase(t *testing.T) {
	uc := NewPredictPriceUseCase(&stubRegistry{price: 750000})

	price, err := uc.Execute(context.Background(), domain.PropertyRecord{Bedrooms: 3})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if price != 750000 {
		t.Errorf("price = %v, want 750000", price)
	}
}

func TestPredictPriceUseCasePropagatesError(t *testing.T) {
	uc := NewPredictPriceUseCase(&stubRegistry{err: domain.ErrModelNotAvailable})

	_, err := uc.Execute(context.Background(), domain.PropertyRecord{})
	if !errors.Is(err, domain.ErrModelNotAvailable) {
		t.Errorf("Execute returned %v, want ErrModelNotAvailable", err)
	}
}

func TestEnsureModelLoadsLazily(t *testing.T) {
	uc := NewPredictPriceUseCase(&stubRegistry{})
	if err := uc.EnsureModel(context.Background()); err != nil {
		t.Errorf("EnsureModel returned error for a loadable registry: %v", err)
	}
}

func TestEnsureModelSkipsLoadWhenLoaded(t *testing.T) {
	// A loaded registry must not be reloaded, even if a load would fail.
	uc := NewPredictPriceUseCase(&stubRegistry{loaded: true, err: errors.New("artifact gone")})
	if err := uc.EnsureModel(context.Background()); err != nil {
		t.Errorf("EnsureModel returned error for a loaded registry: %v", err)
	}
}

func TestEnsureModelPropagatesLoadFailure(t *testing.T) {
	uc := NewPredictPriceUseCase(&stubRegistry{err: domain.ErrModelNotAvailable})
	if err := uc.EnsureModel(context.Background()); !errors.Is(err, domain.ErrModelNotAvailable) {
		t.Errorf("EnsureModel returned %v, want ErrModelNotAvailable", err)
	}
}

func TestModelStatusUseCase(t *testing.T) {
	if got := NewModelStatusUseCase(&stubRegistry{loaded: true}).Execute(context.Background()); !got {
		t.Error("Execute = false for a loaded registry")
	}
	if got := NewModelStatusUseCase(&stubRegistry{}).Execute(context.Background()); got {
		t.Error("Execute = true for an empty registry")
	}
}

// stubVocabulary satisfies port.VocabularyStorePort.
type stubVocabulary struct {
	values []string
	err    error
}

func (s *stubVocabulary) Neighborhoods() ([]string, error) { return s.values, s.err }

func TestListNeighborhoodsUseCase(t *testing.T) {
	want := []string{"Richmond", "Fitzroy"}
	uc := NewListNeighborhoodsUseCase(&stubVocabulary{values: want})

	got, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(got) != 2 || got[0] != "Richmond" || got[1] != "Fitzroy" {
		t.Errorf("Execute = %v, want %v", got, want)
	}
}

func TestListNeighborhoodsUseCasePropagatesError(t *testing.T) {
	uc := NewListNeighborhoodsUseCase(&stubVocabulary{err: domain.ErrVocabularyNotFound})

	if _, err := uc.Execute(context.Background()); !errors.Is(err, domain.ErrVocabularyNotFound) {
		t.Errorf("Execute returned %v, want ErrVocabularyNotFound", err)
	}
}
