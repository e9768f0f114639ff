package domain

import "math"

// Feature column names shared by the training pipeline and the prediction
// service. The two sides must agree on this set exactly: the fitted model
// selects its input columns by name and silently produces garbage if the
// schemas drift apart.
const (
	ColBedrooms      = "bedrooms"
	ColBathrooms     = "bathrooms"
	ColLotSize       = "lotSize"
	ColSquareFootage = "squareFootage"
	ColYearBuilt     = "yearBuilt"
	ColGarage        = "garage"
	ColNeighborhood  = "neighborhood"
	ColPropertyType  = "propertyType"
)

// NumericFeatureColumns lists the columns the model is trained on as
// numbers, in the order they enter the feature matrix.
var NumericFeatureColumns = []string{
	ColBedrooms,
	ColBathrooms,
	ColLotSize,
	ColSquareFootage,
	ColYearBuilt,
	ColGarage,
}

// CategoricalFeatureColumns lists the columns that are one-hot encoded.
var CategoricalFeatureColumns = []string{
	ColNeighborhood,
	ColPropertyType,
}

// PropertyRecord is the single entity of the system: one property described
// by the attributes a caller may submit for pricing. Numeric fields may hold
// math.NaN() to mark a missing value in training data.
type PropertyRecord struct {
	Bedrooms       float64
	Bathrooms      float64
	SquareFootage  float64
	YearBuilt      float64
	Neighborhood   string
	LotSize        float64
	Garage         float64
	PropertyType   string
	Basement       bool
	CentralAir     bool
	KitchenQuality float64
}

// NumericFeatures returns the record's numeric attributes keyed by column
// name. The three extra attributes (basement, centralAir, kitchenQuality)
// ride along exactly as the original service sent them; the fitted model
// picks the columns it was trained on and ignores the rest.
func (r PropertyRecord) NumericFeatures() map[string]float64 {
	basement, centralAir := 0.0, 0.0
	if r.Basement {
		basement = 1
	}
	if r.CentralAir {
		centralAir = 1
	}
	return map[string]float64{
		ColBedrooms:      r.Bedrooms,
		ColBathrooms:     r.Bathrooms,
		ColLotSize:       r.LotSize,
		ColSquareFootage: r.SquareFootage,
		ColYearBuilt:     r.YearBuilt,
		ColGarage:        r.Garage,
		"basement":       basement,
		"centralAir":     centralAir,
		"kitchenQuality": r.KitchenQuality,
	}
}

// CategoricalFeatures returns the record's categorical attributes keyed by
// column name. An empty string marks a missing value.
func (r PropertyRecord) CategoricalFeatures() map[string]string {
	return map[string]string{
		ColNeighborhood: r.Neighborhood,
		ColPropertyType: r.PropertyType,
	}
}

// SalesRecord is one historical observation: a property plus the price it
// actually sold for.
type SalesRecord struct {
	PropertyRecord
	Price float64
}

// EvaluationReport carries the diagnostic metrics of a training run. It is
// logged and returned to the caller but never persisted.
type EvaluationReport struct {
	RMSE          float64
	R2            float64
	TrainRows     int
	TestRows      int
	Neighborhoods int
	PropertyTypes int
}

// IsMissing reports whether a numeric value marks a missing observation.
func IsMissing(v float64) bool { return math.IsNaN(v) }
