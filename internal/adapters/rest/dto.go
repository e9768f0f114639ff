package rest

import "housing-price-service/internal/core/domain"

// PredictRequestDTO is the body of POST /api/predict. Every field is
// optional; pointers distinguish "absent" from a zero value so the
// documented defaults can be substituted.
type PredictRequestDTO struct {
	Bedrooms       *float64 `json:"bedrooms"`
	Bathrooms      *float64 `json:"bathrooms"`
	SquareFootage  *float64 `json:"squareFootage"`
	YearBuilt      *float64 `json:"yearBuilt"`
	Neighborhood   *string  `json:"neighborhood"`
	LotSize        *float64 `json:"lotSize"`
	Garage         *float64 `json:"garage"`
	PropertyType   *string  `json:"propertyType"`
	Basement       *bool    `json:"basement"`
	CentralAir     *bool    `json:"centralAir"`
	KitchenQuality *float64 `json:"kitchenQuality"`
}

// ToRecord substitutes the default for every absent field. The defaults are
// part of the prediction contract and must not change: in particular the
// property type falls back to the house code and kitchen quality to 1.
func (d *PredictRequestDTO) ToRecord() domain.PropertyRecord {
	rec := domain.PropertyRecord{
		PropertyType:   "h",
		KitchenQuality: 1,
	}
	if d.Bedrooms != nil {
		rec.Bedrooms = *d.Bedrooms
	}
	if d.Bathrooms != nil {
		rec.Bathrooms = *d.Bathrooms
	}
	if d.SquareFootage != nil {
		rec.SquareFootage = *d.SquareFootage
	}
	if d.YearBuilt != nil {
		rec.YearBuilt = *d.YearBuilt
	}
	if d.Neighborhood != nil {
		rec.Neighborhood = *d.Neighborhood
	}
	if d.LotSize != nil {
		rec.LotSize = *d.LotSize
	}
	if d.Garage != nil {
		rec.Garage = *d.Garage
	}
	if d.PropertyType != nil {
		rec.PropertyType = *d.PropertyType
	}
	if d.Basement != nil {
		rec.Basement = *d.Basement
	}
	if d.CentralAir != nil {
		rec.CentralAir = *d.CentralAir
	}
	if d.KitchenQuality != nil {
		rec.KitchenQuality = *d.KitchenQuality
	}
	return rec
}

// PredictResponseDTO is the success body of POST /api/predict.
type PredictResponseDTO struct {
	Prediction float64 `json:"prediction"`
	Status     string  `json:"status"`
}

// NeighborhoodsResponseDTO is the success body of GET /api/neighborhoods.
type NeighborhoodsResponseDTO struct {
	Status        string   `json:"status"`
	Neighborhoods []string `json:"neighborhoods"`
}

// ModelStatusResponseDTO is the body of GET /api/model/status.
type ModelStatusResponseDTO struct {
	Trained bool   `json:"trained"`
	Status  string `json:"status"`
}
