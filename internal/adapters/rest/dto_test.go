package rest

import (
	"encoding/json"
	"testing"
)

func TestToRecordDefaults(t *testing.T) {
	var dto PredictRequestDTO
	if err := json.Unmarshal([]byte(`{}`), &dto); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}

	rec := dto.ToRecord()
	if rec.PropertyType != "h" {
		t.Errorf("default propertyType = %q, want h", rec.PropertyType)
	}
	if rec.KitchenQuality != 1 {
		t.Errorf("default kitchenQuality = %v, want 1", rec.KitchenQuality)
	}
	if rec.Neighborhood != "" {
		t.Errorf("default neighborhood = %q, want empty", rec.Neighborhood)
	}
	if rec.Bedrooms != 0 || rec.Bathrooms != 0 || rec.SquareFootage != 0 ||
		rec.YearBuilt != 0 || rec.LotSize != 0 || rec.Garage != 0 {
		t.Errorf("numeric defaults should all be 0, got %+v", rec)
	}
	if rec.Basement || rec.CentralAir {
		t.Errorf("boolean defaults should be false, got %+v", rec)
	}
}

func TestToRecordExplicitValuesWin(t *testing.T) {
	payload := `{
		"bedrooms": 4, "bathrooms": 2.5, "squareFootage": 180,
		"yearBuilt": 1987, "neighborhood": "Carlton", "lotSize": 320,
		"garage": 2, "propertyType": "u", "basement": true,
		"centralAir": true, "kitchenQuality": 3
	}`

	var dto PredictRequestDTO
	if err := json.Unmarshal([]byte(payload), &dto); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}

	rec := dto.ToRecord()
	if rec.Bedrooms != 4 || rec.Bathrooms != 2.5 || rec.SquareFootage != 180 {
		t.Errorf("numeric fields not carried over: %+v", rec)
	}
	if rec.Neighborhood != "Carlton" || rec.PropertyType != "u" {
		t.Errorf("categorical fields not carried over: %+v", rec)
	}
	if !rec.Basement || !rec.CentralAir || rec.KitchenQuality != 3 {
		t.Errorf("extra fields not carried over: %+v", rec)
	}
}

func TestToRecordZeroValuesAreNotDefaults(t *testing.T) {
	// An explicit zero must survive; only an absent field gets the default.
	var dto PredictRequestDTO
	if err := json.Unmarshal([]byte(`{"kitchenQuality": 0, "propertyType": ""}`), &dto); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}

	rec := dto.ToRecord()
	if rec.KitchenQuality != 0 {
		t.Errorf("explicit kitchenQuality 0 replaced by default: %v", rec.KitchenQuality)
	}
	if rec.PropertyType != "" {
		t.Errorf("explicit empty propertyType replaced by default: %q", rec.PropertyType)
	}
}
