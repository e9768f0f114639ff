package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"housing-price-service/internal/adapters/artifact"
	"housing-price-service/internal/core/domain"
	"housing-price-service/internal/core/port"
	"housing-price-service/internal/core/usecase"
	"housing-price-service/internal/ml"
)

type noopLogger struct{}

func (noopLogger) Info(string, port.Fields)         {}
func (noopLogger) Warn(string, port.Fields)         {}
func (noopLogger) Error(string, error, port.Fields) {}
func (noopLogger) Debug(string, port.Fields)        {}
func (l noopLogger) WithFields(port.Fields) port.LoggerPort {
	return l
}

// newTestHandler wires the full API against a temp-dir artifact store. With
// trained=true a small real pipeline and vocabularies are persisted first.
func newTestHandler(t *testing.T, trained bool) http.Handler {
	t.Helper()

	store := artifact.NewStore(t.TempDir())
	if trained {
		f := ml.NewFrame(domain.NumericFeatureColumns, domain.CategoricalFeatureColumns, 4)
		copy(f.Numeric[domain.ColBedrooms], []float64{2, 2, 4, 4})
		copy(f.Numeric[domain.ColBathrooms], []float64{1, 1, 2, 2})
		copy(f.Numeric[domain.ColLotSize], []float64{200, 220, 600, 650})
		copy(f.Numeric[domain.ColSquareFootage], []float64{80, 90, 200, 210})
		copy(f.Numeric[domain.ColYearBuilt], []float64{1990, 1995, 2010, 2012})
		copy(f.Numeric[domain.ColGarage], []float64{0, 1, 2, 2})
		copy(f.Categorical[domain.ColNeighborhood], []string{"Richmond", "Richmond", "Fitzroy", "Fitzroy"})
		copy(f.Categorical[domain.ColPropertyType], []string{"u", "u", "h", "h"})
		y := []float64{300000, 320000, 900000, 950000}

		p := ml.NewPipeline(
			ml.NewFeatureEncoder(domain.NumericFeatureColumns, domain.CategoricalFeatureColumns),
			ml.NewRandomForestRegressor(ml.WithNEstimators(10), ml.WithRandomState(42)),
		)
		if err := p.Fit(f, y); err != nil {
			t.Fatalf("failed to fit test pipeline: %v", err)
		}
		if err := store.SavePipeline(p); err != nil {
			t.Fatalf("failed to save test pipeline: %v", err)
		}
		if err := store.SaveNeighborhoods([]string{"Richmond", "Fitzroy"}); err != nil {
			t.Fatalf("failed to save neighborhoods: %v", err)
		}
		if err := store.SavePropertyTypes([]string{"u", "h"}); err != nil {
			t.Fatalf("failed to save property types: %v", err)
		}
	}

	registry := artifact.NewModelRegistry(store, noopLogger{})
	handlers := NewPredictionHandlers(
		usecase.NewPredictPriceUseCase(registry),
		usecase.NewListNeighborhoodsUseCase(store),
		usecase.NewModelStatusUseCase(registry),
	)
	return NewServer("5000", []string{"*"}, handlers, noopLogger{}).Handler()
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response body is not valid JSON: %v (%s)", err, rec.Body.String())
	}
	return out
}

func TestPredictSuccess(t *testing.T) {
	handler := newTestHandler(t, true)

	rec := doRequest(t, handler, http.MethodPost, "/api/predict", `{
		"bedrooms": 3, "bathrooms": 2, "squareFootage": 150,
		"yearBuilt": 2005, "neighborhood": "Richmond",
		"lotSize": 400, "garage": 1, "propertyType": "h"
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["status"] != "success" {
		t.Errorf("status field = %v, want success", body["status"])
	}
	prediction, ok := body["prediction"].(float64)
	if !ok || prediction <= 0 {
		t.Errorf("prediction = %v, want a positive number", body["prediction"])
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestPredictDefaultsForEmptyObject(t *testing.T) {
	handler := newTestHandler(t, true)

	// Every field absent: defaults substitute and the request still succeeds.
	rec := doRequest(t, handler, http.MethodPost, "/api/predict", `{}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	if body := decodeBody(t, rec); body["status"] != "success" {
		t.Errorf("status field = %v, want success", body["status"])
	}
}

func TestPredictUnknownNeighborhood(t *testing.T) {
	handler := newTestHandler(t, true)

	// A neighborhood the model never saw still yields a prediction.
	rec := doRequest(t, handler, http.MethodPost, "/api/predict", `{"neighborhood": "Atlantis"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestPredictEmptyBody(t *testing.T) {
	handler := newTestHandler(t, true)

	for _, body := range []string{"", "null"} {
		rec := doRequest(t, handler, http.MethodPost, "/api/predict", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
			continue
		}
		if got := decodeBody(t, rec)["error"]; got != "No data received" {
			t.Errorf("body %q: error = %v, want %q", body, got, "No data received")
		}
	}
}

func TestPredictMalformedJSON(t *testing.T) {
	handler := newTestHandler(t, true)

	rec := doRequest(t, handler, http.MethodPost, "/api/predict", `{"bedrooms": `)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "error" {
		t.Errorf("status field = %v, want error", body["status"])
	}
	if body["error"] == "" || body["error"] == nil {
		t.Error("error field should carry the parse error")
	}
}

func TestPredictWithoutModel(t *testing.T) {
	handler := newTestHandler(t, false)

	rec := doRequest(t, handler, http.MethodPost, "/api/predict", `{"bedrooms": 3}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if got := decodeBody(t, rec)["error"]; got != "Model not available. Please train the model first." {
		t.Errorf("error = %v, want the model-not-available message", got)
	}
}

func TestPredictWithoutModelEmptyBody(t *testing.T) {
	handler := newTestHandler(t, false)

	// The model check runs before the body check, so a missing model wins
	// even when the request carries no data.
	rec := doRequest(t, handler, http.MethodPost, "/api/predict", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if got := decodeBody(t, rec)["error"]; got != "Model not available. Please train the model first." {
		t.Errorf("error = %v, want the model-not-available message", got)
	}
}

func TestNeighborhoods(t *testing.T) {
	handler := newTestHandler(t, true)

	rec := doRequest(t, handler, http.MethodGet, "/api/neighborhoods", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body NeighborhoodsResponseDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if body.Status != "success" {
		t.Errorf("status = %q, want success", body.Status)
	}
	want := []string{"Richmond", "Fitzroy"}
	if len(body.Neighborhoods) != len(want) {
		t.Fatalf("neighborhoods = %v, want %v", body.Neighborhoods, want)
	}
	for i := range want {
		if body.Neighborhoods[i] != want[i] {
			t.Errorf("neighborhoods[%d] = %q, want %q (training order must be preserved)", i, body.Neighborhoods[i], want[i])
		}
	}
}

func TestNeighborhoodsNotTrained(t *testing.T) {
	handler := newTestHandler(t, false)

	rec := doRequest(t, handler, http.MethodGet, "/api/neighborhoods", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "error" {
		t.Errorf("status field = %v, want error", body["status"])
	}
	if body["message"] != "Neighborhood data not found" {
		t.Errorf("message = %v, want %q", body["message"], "Neighborhood data not found")
	}
}

func TestModelStatus(t *testing.T) {
	for _, tt := range []struct {
		name    string
		trained bool
	}{
		{"trained", true},
		{"untrained", false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(t, tt.trained)

			if tt.trained {
				// Status reflects the in-memory model, so force the lazy load.
				doRequest(t, handler, http.MethodPost, "/api/predict", `{}`)
			}

			rec := doRequest(t, handler, http.MethodGet, "/api/model/status", "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			var body ModelStatusResponseDTO
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("response body is not valid JSON: %v", err)
			}
			if body.Trained != tt.trained {
				t.Errorf("trained = %v, want %v", body.Trained, tt.trained)
			}
			if body.Status != "success" {
				t.Errorf("status = %q, want success", body.Status)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := newTestHandler(t, false)

	req := httptest.NewRequest(http.MethodOptions, "/api/predict", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("preflight status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != http.MethodPost {
		t.Errorf("Access-Control-Allow-Methods = %q, want POST", got)
	}
}

func TestCORSActualRequest(t *testing.T) {
	handler := newTestHandler(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/model/status", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}
