package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"housing-price-service/internal/contextkeys"
	"housing-price-service/internal/core/domain"
	"housing-price-service/internal/core/port"
	"housing-price-service/internal/core/port/usecases_port"
)

// Fixed response messages. Frontend code matches on these strings, so they
// are part of the API contract.
const (
	msgModelNotAvailable    = "Model not available. Please train the model first."
	msgNoDataReceived       = "No data received"
	msgNeighborhoodNotFound = "Neighborhood data not found"
)

// PredictionHandlers bundles the HTTP handlers of the prediction API.
type PredictionHandlers struct {
	predictUC       usecases_port.PredictPriceUseCase
	neighborhoodsUC usecases_port.ListNeighborhoodsUseCase
	statusUC        usecases_port.ModelStatusUseCase
}

// NewPredictionHandlers is the constructor for the handlers.
func NewPredictionHandlers(
	predictUC usecases_port.PredictPriceUseCase,
	neighborhoodsUC usecases_port.ListNeighborhoodsUseCase,
	statusUC usecases_port.ModelStatusUseCase,
) *PredictionHandlers {
	return &PredictionHandlers{
		predictUC:       predictUC,
		neighborhoodsUC: neighborhoodsUC,
		statusUC:        statusUC,
	}
}

// HandlePredict serves POST /api/predict.
func (h *PredictionHandlers) HandlePredict(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandlePredict"})

	// The model comes first: without one, every prediction request answers
	// 503, even an empty one.
	if err := h.predictUC.EnsureModel(r.Context()); err != nil {
		RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"error": msgModelNotAvailable})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		RespondWithJSON(w, http.StatusBadRequest, map[string]string{"error": msgNoDataReceived})
		return
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		logger.Warn("Prediction request without a body", nil)
		RespondWithJSON(w, http.StatusBadRequest, map[string]string{"error": msgNoDataReceived})
		return
	}

	var reqDTO PredictRequestDTO
	if err := json.Unmarshal(trimmed, &reqDTO); err != nil {
		logger.Error("Failed to decode request body", err, nil)
		RespondWithJSON(w, http.StatusBadRequest, map[string]string{
			"error":  err.Error(),
			"status": "error",
		})
		return
	}

	logger.Info("Received prediction request", port.Fields{"payload": string(trimmed)})

	record := reqDTO.ToRecord()
	price, err := h.predictUC.Execute(r.Context(), record)
	if err != nil {
		if errors.Is(err, domain.ErrModelNotAvailable) {
			RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"error": msgModelNotAvailable})
			return
		}
		RespondWithJSON(w, http.StatusBadRequest, map[string]string{
			"error":  err.Error(),
			"status": "error",
		})
		return
	}

	RespondWithJSON(w, http.StatusOK, PredictResponseDTO{
		Prediction: price,
		Status:     "success",
	})
}

// HandleNeighborhoods serves GET /api/neighborhoods.
func (h *PredictionHandlers) HandleNeighborhoods(w http.ResponseWriter, r *http.Request) {
	values, err := h.neighborhoodsUC.Execute(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrVocabularyNotFound) {
			RespondWithJSON(w, http.StatusNotFound, map[string]string{
				"status":  "error",
				"message": msgNeighborhoodNotFound,
			})
			return
		}
		RespondWithJSON(w, http.StatusInternalServerError, map[string]string{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	if values == nil {
		values = []string{}
	}
	RespondWithJSON(w, http.StatusOK, NeighborhoodsResponseDTO{
		Status:        "success",
		Neighborhoods: values,
	})
}

// HandleModelStatus serves GET /api/model/status.
func (h *PredictionHandlers) HandleModelStatus(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, ModelStatusResponseDTO{
		Trained: h.statusUC.Execute(r.Context()),
		Status:  "success",
	})
}
