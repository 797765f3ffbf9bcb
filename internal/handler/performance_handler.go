package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/qaportal-net/qaportal-be/internal/model"
	"github.com/qaportal-net/qaportal-be/internal/service"
)

type PerformanceHandler struct {
	performanceService service.IPerformanceService
	logger             *log.Logger
}

func NewPerformanceHandler(s service.IPerformanceService, l *log.Logger) *PerformanceHandler {
	return &PerformanceHandler{
		performanceService: s,
		logger:             l,
	}
}

func (h *PerformanceHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req model.DTOPerformanceRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ValidationError(err))
		return
	}

	runID, results, err := h.performanceService.Run(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Performance test completed",
		"run_id":  runID,
		"results": results,
	})
}
