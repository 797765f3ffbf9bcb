package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/qaportal-net/qaportal-be/internal/model"
	"github.com/qaportal-net/qaportal-be/internal/service"
)

type RunHandler struct {
	runService service.IRunService
	logger     *log.Logger
}

func NewRunHandler(runService service.IRunService, l *log.Logger) *RunHandler {
	return &RunHandler{
		runService: runService,
		logger:     l,
	}
}

func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, err := parsePagination(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	runs, pagination, err := h.runService.List(r.Context(), page, limit)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"runs":       runs,
		"pagination": pagination,
	})
}

func (h *RunHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	run, metrics, err := h.runService.Detail(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"run":     run,
		"metrics": metrics,
	})
}

func (h *RunHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req model.DTODeleteRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	deletedID, err := h.runService.Delete(r.Context(), id, req.UserID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"message":    "Test run deleted successfully",
		"deleted_id": deletedID,
	})
}
