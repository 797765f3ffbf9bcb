package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/qaportal-net/qaportal-be/internal/model"
	"github.com/qaportal-net/qaportal-be/internal/service"
)

type TestHandler struct {
	testService     service.ITestService
	executorService service.IExecutorService
	logger          *log.Logger
}

func NewTestHandler(testService service.ITestService, executorService service.IExecutorService, l *log.Logger) *TestHandler {
	return &TestHandler{
		testService:     testService,
		executorService: executorService,
		logger:          l,
	}
}

func (h *TestHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, err := parsePagination(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	tests, pagination, err := h.testService.List(r.Context(), page, limit)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"tests":      tests,
		"pagination": pagination,
	})
}

func (h *TestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.DTOCreateTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ValidationError(err))
		return
	}

	testID, err := h.testService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]any{
		"message": "Test created successfully",
		"test_id": testID,
	})
}

// Delete tolerates a missing body; user_id is only used for the audit
// trail.
func (h *TestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req model.DTODeleteRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	deletedID, err := h.testService.Delete(r.Context(), id, req.UserID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"message":    "API test deleted successfully",
		"deleted_id": deletedID,
	})
}

func (h *TestHandler) Run(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req model.DTORunTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ValidationError(err))
		return
	}

	// Failed runs still answer 200: the outbound failure belongs to the
	// run result, not to this request.
	result, err := h.executorService.Execute(r.Context(), id, req.StartedBy)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

func urlParamInt(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, fmt.Errorf("path parameter '%s' must be an integer", name)
	}
	return value, nil
}
