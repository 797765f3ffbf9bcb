package handler

import (
	"log"
	"net/http"

	"github.com/qaportal-net/qaportal-be/internal/service"
)

type DashboardHandler struct {
	dashboardService service.IDashboardService
	logger           *log.Logger
}

func NewDashboardHandler(s service.IDashboardService, l *log.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: s,
		logger:           l,
	}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.Stats(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}
