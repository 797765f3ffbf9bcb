package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/qaportal-net/qaportal-be/internal/model"
	"github.com/qaportal-net/qaportal-be/internal/service"
)

type NewsletterHandler struct {
	newsletterService service.INewsletterService
	logger            *log.Logger
}

func NewNewsletterHandler(s service.INewsletterService, l *log.Logger) *NewsletterHandler {
	return &NewsletterHandler{
		newsletterService: s,
		logger:            l,
	}
}

func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req model.DTONewsletterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ValidationError(err))
		return
	}

	if err := h.newsletterService.Subscribe(r.Context(), req.Email, "separate_form"); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Subscribed successfully"})
}
