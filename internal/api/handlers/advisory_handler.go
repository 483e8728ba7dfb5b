package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/api/middleware"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
)

// AdvisoryService defines the advisory operations the handler needs
type AdvisoryService interface {
	Search(ctx context.Context, requestID, query string) (*entities.SearchResponse, error)
	PatientAdvice(ctx context.Context, requestID, patientID string, kind entities.AdvisoryKind) (*entities.AdvisoryText, error)
	WellnessPlan(ctx context.Context, requestID, patientID string) (*entities.WellnessPlan, error)
	CancelScreen(screen entities.View) int
}

// AdvisoryHandler exposes the knowledge search and patient advisory calls
type AdvisoryHandler struct {
	service AdvisoryService
}

// NewAdvisoryHandler creates a new advisory handler
func NewAdvisoryHandler(service AdvisoryService) *AdvisoryHandler {
	return &AdvisoryHandler{service: service}
}

type searchRequest struct {
	Query string `json:"query"`
}

// Search handles POST /api/advisory/search
func (h *AdvisoryHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Search(r.Context(), middleware.RequestIDFromContext(r.Context()), req.Query)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// PatientAdvisory handles POST /api/advisory/patients/{id}/{kind} for insight, dosha and plan
func (h *AdvisoryHandler) PatientAdvisory(w http.ResponseWriter, r *http.Request) {
	kind, ok := entities.ParseAdvisoryKind(r.PathValue("kind"))
	if !ok {
		respondWithError(w, http.StatusNotFound, "unknown advisory kind")
		return
	}

	ctx := r.Context()
	requestID := middleware.RequestIDFromContext(ctx)
	patientID := r.PathValue("id")

	var (
		result interface{}
		err    error
	)
	if kind == entities.AdvisoryKindPlan {
		result, err = h.service.WellnessPlan(ctx, requestID, patientID)
	} else {
		result, err = h.service.PatientAdvice(ctx, requestID, patientID, kind)
	}
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// CancelTasks handles DELETE /api/advisory/tasks/{screen}
func (h *AdvisoryHandler) CancelTasks(w http.ResponseWriter, r *http.Request) {
	screen := entities.View(r.PathValue("screen"))
	if !screen.Valid() {
		respondWithError(w, http.StatusBadRequest, "unknown screen")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"screen":   screen,
		"canceled": h.service.CancelScreen(screen),
	})
}
