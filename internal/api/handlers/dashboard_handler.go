package handlers

import (
	"net/http"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
)

// DashboardService defines the summary operation the handler needs
type DashboardService interface {
	Summary() *entities.DashboardSummary
}

// DashboardHandler serves the clinic overview
type DashboardHandler struct {
	service DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetDashboard handles GET /api/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.Summary())
}
