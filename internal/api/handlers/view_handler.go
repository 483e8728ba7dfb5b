package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
)

// ViewController defines the screen switch operations
type ViewController interface {
	Active() entities.View
	Navigate(ctx context.Context, view entities.View) (entities.View, error)
}

// ViewHandler exposes the active screen
type ViewHandler struct {
	views ViewController
}

// NewViewHandler creates a new view handler
func NewViewHandler(views ViewController) *ViewHandler {
	return &ViewHandler{views: views}
}

type viewResponse struct {
	View     entities.View   `json:"view"`
	Previous entities.View   `json:"previous,omitempty"`
	Views    []entities.View `json:"views"`
}

// GetView handles GET /api/view
func (h *ViewHandler) GetView(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, viewResponse{View: h.views.Active(), Views: entities.Views})
}

// SetView handles PUT /api/view
func (h *ViewHandler) SetView(w http.ResponseWriter, r *http.Request) {
	var req struct {
		View entities.View `json:"view"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	previous, err := h.views.Navigate(r.Context(), req.View)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, viewResponse{View: req.View, Previous: previous, Views: entities.Views})
}
