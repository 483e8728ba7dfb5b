package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
)

// BookingService defines the online booking operation
type BookingService interface {
	BookOnline(ctx context.Context, req entities.BookingRequest) (*entities.BookingResult, error)
}

// BookingHandler handles the public booking form
type BookingHandler struct {
	service BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.BookOnline(r.Context(), req)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, result)
}
