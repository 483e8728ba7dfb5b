package services

import (
	"context"
	"time"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
)

// Booker creates a patient and its first appointment together
type Booker interface {
	Book(ctx context.Context, in entities.PatientInput, date, notes string) (*entities.BookingResult, error)
	Today() time.Time
}

// BookingService handles the public online booking form
type BookingService struct {
	records Booker
	views   *ViewController
}

// NewBookingService creates a new booking service. views may be nil.
func NewBookingService(records Booker, views *ViewController) *BookingService {
	return &BookingService{records: records, views: views}
}

// BookOnline registers a first-time patient and books the requested day.
// On success the active view moves to the appointments screen.
func (s *BookingService) BookOnline(ctx context.Context, req entities.BookingRequest) (*entities.BookingResult, error) {
	if err := req.Validate(s.records.Today()); err != nil {
		return nil, err
	}

	result, err := s.records.Book(ctx, req.PatientInput(), req.Date, entities.OnlineBookingNotes)
	if err != nil {
		return nil, err
	}

	if s.views != nil {
		if _, err := s.views.Navigate(ctx, entities.ViewAppointments); err != nil {
			return nil, err
		}
	}
	return result, nil
}
