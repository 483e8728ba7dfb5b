package entities

import (
	"time"

	"github.com/google/uuid"
)

// RecordEventType represents the kind of record change
type RecordEventType string

const (
	RecordEventPatientAdded       RecordEventType = "patient.added"
	RecordEventPatientRemoved     RecordEventType = "patient.removed"
	RecordEventAppointmentAdded   RecordEventType = "appointment.added"
	RecordEventAppointmentRemoved RecordEventType = "appointment.removed"
	RecordEventBookingCreated     RecordEventType = "booking.created"
)

// RecordEvent notifies views that a collection changed
type RecordEvent struct {
	ID        string          `json:"id"`
	Type      RecordEventType `json:"type"`
	EntityID  string          `json:"entityId"`
	Related   []string        `json:"related,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewRecordEvent creates a new record event
func NewRecordEvent(eventType RecordEventType, entityID string, related ...string) *RecordEvent {
	return &RecordEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		EntityID:  entityID,
		Related:   related,
		Timestamp: time.Now().UTC(),
	}
}
