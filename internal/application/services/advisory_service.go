package services

import (
	"context"
	"strings"
	"time"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/providers"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/ayurvedaclinic/backend/pkg/errors"
)

// PatientLookup resolves a patient by id
type PatientLookup interface {
	Patient(id string) (*entities.Patient, error)
}

// AdvisoryService runs advisory calls as cancelable tasks. Search runs on the search
// screen; patient calls run on the patients screen with one slot per kind, so a new
// request of the same kind drops the result of the previous one.
type AdvisoryService struct {
	provider providers.AdvisoryProvider
	patients PatientLookup
	tasks    *TaskRegistry
}

// NewAdvisoryService creates a new advisory service
func NewAdvisoryService(provider providers.AdvisoryProvider, patients PatientLookup, tasks *TaskRegistry) *AdvisoryService {
	return &AdvisoryService{
		provider: provider,
		patients: patients,
		tasks:    tasks,
	}
}

// Search answers a knowledge query
func (s *AdvisoryService) Search(ctx context.Context, requestID, query string) (*entities.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("query is required")
	}
	return runTask(ctx, s.tasks, entities.ViewSearch, entities.AdvisoryKindSearch, requestID, func(ctx context.Context) (*entities.SearchResponse, error) {
		return s.provider.Search(ctx, query)
	})
}

// PatientAdvice produces insight or dosha text for a patient
func (s *AdvisoryService) PatientAdvice(ctx context.Context, requestID, patientID string, kind entities.AdvisoryKind) (*entities.AdvisoryText, error) {
	var call func(context.Context, *entities.Patient) (string, error)
	switch kind {
	case entities.AdvisoryKindInsight:
		call = s.provider.PatientInsight
	case entities.AdvisoryKindDosha:
		call = s.provider.DoshaAnalysis
	default:
		return nil, apperrors.NewValidationError("unsupported advisory kind: " + string(kind))
	}

	patient, err := s.patients.Patient(patientID)
	if err != nil {
		return nil, err
	}

	return runTask(ctx, s.tasks, entities.ViewPatients, kind, requestID, func(ctx context.Context) (*entities.AdvisoryText, error) {
		text, err := call(ctx, patient)
		if err != nil {
			return nil, err
		}
		return &entities.AdvisoryText{Kind: kind, PatientID: patient.ID, Text: text}, nil
	})
}

// WellnessPlan drafts a plan for a patient and splits it into sections
func (s *AdvisoryService) WellnessPlan(ctx context.Context, requestID, patientID string) (*entities.WellnessPlan, error) {
	patient, err := s.patients.Patient(patientID)
	if err != nil {
		return nil, err
	}

	return runTask(ctx, s.tasks, entities.ViewPatients, entities.AdvisoryKindPlan, requestID, func(ctx context.Context) (*entities.WellnessPlan, error) {
		text, err := s.provider.WellnessPlan(ctx, patient)
		if err != nil {
			return nil, err
		}
		return &entities.WellnessPlan{PatientID: patient.ID, Text: text, Sections: ParseWellnessPlan(text)}, nil
	})
}

// CancelScreen drops every running task of screen
func (s *AdvisoryService) CancelScreen(screen entities.View) int {
	return s.tasks.CancelScreen(screen)
}

func runTask[T any](ctx context.Context, tasks *TaskRegistry, screen entities.View, kind entities.AdvisoryKind, requestID string, fn func(context.Context) (T, error)) (T, error) {
	logger := observability.LoggerFromContext(ctx).With().
		Str("screen", string(screen)).
		Str("kind", string(kind)).
		Str("request_id", requestID).
		Logger()

	taskCtx, finish := tasks.Begin(ctx, screen, string(kind), requestID)
	start := time.Now()
	result, err := fn(taskCtx)

	if !finish() {
		var zero T
		cause := context.Cause(taskCtx)
		observability.RecordAdvisoryCall(string(kind), "canceled")
		logger.Debug().Dur("elapsed", time.Since(start)).AnErr("cause", cause).Msg("advisory result dropped")
		return zero, apperrors.NewCanceledError("advisory request was canceled", cause)
	}
	if err != nil {
		var zero T
		observability.RecordAdvisoryCall(string(kind), "error")
		logger.Warn().Err(err).Msg("advisory call failed")
		return zero, err
	}

	observability.RecordAdvisoryCall(string(kind), "success")
	return result, nil
}
