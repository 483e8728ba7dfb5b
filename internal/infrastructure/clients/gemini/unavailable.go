package gemini

import (
	"context"
	"errors"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/providers"
	apperrors "github.com/zatekoja/ayurvedaclinic/backend/pkg/errors"
)

// Unavailable answers every advisory call with its use-case error.
// It stands in when no API key is configured.
type Unavailable struct {
	Reason error
}

var _ providers.AdvisoryProvider = Unavailable{}

func (u Unavailable) cause() error {
	if u.Reason != nil {
		return u.Reason
	}
	return errors.New("advisory gateway not configured")
}

// Search always fails
func (u Unavailable) Search(ctx context.Context, query string) (*entities.SearchResponse, error) {
	return nil, apperrors.NewExternalError(errSearchMessage, u.cause())
}

// PatientInsight always fails
func (u Unavailable) PatientInsight(ctx context.Context, patient *entities.Patient) (string, error) {
	return "", apperrors.NewExternalError(errInsightMessage, u.cause())
}

// DoshaAnalysis always fails
func (u Unavailable) DoshaAnalysis(ctx context.Context, patient *entities.Patient) (string, error) {
	return "", apperrors.NewExternalError(errDoshaMessage, u.cause())
}

// WellnessPlan always fails
func (u Unavailable) WellnessPlan(ctx context.Context, patient *entities.Patient) (string, error) {
	return "", apperrors.NewExternalError(errPlanMessage, u.cause())
}
