package providers

import (
	"context"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
)

// AdvisoryProvider is the generative-language gateway. Its outputs are advisory text for a practitioner to review.
type AdvisoryProvider interface {
	// Search answers an open knowledge query with the web sources it was grounded on
	Search(ctx context.Context, query string) (*entities.SearchResponse, error)

	// PatientInsight summarizes a patient's condition and history as practitioner notes
	PatientInsight(ctx context.Context, patient *entities.Patient) (string, error)

	// DoshaAnalysis names the most likely dominant dosha imbalance
	DoshaAnalysis(ctx context.Context, patient *entities.Patient) (string, error)

	// WellnessPlan drafts a plan using "### heading" sections
	WellnessPlan(ctx context.Context, patient *entities.Patient) (string, error)
}
