package entities

// AdvisoryKind names one of the advisory gateway use cases
type AdvisoryKind string

const (
	AdvisoryKindSearch  AdvisoryKind = "search"
	AdvisoryKindInsight AdvisoryKind = "insight"
	AdvisoryKindDosha   AdvisoryKind = "dosha"
	AdvisoryKindPlan    AdvisoryKind = "plan"
)

// PatientAdvisoryKinds are the kinds that take a patient
var PatientAdvisoryKinds = []AdvisoryKind{AdvisoryKindInsight, AdvisoryKindDosha, AdvisoryKindPlan}

// ParseAdvisoryKind returns the patient advisory kind named s
func ParseAdvisoryKind(s string) (AdvisoryKind, bool) {
	for _, k := range PatientAdvisoryKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// GroundingSource is a web page the search answer was grounded on
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// SearchResponse is a knowledge search answer
type SearchResponse struct {
	Content string            `json:"content"`
	Sources []GroundingSource `json:"sources"`
}

// AdvisoryText is the free-text output of a patient advisory call
type AdvisoryText struct {
	Kind      AdvisoryKind `json:"kind"`
	PatientID string       `json:"patientId"`
	Text      string       `json:"text"`
}

// PlanSection is one "### heading" block of a wellness plan. The preamble has an empty heading.
type PlanSection struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// WellnessPlan is a generated plan with its sections split out for display
type WellnessPlan struct {
	PatientID string        `json:"patientId"`
	Text      string        `json:"text"`
	Sections  []PlanSection `json:"sections"`
}
