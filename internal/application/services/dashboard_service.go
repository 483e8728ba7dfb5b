package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
)

const topConditionLimit = 5

// RecordSource supplies both collections and the clinic's today
type RecordSource interface {
	Patients() []*entities.Patient
	Appointments() []*entities.Appointment
	Today() time.Time
}

// DashboardService computes the clinic overview from the live collections
type DashboardService struct {
	records RecordSource
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(records RecordSource) *DashboardService {
	return &DashboardService{records: records}
}

// Summary returns the overview for the clinic's current day
func (s *DashboardService) Summary() *entities.DashboardSummary {
	return Summarize(s.records.Patients(), s.records.Appointments(), s.records.Today())
}

// Summarize derives the dashboard figures. Nothing is cached; every call recounts.
func Summarize(patients []*entities.Patient, appointments []*entities.Appointment, today time.Time) *entities.DashboardSummary {
	todayKey := entities.DateKey(today)

	todays := make([]*entities.Appointment, 0)
	for _, a := range appointments {
		if a.Date == todayKey {
			todays = append(todays, a)
		}
	}

	return &entities.DashboardSummary{
		Date:               todayKey,
		TotalPatients:      len(patients),
		TodayCount:         len(todays),
		TodayAppointments:  todays,
		GenderDistribution: GenderDistribution(patients),
		TopConditions:      TopConditions(patients, topConditionLimit),
	}
}

// GenderDistribution tallies Male, Female and Other in that order. Patients with any
// other stored value are counted under Unspecified, which only appears when non-zero.
// Percentages are of all patients.
func GenderDistribution(patients []*entities.Patient) []entities.GenderShare {
	counts := make(map[entities.Gender]int, len(entities.Genders))
	unspecified := 0
	for _, p := range patients {
		if p.Gender.Valid() {
			counts[p.Gender]++
		} else {
			unspecified++
		}
	}

	total := len(patients)
	shares := make([]entities.GenderShare, 0, len(entities.Genders)+1)
	for _, g := range entities.Genders {
		shares = append(shares, newGenderShare(g, counts[g], total))
	}
	if unspecified > 0 {
		shares = append(shares, newGenderShare(entities.GenderUnspecified, unspecified, total))
	}
	return shares
}

func newGenderShare(g entities.Gender, count, total int) entities.GenderShare {
	tenths := percentTenths(count, total)
	return entities.GenderShare{
		Gender:     g,
		Count:      count,
		Percentage: float64(tenths) / 10,
		Label:      fmt.Sprintf("%d.%d%%", tenths/10, tenths%10),
	}
}

// percentTenths returns count/total as a percentage in tenths, rounded half-up on
// the exact ratio so that 2/3 gives 667 and 1/8 gives 125.
func percentTenths(count, total int) int {
	if total <= 0 || count <= 0 {
		return 0
	}
	return (2*count*1000 + total) / (2 * total)
}

// TopConditions counts patients per trimmed condition and returns the limit most
// frequent. Ties keep the order in which conditions were first seen.
func TopConditions(patients []*entities.Patient, limit int) []entities.ConditionCount {
	positions := make(map[string]int)
	counts := make([]entities.ConditionCount, 0)
	for _, p := range patients {
		condition := strings.TrimSpace(p.Condition)
		if condition == "" {
			continue
		}
		if i, ok := positions[condition]; ok {
			counts[i].Count++
			continue
		}
		positions[condition] = len(counts)
		counts = append(counts, entities.ConditionCount{Condition: condition, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if limit >= 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}
