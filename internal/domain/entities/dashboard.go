package entities

// GenderUnspecified buckets stored genders outside the enumerated set
const GenderUnspecified Gender = "Unspecified"

// GenderShare is one bar of the gender distribution
type GenderShare struct {
	Gender     Gender  `json:"gender"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Label      string  `json:"label"`
}

// ConditionCount is one row of the common-conditions table
type ConditionCount struct {
	Condition string `json:"condition"`
	Count     int    `json:"count"`
}

// DashboardSummary is the clinic overview
type DashboardSummary struct {
	Date               string           `json:"date"`
	TotalPatients      int              `json:"totalPatients"`
	TodayCount         int              `json:"todayCount"`
	TodayAppointments  []*Appointment   `json:"todayAppointments"`
	GenderDistribution []GenderShare    `json:"genderDistribution"`
	TopConditions      []ConditionCount `json:"topConditions"`
}
