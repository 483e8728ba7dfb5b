package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/application/services"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
)

type staticRecords struct {
	patients     []*entities.Patient
	appointments []*entities.Appointment
	today        time.Time
}

func (s *staticRecords) Patients() []*entities.Patient         { return s.patients }
func (s *staticRecords) Appointments() []*entities.Appointment { return s.appointments }
func (s *staticRecords) Today() time.Time                      { return s.today }

func TestBuildMonth_Grid(t *testing.T) {
	// March 2025 starts on a Saturday and has 31 days.
	ym := entities.YearMonth{Year: 2025, Month: time.March}
	appointments := []*entities.Appointment{
		{ID: "a1", Date: "2025-03-10"},
		{ID: "a2", Date: "2025-03-10"},
		{ID: "a3", Date: "2025-03-31"},
		{ID: "a4", Date: "2025-04-01"},
	}

	month := services.BuildMonth(ym, appointments, "2025-03-10", fixedNow)

	assert.Equal(t, 6, month.LeadingBlanks)
	assert.Equal(t, 31, month.DaysInMonth)
	require.Len(t, month.Cells, 42)
	for i := 0; i < 6; i++ {
		assert.Zero(t, month.Cells[i].Day)
		assert.Empty(t, month.Cells[i].Date)
	}
	assert.Zero(t, month.Cells[41].Day)

	tenth := month.Cells[6+9]
	assert.Equal(t, 10, tenth.Day)
	assert.Equal(t, "2025-03-10", tenth.Date)
	assert.Equal(t, 2, tenth.AppointmentCount)
	assert.True(t, tenth.IsToday)
	assert.True(t, tenth.IsSelected)

	assert.Equal(t, 1, month.Cells[6+30].AppointmentCount)
	assert.Equal(t, []string{"a1", "a2"}, []string{month.SelectedAppointments[0].ID, month.SelectedAppointments[1].ID})
	assert.Equal(t, entities.YearMonth{Year: 2025, Month: time.February}, month.Previous)
	assert.Equal(t, entities.YearMonth{Year: 2025, Month: time.April}, month.Next)
}

func TestBuildMonth_ExactMultipleOfSeven(t *testing.T) {
	// February 2015 starts on a Sunday and has 28 days.
	month := services.BuildMonth(entities.YearMonth{Year: 2015, Month: time.February}, nil, "", fixedNow)

	assert.Zero(t, month.LeadingBlanks)
	assert.Len(t, month.Cells, 28)
	assert.NotNil(t, month.SelectedAppointments)
	assert.Empty(t, month.SelectedAppointments)
}

func TestBuildMonth_SelectedOutsideMonth(t *testing.T) {
	appointments := []*entities.Appointment{{ID: "a1", Date: "2025-04-02"}}

	month := services.BuildMonth(entities.YearMonth{Year: 2025, Month: time.March}, appointments, "2025-04-02", fixedNow)

	require.Len(t, month.SelectedAppointments, 1)
	for _, c := range month.Cells {
		assert.False(t, c.IsSelected)
	}
}

func TestIndexByDate(t *testing.T) {
	appointments := []*entities.Appointment{
		{ID: "a1", Date: "2025-03-10"},
		{ID: "a2", Date: "2025-03-11"},
		{ID: "a3", Date: "2025-03-10"},
	}

	index := services.IndexByDate(appointments)

	assert.Len(t, index, 2)
	assert.Equal(t, "a3", index["2025-03-10"][1].ID)
}

func TestCalendarService_DefaultsToToday(t *testing.T) {
	records := &staticRecords{
		appointments: []*entities.Appointment{{ID: "a1", Date: "2025-03-10"}},
		today:        fixedNow,
	}
	svc := services.NewCalendarService(records)

	month := svc.Month(svc.CurrentMonth(), "")

	assert.Equal(t, "2025-03-10", month.SelectedDate)
	assert.Len(t, month.SelectedAppointments, 1)
}
