package services

import (
	"time"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
)

// AppointmentSource supplies the current appointments and the clinic's today
type AppointmentSource interface {
	Appointments() []*entities.Appointment
	Today() time.Time
}

// CalendarService derives the month grid shown on the appointments screen
type CalendarService struct {
	records AppointmentSource
}

// NewCalendarService creates a new calendar service
func NewCalendarService(records AppointmentSource) *CalendarService {
	return &CalendarService{records: records}
}

// Month builds the grid for ym with selected highlighted. An empty selected means today.
func (s *CalendarService) Month(ym entities.YearMonth, selected string) *entities.CalendarMonth {
	today := s.records.Today()
	if selected == "" {
		selected = entities.DateKey(today)
	}
	return BuildMonth(ym, s.records.Appointments(), selected, today)
}

// CurrentMonth returns the month containing today
func (s *CalendarService) CurrentMonth() entities.YearMonth {
	return entities.YearMonthOf(s.records.Today())
}

// IndexByDate groups appointments by their date key, keeping input order within a day
func IndexByDate(appointments []*entities.Appointment) map[string][]*entities.Appointment {
	index := make(map[string][]*entities.Appointment)
	for _, a := range appointments {
		index[a.Date] = append(index[a.Date], a)
	}
	return index
}

// BuildMonth lays out ym as week rows starting on Sunday. Leading blanks pad to the
// weekday of the 1st and trailing blanks complete the last week.
func BuildMonth(ym entities.YearMonth, appointments []*entities.Appointment, selected string, today time.Time) *entities.CalendarMonth {
	index := IndexByDate(appointments)
	todayKey := entities.DateKey(today)

	leading := int(ym.First().Weekday())
	days := ym.DaysIn()
	total := leading + days
	if rem := total % 7; rem != 0 {
		total += 7 - rem
	}

	cells := make([]entities.CalendarCell, total)
	for day := 1; day <= days; day++ {
		key := entities.DateKey(time.Date(ym.Year, ym.Month, day, 0, 0, 0, 0, time.UTC))
		cells[leading+day-1] = entities.CalendarCell{
			Day:              day,
			Date:             key,
			AppointmentCount: len(index[key]),
			IsToday:          key == todayKey,
			IsSelected:       key == selected,
		}
	}

	selectedAppointments := index[selected]
	if selectedAppointments == nil {
		selectedAppointments = []*entities.Appointment{}
	}

	return &entities.CalendarMonth{
		YearMonth:            ym,
		LeadingBlanks:        leading,
		DaysInMonth:          days,
		Cells:                cells,
		SelectedDate:         selected,
		SelectedAppointments: selectedAppointments,
		Previous:             ym.Prev(),
		Next:                 ym.Next(),
	}
}
