package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/api/handlers"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/application/services"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
)

func TestCalendarHandler_GetCalendar(t *testing.T) {
	handler := handlers.NewCalendarHandler(services.NewCalendarService(newRecords(t)))

	tests := []struct {
		name     string
		target   string
		status   int
		month    entities.YearMonth
		selected string
	}{
		{"current month", "/api/calendar", http.StatusOK, entities.YearMonth{Year: 2025, Month: time.March}, "2025-03-10"},
		{"explicit month", "/api/calendar?year=2024&month=12", http.StatusOK, entities.YearMonth{Year: 2024, Month: time.December}, "2025-03-10"},
		{"forward across year", "/api/calendar?year=2024&month=12&offset=1", http.StatusOK, entities.YearMonth{Year: 2025, Month: time.January}, "2025-03-10"},
		{"back across year", "/api/calendar?year=2025&month=1&offset=-1", http.StatusOK, entities.YearMonth{Year: 2024, Month: time.December}, "2025-03-10"},
		{"selected day", "/api/calendar?selected=2025-03-06", http.StatusOK, entities.YearMonth{Year: 2025, Month: time.March}, "2025-03-06"},
		{"bad month", "/api/calendar?month=13", http.StatusBadRequest, entities.YearMonth{}, ""},
		{"bad offset", "/api/calendar?offset=x", http.StatusBadRequest, entities.YearMonth{}, ""},
		{"bad selected", "/api/calendar?selected=06/03/2025", http.StatusBadRequest, entities.YearMonth{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.GetCalendar(w, httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.Equal(t, tt.status, w.Code)
			if tt.status != http.StatusOK {
				return
			}
			var month entities.CalendarMonth
			decodeBody(t, w, &month)
			assert.Equal(t, tt.month, month.YearMonth)
			assert.Equal(t, tt.selected, month.SelectedDate)
			assert.Zero(t, len(month.Cells)%7)
		})
	}
}

func TestCalendarHandler_SelectedAppointments(t *testing.T) {
	handler := handlers.NewCalendarHandler(services.NewCalendarService(newRecords(t)))

	w := httptest.NewRecorder()
	handler.GetCalendar(w, httptest.NewRequest(http.MethodGet, "/api/calendar", nil))

	var month entities.CalendarMonth
	decodeBody(t, w, &month)
	assert.Len(t, month.SelectedAppointments, 2)
	assert.Equal(t, 2, month.Cells[month.LeadingBlanks+9].AppointmentCount)
}
