package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
)

// CalendarService defines the month-grid operations the handler needs
type CalendarService interface {
	Month(ym entities.YearMonth, selected string) *entities.CalendarMonth
	CurrentMonth() entities.YearMonth
}

// CalendarHandler serves the appointment calendar
type CalendarHandler struct {
	service CalendarService
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(service CalendarService) *CalendarHandler {
	return &CalendarHandler{service: service}
}

// GetCalendar handles GET /api/calendar?year=&month=&offset=&selected=
// Missing year and month mean the current month; offset moves by whole months.
func (h *CalendarHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	ym := h.service.CurrentMonth()

	if v := query.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil || year < 1 || year > 9999 {
			respondWithError(w, http.StatusBadRequest, "invalid year parameter")
			return
		}
		ym.Year = year
	}
	if v := query.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			respondWithError(w, http.StatusBadRequest, "invalid month parameter (1-12)")
			return
		}
		ym.Month = time.Month(month)
	}
	if v := query.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid offset parameter")
			return
		}
		ym = ym.AddMonths(offset)
	}

	selected := query.Get("selected")
	if selected != "" {
		if _, err := entities.ParseDateKey(selected); err != nil {
			respondWithError(w, http.StatusBadRequest, "selected must be formatted YYYY-MM-DD")
			return
		}
	}

	respondWithJSON(w, http.StatusOK, h.service.Month(ym, selected))
}
