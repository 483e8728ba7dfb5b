package entities

import "time"

// YearMonth identifies a displayed calendar month
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// YearMonthOf returns the month containing t
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// First returns midnight UTC of the month's first day
func (ym YearMonth) First() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths moves by n months, rolling the year as needed
func (ym YearMonth) AddMonths(n int) YearMonth {
	return YearMonthOf(ym.First().AddDate(0, n, 0))
}

// Next returns the following month
func (ym YearMonth) Next() YearMonth { return ym.AddMonths(1) }

// Prev returns the preceding month
func (ym YearMonth) Prev() YearMonth { return ym.AddMonths(-1) }

// DaysIn returns the number of days in the month
func (ym YearMonth) DaysIn() int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(ym.Year, ym.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// CalendarCell is one square of the month grid. Blank cells have Day 0 and no date.
type CalendarCell struct {
	Day              int    `json:"day"`
	Date             string `json:"date,omitempty"`
	AppointmentCount int    `json:"appointmentCount"`
	IsToday          bool   `json:"isToday,omitempty"`
	IsSelected       bool   `json:"isSelected,omitempty"`
}

// CalendarMonth is the derived month grid plus the selected day's appointments
type CalendarMonth struct {
	YearMonth            YearMonth      `json:"yearMonth"`
	LeadingBlanks        int            `json:"leadingBlanks"`
	DaysInMonth          int            `json:"daysInMonth"`
	Cells                []CalendarCell `json:"cells"`
	SelectedDate         string         `json:"selectedDate,omitempty"`
	SelectedAppointments []*Appointment `json:"selectedAppointments"`
	Previous             YearMonth      `json:"previous"`
	Next                 YearMonth      `json:"next"`
}
