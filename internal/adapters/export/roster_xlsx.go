package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
)

// Sheet names of the roster workbook
const (
	PatientsSheet     = "Patients"
	AppointmentsSheet = "Appointments"
)

// ContentTypeXLSX is the media type of the generated workbook
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PatientHeader is the header row of the patients sheet
var PatientHeader = []string{"ID", "Name", "Age", "Gender", "Condition", "Medical History", "Last Visit", "Email", "Phone"}

// AppointmentHeader is the header row of the appointments sheet
var AppointmentHeader = []string{"ID", "Date", "Patient ID", "Patient Name", "Notes"}

var patientColumnWidths = []float64{38, 22, 6, 10, 28, 60, 12, 30, 14}
var appointmentColumnWidths = []float64{38, 12, 38, 22, 40}

// Roster renders the patient and appointment collections as an xlsx workbook
func Roster(patients []*entities.Patient, appointments []*entities.Appointment) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", PatientsSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(AppointmentsSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E8F5E9"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	patientRows := make([][]interface{}, len(patients))
	for i, p := range patients {
		patientRows[i] = []interface{}{p.ID, p.Name, p.Age, string(p.Gender), p.Condition, p.History, p.LastVisit, p.Email, p.Phone}
	}
	if err := writeSheet(f, PatientsSheet, PatientHeader, patientColumnWidths, patientRows, headerStyle); err != nil {
		return nil, err
	}

	appointmentRows := make([][]interface{}, len(appointments))
	for i, a := range appointments {
		appointmentRows[i] = []interface{}{a.ID, a.Date, a.PatientID, a.PatientName, a.Notes}
	}
	if err := writeSheet(f, AppointmentsSheet, AppointmentHeader, appointmentColumnWidths, appointmentRows, headerStyle); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, header []string, widths []float64, rows [][]interface{}, headerStyle int) error {
	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}

	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to set %s header style: %w", sheet, err)
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}
