package services

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
)

var sampleNotes = []string{
	"Follow-up consultation",
	"Initial assessment",
	"Discuss treatment plan",
	"Check on progress",
	"Panchakarma therapy session",
}

// SamplePatients returns the built-in patients written on first run
func SamplePatients() []*entities.Patient {
	return []*entities.Patient{
		{ID: "p1", Name: "Aarav Sharma", Age: 45, Gender: entities.GenderMale, Condition: "Joint Pain (Arthritis)", History: "Chronic knee pain for 5 years. Takes painkillers occasionally.", LastVisit: "05/15/2024", Email: "aarav.sharma@example.com", Phone: "555-0101"},
		{ID: "p2", Name: "Priya Patel", Age: 32, Gender: entities.GenderFemale, Condition: "Digestive Issues (IBS)", History: "Complaints of bloating, gas, and irregular bowel movements. Stress seems to be a trigger.", LastVisit: "06/02/2024", Email: "priya.patel@example.com", Phone: "555-0102"},
		{ID: "p3", Name: "Rohan Mehta", Age: 58, Gender: entities.GenderMale, Condition: "High Blood Pressure", History: "Diagnosed with hypertension 2 years ago. On medication.", LastVisit: "04/28/2024", Email: "rohan.mehta@example.com", Phone: "555-0103"},
		{ID: "p4", Name: "Sneha Reddy", Age: 28, Gender: entities.GenderFemale, Condition: "Anxiety and Insomnia", History: "Difficulty falling asleep and experiences frequent panic attacks due to work stress.", LastVisit: "06/10/2024", Email: "sneha.reddy@example.com", Phone: "555-0104"},
		{ID: "p5", Name: "Vikram Singh", Age: 50, Gender: entities.GenderMale, Condition: "Type 2 Diabetes", History: "Managing diabetes with diet and exercise. Looking for holistic support.", LastVisit: "05/21/2024", Email: "vikram.singh@example.com", Phone: "555-0105"},
		{ID: "p6", Name: "Anika Gupta", Age: 37, Gender: entities.GenderFemale, Condition: "Migraines", History: "Frequent, severe headaches, especially during hormonal changes.", LastVisit: "06/08/2024", Email: "anika.gupta@example.com", Phone: "555-0106"},
		{ID: "p7", Name: "Kiran Desai", Age: 65, Gender: entities.GenderFemale, Condition: "General Debility", History: "Feeling weak and fatigued. Wants to improve overall energy and immunity.", LastVisit: "05/30/2024", Email: "kiran.desai@example.com", Phone: "555-0107"},
		{ID: "p8", Name: "Arjun Rao", Age: 25, Gender: entities.GenderMale, Condition: "Acne and Skin Issues", History: "Persistent acne since teenage years. Has tried various topical treatments.", LastVisit: "06/12/2024", Email: "arjun.rao@example.com", Phone: "555-0108"},
	}
}

// SampleAppointments spreads one appointment per patient over the current month:
// the first two today, the next three earlier this month, the rest later this month.
func SampleAppointments(today time.Time, patients []*entities.Patient) []*entities.Appointment {
	appointments := make([]*entities.Appointment, 0, len(patients))
	for i, p := range patients {
		day := today.Day()
		switch {
		case i < 2:
		case i < 5:
			day = max(1, today.Day()-i*2)
		default:
			day = min(28, today.Day()+(i-4)*3)
		}
		date := time.Date(today.Year(), today.Month(), day, 0, 0, 0, 0, time.UTC)

		appointments = append(appointments, &entities.Appointment{
			ID:          fmt.Sprintf("app%d", len(appointments)+1),
			PatientID:   p.ID,
			PatientName: p.Name,
			Date:        entities.DateKey(date),
			Notes:       sampleNotes[rand.IntN(len(sampleNotes))],
		})
	}
	sortAppointments(appointments)
	return appointments
}

// seedAppointmentsFor keeps the sample appointments whose patient is among loaded,
// so a store that already holds its own patients never gets dangling references.
func seedAppointmentsFor(today time.Time, loaded []*entities.Patient) []*entities.Appointment {
	byID := make(map[string]*entities.Patient, len(loaded))
	for _, p := range loaded {
		byID[p.ID] = p
	}

	seeded := make([]*entities.Appointment, 0, len(loaded))
	for _, a := range SampleAppointments(today, SamplePatients()) {
		p, ok := byID[a.PatientID]
		if !ok {
			continue
		}
		a.PatientName = p.Name
		seeded = append(seeded, a)
	}
	return seeded
}
