package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanders-dream/compassionate-care-api/internal/schedule"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04"
)

type Appointment struct {
	ID              uuid.UUID
	PatientName     string
	PatientPhone    string
	ClinicianName   string
	Date            string // YYYY-MM-DD
	StartTime       string // HH:MM
	DurationMinutes int
	Status          Status
	Reason          string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ScheduleView projects the appointment into the flat shape the slot
// availability engine reads. Only cancelled visits release their slots.
func (a *Appointment) ScheduleView() schedule.Appointment {
	return schedule.Appointment{
		ID:              a.ID.String(),
		Clinician:       a.ClinicianName,
		Date:            a.Date,
		StartTime:       a.StartTime,
		DurationMinutes: a.DurationMinutes,
		Cancelled:       a.Status == StatusCancelled,
	}
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Clinician string
	Date      string
	Status    Status
	Limit     int
	Offset    int
}
