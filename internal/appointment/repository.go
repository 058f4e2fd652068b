package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	Create(ctx context.Context, a *Appointment) (*Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) (*Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, filter ListFilter) ([]Appointment, error)

	// Snapshot feed for the slot availability engine
	ListForClinician(ctx context.Context, clinician string) ([]Appointment, error)

	// Guarded status change, only applied when the current status matches from
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) (*Appointment, error)

	// Overdue worker
	FindOverdueScheduled(ctx context.Context, before time.Time) ([]Appointment, error)
}
