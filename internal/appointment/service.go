package appointment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	redisclient "github.com/alexanders-dream/compassionate-care-api/internal/redis"
	"github.com/alexanders-dream/compassionate-care-api/internal/schedule"
)

var (
	ErrSlotConflict            = errors.New("requested time conflicts with an existing appointment")
	ErrNoSlotsAvailable        = errors.New("no slots available for that clinician and date")
	ErrAgendaBusy              = errors.New("another booking for this clinician is in progress, please retry")
	ErrInvalidDate             = errors.New("date must be YYYY-MM-DD")
	ErrInvalidTime             = errors.New("start time must be HH:MM")
	ErrInvalidDuration         = errors.New("duration must be a positive number of minutes")
	ErrInvalidStatus           = errors.New("unknown appointment status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

type Service struct {
	repo   Repository
	engine *schedule.Engine
	locker redisclient.Locker
	logger *zap.Logger
}

func NewService(repo Repository, engine *schedule.Engine, locker redisclient.Locker, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		engine: engine,
		locker: locker,
		logger: logger,
	}
}

func (s *Service) Engine() *schedule.Engine {
	return s.engine
}

// ScheduleInput carries everything needed to book a visit. When AutoAssign
// is set and the requested start time is taken, the earliest free slot of
// the day is booked instead of returning a conflict.
type ScheduleInput struct {
	PatientName     string
	PatientPhone    string
	ClinicianName   string
	Date            string
	StartTime       string
	DurationMinutes int
	Reason          string
	Notes           string
	AutoAssign      bool
}

func (in *ScheduleInput) validate() error {
	if _, err := time.Parse(DateFormat, in.Date); err != nil {
		return ErrInvalidDate
	}
	if _, err := time.Parse(TimeFormat, in.StartTime); err != nil {
		return ErrInvalidTime
	}
	if in.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

// Schedule books a visit. The availability picker shown to the dashboard
// user may be stale by the time they hit save, so the conflict predicate is
// re-answered here against a fresh snapshot, inside a per clinician-day
// lock, before anything is persisted.
func (s *Service) Schedule(ctx context.Context, in ScheduleInput) (*Appointment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var created *Appointment

	err := s.locker.WithAgendaLock(ctx, in.ClinicianName, in.Date, func(lockCtx context.Context) error {
		snapshot, err := s.snapshot(lockCtx, in.ClinicianName)
		if err != nil {
			return err
		}

		start := in.StartTime
		if s.engine.WouldConflict(snapshot, in.ClinicianName, in.Date, start, in.DurationMinutes, "") {
			if !in.AutoAssign {
				return ErrSlotConflict
			}
			free, ok := s.engine.FirstFree(snapshot, in.ClinicianName, in.Date, in.DurationMinutes, "")
			if !ok {
				return ErrNoSlotsAvailable
			}
			s.logger.Info("reassigned conflicting start time",
				zap.String("clinician", in.ClinicianName),
				zap.String("date", in.Date),
				zap.String("requested", start),
				zap.String("assigned", free))
			start = free
		}

		appt, err := s.repo.Create(lockCtx, &Appointment{
			PatientName:     in.PatientName,
			PatientPhone:    in.PatientPhone,
			ClinicianName:   in.ClinicianName,
			Date:            in.Date,
			StartTime:       start,
			DurationMinutes: in.DurationMinutes,
			Status:          StatusScheduled,
			Reason:          in.Reason,
			Notes:           in.Notes,
		})
		if err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}

		created = appt
		return nil
	})

	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrAgendaBusy
		}
		return nil, err
	}

	s.logger.Info("appointment scheduled",
		zap.String("id", created.ID.String()),
		zap.String("clinician", created.ClinicianName),
		zap.String("date", created.Date),
		zap.String("start", created.StartTime))

	return created, nil
}

// RescheduleInput moves or edits an existing visit. Zero-value fields keep
// their current values.
type RescheduleInput struct {
	PatientName     string
	PatientPhone    string
	ClinicianName   string
	Date            string
	StartTime       string
	DurationMinutes int
	Reason          string
	Notes           string
}

// Reschedule updates a visit, re-checking slot conflicts whenever the
// clinician, date, time or duration changes. The visit's own reservation is
// excluded from the check so it never conflicts with itself.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, in RescheduleInput) (*Appointment, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	next := *existing
	if in.PatientName != "" {
		next.PatientName = in.PatientName
	}
	if in.PatientPhone != "" {
		next.PatientPhone = in.PatientPhone
	}
	if in.ClinicianName != "" {
		next.ClinicianName = in.ClinicianName
	}
	if in.Date != "" {
		if _, err := time.Parse(DateFormat, in.Date); err != nil {
			return nil, ErrInvalidDate
		}
		next.Date = in.Date
	}
	if in.StartTime != "" {
		if _, err := time.Parse(TimeFormat, in.StartTime); err != nil {
			return nil, ErrInvalidTime
		}
		next.StartTime = in.StartTime
	}
	if in.DurationMinutes != 0 {
		if in.DurationMinutes < 0 {
			return nil, ErrInvalidDuration
		}
		next.DurationMinutes = in.DurationMinutes
	}
	if in.Reason != "" {
		next.Reason = in.Reason
	}
	if in.Notes != "" {
		next.Notes = in.Notes
	}

	var updated *Appointment

	err = s.locker.WithAgendaLock(ctx, next.ClinicianName, next.Date, func(lockCtx context.Context) error {
		// Only active visits hold slots, so only they need the re-check.
		if next.Status != StatusCancelled {
			snapshot, err := s.snapshot(lockCtx, next.ClinicianName)
			if err != nil {
				return err
			}
			if s.engine.WouldConflict(snapshot, next.ClinicianName, next.Date,
				next.StartTime, next.DurationMinutes, id.String()) {
				return ErrSlotConflict
			}
		}

		a, err := s.repo.Update(lockCtx, &next)
		if err != nil {
			return fmt.Errorf("update appointment: %w", err)
		}
		updated = a
		return nil
	})

	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrAgendaBusy
		}
		return nil, err
	}

	return updated, nil
}

// SetStatus moves a visit between scheduled, completed, cancelled and
// no_show. Re-activating a cancelled visit re-checks conflicts, because its
// slots were released the moment it was cancelled and may have been taken.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, to Status) (*Appointment, error) {
	if !to.Valid() {
		return nil, ErrInvalidStatus
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	if existing.Status == to {
		return existing, nil
	}

	if existing.Status == StatusCancelled && to == StatusScheduled {
		return s.rebook(ctx, existing)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, existing.Status, to)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			// Row existed a moment ago, so the guard lost a race.
			return nil, ErrInvalidStatusTransition
		}
		return nil, fmt.Errorf("update status: %w", err)
	}

	return updated, nil
}

func (s *Service) rebook(ctx context.Context, existing *Appointment) (*Appointment, error) {
	var updated *Appointment

	err := s.locker.WithAgendaLock(ctx, existing.ClinicianName, existing.Date, func(lockCtx context.Context) error {
		snapshot, err := s.snapshot(lockCtx, existing.ClinicianName)
		if err != nil {
			return err
		}
		if s.engine.WouldConflict(snapshot, existing.ClinicianName, existing.Date,
			existing.StartTime, existing.DurationMinutes, existing.ID.String()) {
			return ErrSlotConflict
		}

		a, err := s.repo.UpdateStatus(lockCtx, existing.ID, StatusCancelled, StatusScheduled)
		if err != nil {
			return fmt.Errorf("rebook appointment: %w", err)
		}
		updated = a
		return nil
	})

	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrAgendaBusy
		}
		return nil, err
	}

	return updated, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Appointment, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50 // default
	}
	if filter.Limit > 200 {
		filter.Limit = 200 // max
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	appts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("appointment deleted", zap.String("id", id.String()))
	return nil
}

// AvailableSlots answers the dashboard time picker: every calendar slot for
// the clinician and date, flagged bookable or not for the requested
// duration.
func (s *Service) AvailableSlots(ctx context.Context, clinician, date string, durationMinutes int, excludeID string) ([]schedule.SlotAvailability, error) {
	if _, err := time.Parse(DateFormat, date); err != nil {
		return nil, ErrInvalidDate
	}
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	snapshot, err := s.snapshot(ctx, clinician)
	if err != nil {
		return nil, err
	}

	return s.engine.AvailableSlots(snapshot, clinician, date, durationMinutes, excludeID), nil
}

// FullyBookedDates returns, sorted, the dates the calendar widget should
// disable outright for a clinician.
func (s *Service) FullyBookedDates(ctx context.Context, clinician, excludeID string) ([]string, error) {
	snapshot, err := s.snapshot(ctx, clinician)
	if err != nil {
		return nil, err
	}

	full := s.engine.FullyBookedDates(snapshot, clinician, excludeID)
	dates := make([]string, 0, len(full))
	for d := range full {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates, nil
}

// MarkOverdueNoShows is called by the worker. Visits still scheduled more
// than the grace period after their start are flagged no_show so the
// dashboard's follow-up queue picks them up.
func (s *Service) MarkOverdueNoShows(ctx context.Context, grace time.Duration) (int, error) {
	cutoff := time.Now().Add(-grace)

	overdue, err := s.repo.FindOverdueScheduled(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("find overdue appointments: %w", err)
	}

	marked := 0
	for _, a := range overdue {
		_, err := s.repo.UpdateStatus(ctx, a.ID, StatusScheduled, StatusNoShow)
		if err != nil && !errors.Is(err, ErrAppointmentNotFound) {
			s.logger.Error("failed to mark appointment no_show",
				zap.String("id", a.ID.String()), zap.Error(err))
			continue
		}
		marked++
	}

	return marked, nil
}

func (s *Service) snapshot(ctx context.Context, clinician string) ([]schedule.Appointment, error) {
	appts, err := s.repo.ListForClinician(ctx, clinician)
	if err != nil {
		return nil, fmt.Errorf("load clinician appointments: %w", err)
	}

	view := make([]schedule.Appointment, 0, len(appts))
	for i := range appts {
		view = append(view, appts[i].ScheduleView())
	}
	return view, nil
}
