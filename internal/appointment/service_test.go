package appointment

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	redisclient "github.com/alexanders-dream/compassionate-care-api/internal/redis"
	"github.com/alexanders-dream/compassionate-care-api/internal/schedule"
)

// fakeRepo keeps appointments in memory; enough fidelity for service tests.
type fakeRepo struct {
	mu    sync.Mutex
	appts map[uuid.UUID]Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{appts: make(map[uuid.UUID]Appointment)}
}

func (r *fakeRepo) Create(_ context.Context, a *Appointment) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *a
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.appts[c.ID] = c
	return &c, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.appts[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	return &a, nil
}

func (r *fakeRepo) Update(_ context.Context, a *Appointment) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.appts[a.ID]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	next := *a
	next.Status = cur.Status
	next.UpdatedAt = time.Now()
	r.appts[a.ID] = next
	return &next, nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appts[id]; !ok {
		return ErrAppointmentNotFound
	}
	delete(r.appts, id)
	return nil
}

func (r *fakeRepo) List(_ context.Context, filter ListFilter) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Appointment
	for _, a := range r.appts {
		if filter.Clinician != "" && a.ClinicianName != filter.Clinician {
			continue
		}
		if filter.Date != "" && a.Date != filter.Date {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (r *fakeRepo) ListForClinician(_ context.Context, clinician string) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Appointment
	for _, a := range r.appts {
		if a.ClinicianName == clinician {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to Status) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.appts[id]
	if !ok || a.Status != from {
		return nil, ErrAppointmentNotFound
	}
	a.Status = to
	a.UpdatedAt = time.Now()
	r.appts[id] = a
	return &a, nil
}

func (r *fakeRepo) FindOverdueScheduled(_ context.Context, before time.Time) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Appointment
	for _, a := range r.appts {
		if a.Status != StatusScheduled {
			continue
		}
		start, err := time.Parse(DateFormat+" "+TimeFormat, a.Date+" "+a.StartTime)
		if err != nil {
			continue
		}
		if start.Before(before) {
			out = append(out, a)
		}
	}
	return out, nil
}

// passLocker runs the critical section inline.
type passLocker struct{}

func (passLocker) WithAgendaLock(ctx context.Context, _, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// busyLocker always reports contention.
type busyLocker struct{}

func (busyLocker) WithAgendaLock(context.Context, string, string, func(ctx context.Context) error) error {
	return redisclient.ErrLockNotAcquired
}

func newTestService(t *testing.T) (*Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	engine := schedule.NewEngine(schedule.DefaultCalendar())
	return NewService(repo, engine, passLocker{}, zap.NewNop()), repo
}

func mustSchedule(t *testing.T, svc *Service, in ScheduleInput) *Appointment {
	t.Helper()
	a, err := svc.Schedule(context.Background(), in)
	require.NoError(t, err)
	return a
}

func baseInput() ScheduleInput {
	return ScheduleInput{
		PatientName:     "Pat Doe",
		PatientPhone:    "555-0100",
		ClinicianName:   "Dr. A",
		Date:            "2024-01-10",
		StartTime:       "09:00",
		DurationMinutes: 30,
		Reason:          "follow-up",
	}
}

func TestSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("books a free slot", func(t *testing.T) {
		svc, _ := newTestService(t)
		a := mustSchedule(t, svc, baseInput())
		assert.Equal(t, StatusScheduled, a.Status)
		assert.Equal(t, "09:00", a.StartTime)
	})

	t.Run("rejects a conflicting slot at save time", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustSchedule(t, svc, baseInput())

		in := baseInput()
		in.PatientName = "Other Patient"
		_, err := svc.Schedule(ctx, in)
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("duration-aware conflicts block overlapping starts", func(t *testing.T) {
		svc, _ := newTestService(t)
		in := baseInput()
		in.DurationMinutes = 60 // holds 09:00 and 09:30
		mustSchedule(t, svc, in)

		late := baseInput()
		late.StartTime = "09:30"
		_, err := svc.Schedule(ctx, late)
		assert.ErrorIs(t, err, ErrSlotConflict)

		// 08:30 for 60 minutes would need 09:00 as well.
		early := baseInput()
		early.StartTime = "08:30"
		early.DurationMinutes = 60
		_, err = svc.Schedule(ctx, early)
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("auto-assign falls forward to the first free slot", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustSchedule(t, svc, baseInput())

		in := baseInput()
		in.AutoAssign = true
		a, err := svc.Schedule(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "08:00", a.StartTime, "earliest calendar slot wins")
	})

	t.Run("auto-assign on a full day reports no slots", func(t *testing.T) {
		svc, _ := newTestService(t)
		in := baseInput()
		in.StartTime = "08:00"
		in.DurationMinutes = 19 * 30 // the whole grid
		mustSchedule(t, svc, in)

		again := baseInput()
		again.AutoAssign = true
		_, err := svc.Schedule(ctx, again)
		assert.ErrorIs(t, err, ErrNoSlotsAvailable)
	})

	t.Run("different clinician same time is fine", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustSchedule(t, svc, baseInput())

		in := baseInput()
		in.ClinicianName = "Dr. B"
		_, err := svc.Schedule(ctx, in)
		assert.NoError(t, err)
	})

	t.Run("validates input shape", func(t *testing.T) {
		svc, _ := newTestService(t)

		in := baseInput()
		in.Date = "01/10/2024"
		_, err := svc.Schedule(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidDate)

		in = baseInput()
		in.StartTime = "9am"
		_, err = svc.Schedule(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidTime)

		in = baseInput()
		in.DurationMinutes = -30
		_, err = svc.Schedule(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})

	t.Run("surfaces lock contention as agenda busy", func(t *testing.T) {
		repo := newFakeRepo()
		engine := schedule.NewEngine(schedule.DefaultCalendar())
		svc := NewService(repo, engine, busyLocker{}, zap.NewNop())

		_, err := svc.Schedule(ctx, baseInput())
		assert.ErrorIs(t, err, ErrAgendaBusy)
	})
}

func TestReschedule(t *testing.T) {
	ctx := context.Background()

	t.Run("keeping the same time never self-conflicts", func(t *testing.T) {
		svc, _ := newTestService(t)
		a := mustSchedule(t, svc, baseInput())

		updated, err := svc.Reschedule(ctx, a.ID, RescheduleInput{Notes: "bring records"})
		require.NoError(t, err)
		assert.Equal(t, "09:00", updated.StartTime)
		assert.Equal(t, "bring records", updated.Notes)
	})

	t.Run("growing the duration into a taken slot conflicts", func(t *testing.T) {
		svc, _ := newTestService(t)
		a := mustSchedule(t, svc, baseInput())

		next := baseInput()
		next.StartTime = "09:30"
		mustSchedule(t, svc, next)

		_, err := svc.Reschedule(ctx, a.ID, RescheduleInput{DurationMinutes: 60})
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("moving to a free day succeeds", func(t *testing.T) {
		svc, _ := newTestService(t)
		a := mustSchedule(t, svc, baseInput())

		updated, err := svc.Reschedule(ctx, a.ID, RescheduleInput{Date: "2024-01-11"})
		require.NoError(t, err)
		assert.Equal(t, "2024-01-11", updated.Date)
	})

	t.Run("unknown appointment", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Reschedule(ctx, uuid.New(), RescheduleInput{Date: "2024-01-11"})
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("cancelling releases the slot", func(t *testing.T) {
		svc, _ := newTestService(t)
		a := mustSchedule(t, svc, baseInput())

		_, err := svc.SetStatus(ctx, a.ID, StatusCancelled)
		require.NoError(t, err)

		// Same slot is bookable again.
		in := baseInput()
		in.PatientName = "Next Patient"
		_, err = svc.Schedule(ctx, in)
		assert.NoError(t, err)
	})

	t.Run("rebooking a cancelled visit re-checks conflicts", func(t *testing.T) {
		svc, _ := newTestService(t)
		a := mustSchedule(t, svc, baseInput())

		_, err := svc.SetStatus(ctx, a.ID, StatusCancelled)
		require.NoError(t, err)

		// Someone else takes the freed slot.
		in := baseInput()
		in.PatientName = "Next Patient"
		mustSchedule(t, svc, in)

		_, err = svc.SetStatus(ctx, a.ID, StatusScheduled)
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("rebooking succeeds while the slot is still free", func(t *testing.T) {
		svc, _ := newTestService(t)
		a := mustSchedule(t, svc, baseInput())

		_, err := svc.SetStatus(ctx, a.ID, StatusCancelled)
		require.NoError(t, err)

		restored, err := svc.SetStatus(ctx, a.ID, StatusScheduled)
		require.NoError(t, err)
		assert.Equal(t, StatusScheduled, restored.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		svc, _ := newTestService(t)
		a := mustSchedule(t, svc, baseInput())

		_, err := svc.SetStatus(ctx, a.ID, Status("rescheduled"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestAvailabilityQueries(t *testing.T) {
	ctx := context.Background()

	t.Run("available slots reflect the stored snapshot", func(t *testing.T) {
		svc, _ := newTestService(t)
		in := baseInput()
		in.DurationMinutes = 60
		a := mustSchedule(t, svc, in)

		slots, err := svc.AvailableSlots(ctx, "Dr. A", "2024-01-10", 30, "")
		require.NoError(t, err)
		require.Len(t, slots, 19)

		for _, s := range slots {
			switch s.Slot {
			case "09:00", "09:30":
				assert.True(t, s.Booked, s.Slot)
			default:
				assert.False(t, s.Booked, s.Slot)
			}
		}

		// Editing the visit itself frees its own slots.
		slots, err = svc.AvailableSlots(ctx, "Dr. A", "2024-01-10", 30, a.ID.String())
		require.NoError(t, err)
		for _, s := range slots {
			assert.False(t, s.Booked, s.Slot)
		}
	})

	t.Run("fully booked dates are sorted", func(t *testing.T) {
		svc, _ := newTestService(t)

		for _, date := range []string{"2024-01-12", "2024-01-11"} {
			in := baseInput()
			in.Date = date
			in.StartTime = "08:00"
			in.DurationMinutes = 19 * 30
			mustSchedule(t, svc, in)
		}

		dates, err := svc.FullyBookedDates(ctx, "Dr. A", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"2024-01-11", "2024-01-12"}, dates)
	})
}

func TestMarkOverdueNoShows(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	past := mustSchedule(t, svc, baseInput()) // 2024-01-10, long past

	future := baseInput()
	future.Date = time.Now().AddDate(0, 0, 7).Format(DateFormat)
	upcoming := mustSchedule(t, svc, future)

	marked, err := svc.MarkOverdueNoShows(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	got, err := repo.GetByID(ctx, past.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusNoShow, got.Status)

	got, err = repo.GetByID(ctx, upcoming.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, got.Status)
}
