package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alexanders-dream/compassionate-care-api/internal/appointment"
	"github.com/alexanders-dream/compassionate-care-api/internal/content"
	"github.com/alexanders-dream/compassionate-care-api/internal/forms"
	"github.com/alexanders-dream/compassionate-care-api/internal/intake"
	"github.com/alexanders-dream/compassionate-care-api/internal/schedule"
)

// In-memory repositories, just enough surface for the routes under test.

type fakeApptRepo struct {
	mu    sync.Mutex
	appts map[uuid.UUID]appointment.Appointment
}

func newFakeApptRepo() *fakeApptRepo {
	return &fakeApptRepo{appts: make(map[uuid.UUID]appointment.Appointment)}
}

func (f *fakeApptRepo) Create(_ context.Context, a *appointment.Appointment) (*appointment.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = uuid.New()
	f.appts[a.ID] = *a
	out := *a
	return &out, nil
}

func (f *fakeApptRepo) GetByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appts[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	return &a, nil
}

func (f *fakeApptRepo) Update(_ context.Context, a *appointment.Appointment) (*appointment.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.appts[a.ID]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	a.Status = cur.Status
	f.appts[a.ID] = *a
	out := *a
	return &out, nil
}

func (f *fakeApptRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.appts[id]; !ok {
		return appointment.ErrAppointmentNotFound
	}
	delete(f.appts, id)
	return nil
}

func (f *fakeApptRepo) List(_ context.Context, filter appointment.ListFilter) ([]appointment.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []appointment.Appointment
	for _, a := range f.appts {
		if filter.Clinician != "" && a.ClinicianName != filter.Clinician {
			continue
		}
		if filter.Date != "" && a.Date != filter.Date {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeApptRepo) ListForClinician(_ context.Context, clinician string) ([]appointment.Appointment, error) {
	return f.List(context.Background(), appointment.ListFilter{Clinician: clinician})
}

func (f *fakeApptRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to appointment.Status) (*appointment.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appts[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	if a.Status != from {
		return nil, appointment.ErrAppointmentNotFound
	}
	a.Status = to
	f.appts[id] = a
	return &a, nil
}

func (f *fakeApptRepo) FindOverdueScheduled(context.Context, time.Time) ([]appointment.Appointment, error) {
	return nil, nil
}

type passLocker struct{}

func (passLocker) WithAgendaLock(ctx context.Context, _, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeIntakeRepo struct {
	intake.Repository
	mu       sync.Mutex
	requests map[uuid.UUID]intake.VisitRequest
}

func (f *fakeIntakeRepo) CreateVisitRequest(_ context.Context, v *intake.VisitRequest) (*intake.VisitRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v.ID = uuid.New()
	f.requests[v.ID] = *v
	out := *v
	return &out, nil
}

func (f *fakeIntakeRepo) ListVisitRequests(_ context.Context, status intake.VisitRequestStatus, _, _ int) ([]intake.VisitRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []intake.VisitRequest
	for _, v := range f.requests {
		if status != "" && v.Status != status {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

type fakeContentRepo struct {
	content.Repository
}

func (fakeContentRepo) ListTeamMembers(context.Context, content.ListOptions) ([]content.TeamMember, error) {
	return []content.TeamMember{{ID: uuid.New(), Name: "Dr. Amara Osei", Active: true}}, nil
}

type fakeFormsRepo struct {
	forms.Repository
}

func (fakeFormsRepo) Get(_ context.Context, name string) (*forms.FormConfig, error) {
	if name != "contact" {
		return nil, forms.ErrFormNotFound
	}
	return &forms.FormConfig{
		FormName: "contact",
		Fields:   []forms.FormField{{Name: "message", Label: "Message", Type: forms.FieldTextarea}},
	}, nil
}

const testAdminToken = "test-admin-token"

func newTestRouter(t *testing.T) (http.Handler, *fakeApptRepo) {
	t.Helper()

	cal, err := schedule.NewCalendar("08:00", "17:00")
	require.NoError(t, err)

	apptRepo := newFakeApptRepo()
	logger := zap.NewNop()

	return NewRouter(RouterConfig{
		Appointments:    appointment.NewService(apptRepo, schedule.NewEngine(cal), passLocker{}, logger),
		Intake:          intake.NewService(&fakeIntakeRepo{requests: make(map[uuid.UUID]intake.VisitRequest)}, logger),
		Content:         content.NewService(fakeContentRepo{}, logger),
		Forms:           forms.NewService(fakeFormsRepo{}, logger),
		Logger:          logger,
		Env:             "test",
		Version:         "test",
		AdminToken:      testAdminToken,
		AllowedOrigins:  []string{"*"},
		IntakeRateLimit: 0,
	}), apptRepo
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthLive(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestAdminAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("missing token rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/appointments", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong token rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/appointments", "nope", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token accepted", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/appointments", testAdminToken, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("public routes skip auth", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/team-members", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCreateAppointmentEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	body := map[string]any{
		"patient_name":     "June Park",
		"clinician_name":   "Dr. Patel",
		"date":             "2026-09-14",
		"start_time":       "09:00",
		"duration_minutes": 30,
	}

	rec := doJSON(t, router, http.MethodPost, "/api/v1/appointments", testAdminToken, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "09:00", created.StartTime)
	assert.Equal(t, "scheduled", created.Status)
	assert.NotEqual(t, uuid.Nil, created.ID)

	t.Run("same slot conflicts", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/appointments", testAdminToken, body)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "slot_conflict")
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/appointments", testAdminToken, map[string]any{
			"patient_name": "June Park",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed id is a 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/appointments/not-a-uuid", testAdminToken, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/appointments/"+uuid.NewString(), testAdminToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAvailabilityEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/appointments", testAdminToken, map[string]any{
		"patient_name":     "June Park",
		"clinician_name":   "Dr. Patel",
		"date":             "2026-09-14",
		"start_time":       "08:00",
		"duration_minutes": 60,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet,
		"/api/v1/availability/slots?clinician=Dr.+Patel&date=2026-09-14", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Slots []schedule.SlotAvailability `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Slots, 19)
	assert.True(t, resp.Slots[0].Booked)  // 08:00
	assert.True(t, resp.Slots[1].Booked)  // 08:30, second half of the hour
	assert.False(t, resp.Slots[2].Booked) // 09:00

	t.Run("clinician required", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/availability/slots?date=2026-09-14", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("fully booked empty for light day", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/availability/fully-booked?clinician=Dr.+Patel", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Dates []string `json:"dates"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Empty(t, resp.Dates)
	})
}

func TestVisitRequestSubmission(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/visit-requests", "", map[string]any{
		"patient_name": "Sam Rivera",
		"email":        "sam@example.com",
		"reason":       "knee pain",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created VisitRequestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "new", created.Status)

	t.Run("bad email rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/visit-requests", "", map[string]any{
			"patient_name": "Sam Rivera",
			"email":        "not-an-email",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPublicFormConfig(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/form-configs/contact", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var cfg FormConfigResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, "contact", cfg.FormName)
	require.Len(t, cfg.Fields, 1)
	assert.Equal(t, forms.FieldTextarea, cfg.Fields[0].Type)

	t.Run("unknown form is a 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/form-configs/nope", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
