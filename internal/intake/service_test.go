package intake

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	mu        sync.Mutex
	visits    map[uuid.UUID]VisitRequest
	referrals map[uuid.UUID]Referral
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		visits:    make(map[uuid.UUID]VisitRequest),
		referrals: make(map[uuid.UUID]Referral),
	}
}

func (r *fakeRepo) CreateVisitRequest(_ context.Context, v *VisitRequest) (*VisitRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *v
	c.ID = uuid.New()
	r.visits[c.ID] = c
	return &c, nil
}

func (r *fakeRepo) GetVisitRequest(_ context.Context, id uuid.UUID) (*VisitRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.visits[id]
	if !ok {
		return nil, ErrVisitRequestNotFound
	}
	return &v, nil
}

func (r *fakeRepo) ListVisitRequests(_ context.Context, status VisitRequestStatus, _, _ int) ([]VisitRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []VisitRequest
	for _, v := range r.visits {
		if status == "" || v.Status == status {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateVisitRequestStatus(_ context.Context, id uuid.UUID, to VisitRequestStatus) (*VisitRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.visits[id]
	if !ok {
		return nil, ErrVisitRequestNotFound
	}
	v.Status = to
	r.visits[id] = v
	return &v, nil
}

func (r *fakeRepo) DeleteVisitRequest(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.visits[id]; !ok {
		return ErrVisitRequestNotFound
	}
	delete(r.visits, id)
	return nil
}

func (r *fakeRepo) CreateReferral(_ context.Context, ref *Referral) (*Referral, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *ref
	c.ID = uuid.New()
	r.referrals[c.ID] = c
	return &c, nil
}

func (r *fakeRepo) GetReferral(_ context.Context, id uuid.UUID) (*Referral, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ref, ok := r.referrals[id]
	if !ok {
		return nil, ErrReferralNotFound
	}
	return &ref, nil
}

func (r *fakeRepo) ListReferrals(_ context.Context, status ReferralStatus, _, _ int) ([]Referral, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Referral
	for _, ref := range r.referrals {
		if status == "" || ref.Status == status {
			out = append(out, ref)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateReferralStatus(_ context.Context, id uuid.UUID, to ReferralStatus) (*Referral, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ref, ok := r.referrals[id]
	if !ok {
		return nil, ErrReferralNotFound
	}
	ref.Status = to
	r.referrals[id] = ref
	return &ref, nil
}

func (r *fakeRepo) DeleteReferral(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.referrals[id]; !ok {
		return ErrReferralNotFound
	}
	delete(r.referrals, id)
	return nil
}

func newTestService() *Service {
	return NewService(newFakeRepo(), zap.NewNop())
}

func TestSubmitVisitRequest(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("submissions always start as new", func(t *testing.T) {
		v, err := svc.SubmitVisitRequest(ctx, VisitRequest{
			PatientName: "Pat Doe",
			Email:       "pat@example.com",
			Status:      VisitClosed, // client-supplied status is ignored
		})
		require.NoError(t, err)
		assert.Equal(t, VisitNew, v.Status)
	})

	t.Run("rejects malformed preferred date", func(t *testing.T) {
		_, err := svc.SubmitVisitRequest(ctx, VisitRequest{
			PatientName:   "Pat Doe",
			PreferredDate: "next tuesday",
		})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("empty preferred date is fine", func(t *testing.T) {
		_, err := svc.SubmitVisitRequest(ctx, VisitRequest{PatientName: "Pat Doe"})
		assert.NoError(t, err)
	})
}

func TestVisitRequestTriage(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	v, err := svc.SubmitVisitRequest(ctx, VisitRequest{PatientName: "Pat Doe"})
	require.NoError(t, err)

	updated, err := svc.SetVisitRequestStatus(ctx, v.ID, VisitContacted)
	require.NoError(t, err)
	assert.Equal(t, VisitContacted, updated.Status)

	_, err = svc.SetVisitRequestStatus(ctx, v.ID, VisitRequestStatus("archived"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.SetVisitRequestStatus(ctx, uuid.New(), VisitClosed)
	assert.ErrorIs(t, err, ErrVisitRequestNotFound)
}

func TestCreateReferral(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("defaults urgency to routine", func(t *testing.T) {
		r, err := svc.CreateReferral(ctx, Referral{
			ReferringProvider: "Dr. Out",
			PatientName:       "Pat Doe",
		})
		require.NoError(t, err)
		assert.Equal(t, UrgencyRoutine, r.Urgency)
		assert.Equal(t, ReferralReceived, r.Status)
	})

	t.Run("rejects unknown urgency", func(t *testing.T) {
		_, err := svc.CreateReferral(ctx, Referral{
			ReferringProvider: "Dr. Out",
			PatientName:       "Pat Doe",
			Urgency:           Urgency("asap"),
		})
		assert.ErrorIs(t, err, ErrInvalidUrgency)
	})
}
