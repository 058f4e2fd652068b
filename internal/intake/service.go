package intake

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidStatus  = errors.New("unknown status")
	ErrInvalidUrgency = errors.New("unknown urgency")
	ErrInvalidDate    = errors.New("date must be YYYY-MM-DD")
)

const dateFormat = "2006-01-02"

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// SubmitVisitRequest handles the public website form. New requests always
// start in status new.
func (s *Service) SubmitVisitRequest(ctx context.Context, v VisitRequest) (*VisitRequest, error) {
	if v.PreferredDate != "" {
		if _, err := time.Parse(dateFormat, v.PreferredDate); err != nil {
			return nil, ErrInvalidDate
		}
	}
	v.Status = VisitNew

	created, err := s.repo.CreateVisitRequest(ctx, &v)
	if err != nil {
		return nil, fmt.Errorf("create visit request: %w", err)
	}

	s.logger.Info("visit request received",
		zap.String("id", created.ID.String()),
		zap.String("clinician", created.PreferredClinician))

	return created, nil
}

func (s *Service) GetVisitRequest(ctx context.Context, id uuid.UUID) (*VisitRequest, error) {
	return s.repo.GetVisitRequest(ctx, id)
}

func (s *Service) ListVisitRequests(ctx context.Context, status VisitRequestStatus, limit, offset int) ([]VisitRequest, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	limit, offset = clampPage(limit, offset)
	return s.repo.ListVisitRequests(ctx, status, limit, offset)
}

func (s *Service) SetVisitRequestStatus(ctx context.Context, id uuid.UUID, to VisitRequestStatus) (*VisitRequest, error) {
	if !to.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.UpdateVisitRequestStatus(ctx, id, to)
}

func (s *Service) DeleteVisitRequest(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteVisitRequest(ctx, id)
}

func (s *Service) CreateReferral(ctx context.Context, r Referral) (*Referral, error) {
	if r.Urgency == "" {
		r.Urgency = UrgencyRoutine
	}
	if !r.Urgency.Valid() {
		return nil, ErrInvalidUrgency
	}
	if r.PatientDOB != "" {
		if _, err := time.Parse(dateFormat, r.PatientDOB); err != nil {
			return nil, ErrInvalidDate
		}
	}
	r.Status = ReferralReceived

	created, err := s.repo.CreateReferral(ctx, &r)
	if err != nil {
		return nil, fmt.Errorf("create referral: %w", err)
	}

	s.logger.Info("referral received",
		zap.String("id", created.ID.String()),
		zap.String("urgency", string(created.Urgency)))

	return created, nil
}

func (s *Service) GetReferral(ctx context.Context, id uuid.UUID) (*Referral, error) {
	return s.repo.GetReferral(ctx, id)
}

func (s *Service) ListReferrals(ctx context.Context, status ReferralStatus, limit, offset int) ([]Referral, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	limit, offset = clampPage(limit, offset)
	return s.repo.ListReferrals(ctx, status, limit, offset)
}

func (s *Service) SetReferralStatus(ctx context.Context, id uuid.UUID, to ReferralStatus) (*Referral, error) {
	if !to.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.UpdateReferralStatus(ctx, id, to)
}

func (s *Service) DeleteReferral(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteReferral(ctx, id)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50 // default
	}
	if limit > 200 {
		limit = 200 // max
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
