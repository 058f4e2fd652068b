package intake

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrVisitRequestNotFound = errors.New("visit request not found")
	ErrReferralNotFound     = errors.New("referral not found")
)

type Repository interface {
	CreateVisitRequest(ctx context.Context, v *VisitRequest) (*VisitRequest, error)
	GetVisitRequest(ctx context.Context, id uuid.UUID) (*VisitRequest, error)
	ListVisitRequests(ctx context.Context, status VisitRequestStatus, limit, offset int) ([]VisitRequest, error)
	UpdateVisitRequestStatus(ctx context.Context, id uuid.UUID, to VisitRequestStatus) (*VisitRequest, error)
	DeleteVisitRequest(ctx context.Context, id uuid.UUID) error

	CreateReferral(ctx context.Context, r *Referral) (*Referral, error)
	GetReferral(ctx context.Context, id uuid.UUID) (*Referral, error)
	ListReferrals(ctx context.Context, status ReferralStatus, limit, offset int) ([]Referral, error)
	UpdateReferralStatus(ctx context.Context, id uuid.UUID, to ReferralStatus) (*Referral, error)
	DeleteReferral(ctx context.Context, id uuid.UUID) error
}
