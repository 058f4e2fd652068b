package intake

import (
	"time"

	"github.com/google/uuid"
)

type VisitRequestStatus string

const (
	VisitNew       VisitRequestStatus = "new"
	VisitContacted VisitRequestStatus = "contacted"
	VisitScheduled VisitRequestStatus = "scheduled"
	VisitClosed    VisitRequestStatus = "closed"
)

func (s VisitRequestStatus) Valid() bool {
	switch s {
	case VisitNew, VisitContacted, VisitScheduled, VisitClosed:
		return true
	}
	return false
}

// VisitRequest is a patient-submitted ask for an appointment, triaged by
// front-desk staff from the dashboard.
type VisitRequest struct {
	ID                 uuid.UUID
	PatientName        string
	Email              string
	Phone              string
	PreferredClinician string
	PreferredDate      string // YYYY-MM-DD, empty when the patient had no preference
	Reason             string
	Status             VisitRequestStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Urgency string

const (
	UrgencyRoutine   Urgency = "routine"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyEmergency Urgency = "emergency"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyRoutine, UrgencyUrgent, UrgencyEmergency:
		return true
	}
	return false
}

type ReferralStatus string

const (
	ReferralReceived  ReferralStatus = "received"
	ReferralInReview  ReferralStatus = "in_review"
	ReferralScheduled ReferralStatus = "scheduled"
	ReferralDeclined  ReferralStatus = "declined"
)

func (s ReferralStatus) Valid() bool {
	switch s {
	case ReferralReceived, ReferralInReview, ReferralScheduled, ReferralDeclined:
		return true
	}
	return false
}

// Referral is an inbound provider-to-provider referral.
type Referral struct {
	ID                uuid.UUID
	ReferringProvider string
	Practice          string
	Phone             string
	Fax               string
	PatientName       string
	PatientDOB        string // YYYY-MM-DD, empty when not supplied
	Urgency           Urgency
	Reason            string
	Status            ReferralStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
