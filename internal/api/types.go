package api

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/alexanders-dream/compassionate-care-api/internal/appointment"
	"github.com/alexanders-dream/compassionate-care-api/internal/content"
	"github.com/alexanders-dream/compassionate-care-api/internal/forms"
	"github.com/alexanders-dream/compassionate-care-api/internal/intake"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Appointments

type CreateAppointmentRequest struct {
	PatientName     string `json:"patient_name" validate:"required"`
	PatientPhone    string `json:"patient_phone"`
	ClinicianName   string `json:"clinician_name" validate:"required"`
	Date            string `json:"date" validate:"required"`
	StartTime       string `json:"start_time" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes"`
	AutoAssign      bool   `json:"auto_assign"`
}

type UpdateAppointmentRequest struct {
	PatientName     string `json:"patient_name"`
	PatientPhone    string `json:"patient_phone"`
	ClinicianName   string `json:"clinician_name"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes" validate:"gte=0"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	PatientName     string    `json:"patient_name"`
	PatientPhone    string    `json:"patient_phone,omitempty"`
	ClinicianName   string    `json:"clinician_name"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	Reason          string    `json:"reason,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toAppointmentResponse(a *appointment.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:              a.ID,
		PatientName:     a.PatientName,
		PatientPhone:    a.PatientPhone,
		ClinicianName:   a.ClinicianName,
		Date:            a.Date,
		StartTime:       a.StartTime,
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		Reason:          a.Reason,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func toAppointmentResponses(appts []appointment.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(appts))
	for i := range appts {
		out = append(out, toAppointmentResponse(&appts[i]))
	}
	return out
}

// Intake

type CreateVisitRequestRequest struct {
	PatientName        string `json:"patient_name" validate:"required"`
	Email              string `json:"email" validate:"omitempty,email"`
	Phone              string `json:"phone"`
	PreferredClinician string `json:"preferred_clinician"`
	PreferredDate      string `json:"preferred_date"`
	Reason             string `json:"reason"`
}

type VisitRequestResponse struct {
	ID                 uuid.UUID `json:"id"`
	PatientName        string    `json:"patient_name"`
	Email              string    `json:"email,omitempty"`
	Phone              string    `json:"phone,omitempty"`
	PreferredClinician string    `json:"preferred_clinician,omitempty"`
	PreferredDate      string    `json:"preferred_date,omitempty"`
	Reason             string    `json:"reason,omitempty"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func toVisitRequestResponse(v *intake.VisitRequest) VisitRequestResponse {
	return VisitRequestResponse{
		ID:                 v.ID,
		PatientName:        v.PatientName,
		Email:              v.Email,
		Phone:              v.Phone,
		PreferredClinician: v.PreferredClinician,
		PreferredDate:      v.PreferredDate,
		Reason:             v.Reason,
		Status:             string(v.Status),
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

type CreateReferralRequest struct {
	ReferringProvider string `json:"referring_provider" validate:"required"`
	Practice          string `json:"practice"`
	Phone             string `json:"phone"`
	Fax               string `json:"fax"`
	PatientName       string `json:"patient_name" validate:"required"`
	PatientDOB        string `json:"patient_dob"`
	Urgency           string `json:"urgency"`
	Reason            string `json:"reason"`
}

type ReferralResponse struct {
	ID                uuid.UUID `json:"id"`
	ReferringProvider string    `json:"referring_provider"`
	Practice          string    `json:"practice,omitempty"`
	Phone             string    `json:"phone,omitempty"`
	Fax               string    `json:"fax,omitempty"`
	PatientName       string    `json:"patient_name"`
	PatientDOB        string    `json:"patient_dob,omitempty"`
	Urgency           string    `json:"urgency"`
	Reason            string    `json:"reason,omitempty"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func toReferralResponse(r *intake.Referral) ReferralResponse {
	return ReferralResponse{
		ID:                r.ID,
		ReferringProvider: r.ReferringProvider,
		Practice:          r.Practice,
		Phone:             r.Phone,
		Fax:               r.Fax,
		PatientName:       r.PatientName,
		PatientDOB:        r.PatientDOB,
		Urgency:           string(r.Urgency),
		Reason:            r.Reason,
		Status:            string(r.Status),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// Content

type BlogPostRequest struct {
	Slug          string `json:"slug"`
	Title         string `json:"title" validate:"required"`
	Excerpt       string `json:"excerpt"`
	Body          string `json:"body"`
	CoverImageURL string `json:"cover_image_url"`
	Published     bool   `json:"published"`
}

type BlogPostResponse struct {
	ID            uuid.UUID  `json:"id"`
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	Excerpt       string     `json:"excerpt,omitempty"`
	Body          string     `json:"body,omitempty"`
	CoverImageURL string     `json:"cover_image_url,omitempty"`
	Published     bool       `json:"published"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toBlogPostResponse(p *content.BlogPost) BlogPostResponse {
	return BlogPostResponse{
		ID:            p.ID,
		Slug:          p.Slug,
		Title:         p.Title,
		Excerpt:       p.Excerpt,
		Body:          p.Body,
		CoverImageURL: p.CoverImageURL,
		Published:     p.Published,
		PublishedAt:   p.PublishedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

type TeamMemberRequest struct {
	Name         string `json:"name" validate:"required"`
	Role         string `json:"role"`
	Bio          string `json:"bio"`
	PhotoURL     string `json:"photo_url"`
	DisplayOrder int    `json:"display_order"`
	Active       *bool  `json:"active"`
}

type PracticeServiceRequest struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	IconName     string `json:"icon_name"`
	DisplayOrder int    `json:"display_order"`
	Active       *bool  `json:"active"`
}

type InsuranceProviderRequest struct {
	Name         string `json:"name" validate:"required"`
	LogoURL      string `json:"logo_url"`
	DisplayOrder int    `json:"display_order"`
	Active       *bool  `json:"active"`
}

type TestimonialRequest struct {
	Author   string `json:"author" validate:"required"`
	Quote    string `json:"quote" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Approved bool   `json:"approved"`
}

// Forms

type FormConfigRequest struct {
	Fields []forms.FormField `json:"fields"`
}

type FormConfigResponse struct {
	FormName  string            `json:"form_name"`
	Fields    []forms.FormField `json:"fields"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func toFormConfigResponse(cfg *forms.FormConfig) FormConfigResponse {
	return FormConfigResponse{
		FormName:  cfg.FormName,
		Fields:    cfg.Fields,
		UpdatedAt: cfg.UpdatedAt,
	}
}

func activeOrDefault(b *bool) bool {
	if b == nil {
		return true
	}
	return *b
}
