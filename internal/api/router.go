package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/alexanders-dream/compassionate-care-api/internal/appointment"
	"github.com/alexanders-dream/compassionate-care-api/internal/content"
	"github.com/alexanders-dream/compassionate-care-api/internal/forms"
	"github.com/alexanders-dream/compassionate-care-api/internal/intake"
)

type RouterConfig struct {
	Appointments *appointment.Service
	Intake       *intake.Service
	Content      *content.Service
	Forms        *forms.Service

	PgPool *pgxpool.Pool
	Redis  *redis.Client
	Logger *zap.Logger

	Env             string
	Version         string
	AdminToken      string
	AllowedOrigins  []string
	IntakeRateLimit int
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Route("/api/v1", func(r chi.Router) {
		// Public surface: what the marketing site and its booking widget need.
		r.Group(func(r chi.Router) {
			if cfg.IntakeRateLimit > 0 {
				r.With(httprate.LimitByIP(cfg.IntakeRateLimit, time.Minute)).
					Post("/visit-requests", submitVisitRequestHandler(cfg.Intake))
			} else {
				r.Post("/visit-requests", submitVisitRequestHandler(cfg.Intake))
			}

			r.Get("/availability/slots", availableSlotsHandler(cfg.Appointments))
			r.Get("/availability/fully-booked", fullyBookedDatesHandler(cfg.Appointments))

			r.Get("/blog-posts", listBlogPostsHandler(cfg.Content, true))
			r.Get("/blog-posts/slug/{slug}", getBlogPostBySlugHandler(cfg.Content))
			r.Get("/team-members", listTeamMembersHandler(cfg.Content, true))
			r.Get("/services", listPracticeServicesHandler(cfg.Content, true))
			r.Get("/insurance-providers", listInsuranceProvidersHandler(cfg.Content, true))
			r.Get("/testimonials", listTestimonialsHandler(cfg.Content, true))
			r.Get("/form-configs/{name}", getFormConfigHandler(cfg.Forms))
		})

		// Everything else is the dashboard's, behind the admin token.
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg.AdminToken))

			r.Route("/appointments", func(r chi.Router) {
				r.Post("/", createAppointmentHandler(cfg.Appointments))
				r.Get("/", listAppointmentsHandler(cfg.Appointments))
				r.Get("/{id}", getAppointmentHandler(cfg.Appointments))
				r.Put("/{id}", updateAppointmentHandler(cfg.Appointments))
				r.Patch("/{id}/status", updateAppointmentStatusHandler(cfg.Appointments))
				r.Delete("/{id}", deleteAppointmentHandler(cfg.Appointments))
			})

			r.Route("/admin/visit-requests", func(r chi.Router) {
				r.Get("/", listVisitRequestsHandler(cfg.Intake))
				r.Get("/{id}", getVisitRequestHandler(cfg.Intake))
				r.Patch("/{id}/status", updateVisitRequestStatusHandler(cfg.Intake))
				r.Delete("/{id}", deleteVisitRequestHandler(cfg.Intake))
			})

			r.Route("/referrals", func(r chi.Router) {
				r.Post("/", createReferralHandler(cfg.Intake))
				r.Get("/", listReferralsHandler(cfg.Intake))
				r.Get("/{id}", getReferralHandler(cfg.Intake))
				r.Patch("/{id}/status", updateReferralStatusHandler(cfg.Intake))
				r.Delete("/{id}", deleteReferralHandler(cfg.Intake))
			})

			r.Route("/admin/blog-posts", func(r chi.Router) {
				r.Post("/", createBlogPostHandler(cfg.Content))
				r.Get("/", listBlogPostsHandler(cfg.Content, false))
				r.Get("/{id}", getBlogPostHandler(cfg.Content))
				r.Put("/{id}", updateBlogPostHandler(cfg.Content))
				r.Delete("/{id}", deleteBlogPostHandler(cfg.Content))
			})

			r.Route("/admin/team-members", func(r chi.Router) {
				r.Post("/", createTeamMemberHandler(cfg.Content))
				r.Get("/", listTeamMembersHandler(cfg.Content, false))
				r.Get("/{id}", getTeamMemberHandler(cfg.Content))
				r.Put("/{id}", updateTeamMemberHandler(cfg.Content))
				r.Delete("/{id}", deleteTeamMemberHandler(cfg.Content))
			})

			r.Route("/admin/services", func(r chi.Router) {
				r.Post("/", createPracticeServiceHandler(cfg.Content))
				r.Get("/", listPracticeServicesHandler(cfg.Content, false))
				r.Put("/{id}", updatePracticeServiceHandler(cfg.Content))
				r.Delete("/{id}", deletePracticeServiceHandler(cfg.Content))
			})

			r.Route("/admin/insurance-providers", func(r chi.Router) {
				r.Post("/", createInsuranceProviderHandler(cfg.Content))
				r.Get("/", listInsuranceProvidersHandler(cfg.Content, false))
				r.Put("/{id}", updateInsuranceProviderHandler(cfg.Content))
				r.Delete("/{id}", deleteInsuranceProviderHandler(cfg.Content))
			})

			r.Route("/admin/testimonials", func(r chi.Router) {
				r.Post("/", createTestimonialHandler(cfg.Content))
				r.Get("/", listTestimonialsHandler(cfg.Content, false))
				r.Put("/{id}", updateTestimonialHandler(cfg.Content))
				r.Delete("/{id}", deleteTestimonialHandler(cfg.Content))
			})

			r.Route("/admin/form-configs", func(r chi.Router) {
				r.Get("/", listFormConfigsHandler(cfg.Forms))
				r.Put("/{name}", saveFormConfigHandler(cfg.Forms))
				r.Delete("/{name}", deleteFormConfigHandler(cfg.Forms))
			})
		})
	})

	return r
}
