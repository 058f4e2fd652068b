package content

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrMissingTitle  = errors.New("title is required")
	ErrMissingName   = errors.New("name is required")
	ErrMissingQuote  = errors.New("quote is required")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

var slugScrub = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a post title.
func Slugify(title string) string {
	s := slugScrub.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

func clampPage(opts ListOptions) ListOptions {
	if opts.Limit <= 0 {
		opts.Limit = 50 // default
	}
	if opts.Limit > 200 {
		opts.Limit = 200 // max
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return opts
}

// Blog posts

func (s *Service) CreateBlogPost(ctx context.Context, p BlogPost) (*BlogPost, error) {
	if strings.TrimSpace(p.Title) == "" {
		return nil, ErrMissingTitle
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	if p.Published && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}

	created, err := s.repo.CreateBlogPost(ctx, &p)
	if err != nil {
		return nil, err
	}

	s.logger.Info("blog post created",
		zap.String("id", created.ID.String()), zap.String("slug", created.Slug))
	return created, nil
}

func (s *Service) GetBlogPost(ctx context.Context, id uuid.UUID) (*BlogPost, error) {
	return s.repo.GetBlogPost(ctx, id)
}

func (s *Service) GetBlogPostBySlug(ctx context.Context, slug string) (*BlogPost, error) {
	return s.repo.GetBlogPostBySlug(ctx, slug)
}

func (s *Service) ListBlogPosts(ctx context.Context, opts ListOptions) ([]BlogPost, error) {
	return s.repo.ListBlogPosts(ctx, clampPage(opts))
}

func (s *Service) UpdateBlogPost(ctx context.Context, p BlogPost) (*BlogPost, error) {
	existing, err := s.repo.GetBlogPost(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Title) == "" {
		return nil, ErrMissingTitle
	}
	if p.Slug == "" {
		p.Slug = existing.Slug
	}
	// First transition to published stamps the publication time.
	if p.Published && !existing.Published && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}
	if p.PublishedAt == nil {
		p.PublishedAt = existing.PublishedAt
	}
	return s.repo.UpdateBlogPost(ctx, &p)
}

func (s *Service) DeleteBlogPost(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteBlogPost(ctx, id)
}

// Team members

func (s *Service) CreateTeamMember(ctx context.Context, m TeamMember) (*TeamMember, error) {
	if strings.TrimSpace(m.Name) == "" {
		return nil, ErrMissingName
	}
	return s.repo.CreateTeamMember(ctx, &m)
}

func (s *Service) GetTeamMember(ctx context.Context, id uuid.UUID) (*TeamMember, error) {
	return s.repo.GetTeamMember(ctx, id)
}

func (s *Service) ListTeamMembers(ctx context.Context, opts ListOptions) ([]TeamMember, error) {
	return s.repo.ListTeamMembers(ctx, clampPage(opts))
}

func (s *Service) UpdateTeamMember(ctx context.Context, m TeamMember) (*TeamMember, error) {
	if strings.TrimSpace(m.Name) == "" {
		return nil, ErrMissingName
	}
	return s.repo.UpdateTeamMember(ctx, &m)
}

func (s *Service) DeleteTeamMember(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTeamMember(ctx, id)
}

// Practice services

func (s *Service) CreatePracticeService(ctx context.Context, ps PracticeService) (*PracticeService, error) {
	if strings.TrimSpace(ps.Name) == "" {
		return nil, ErrMissingName
	}
	return s.repo.CreatePracticeService(ctx, &ps)
}

func (s *Service) GetPracticeService(ctx context.Context, id uuid.UUID) (*PracticeService, error) {
	return s.repo.GetPracticeService(ctx, id)
}

func (s *Service) ListPracticeServices(ctx context.Context, opts ListOptions) ([]PracticeService, error) {
	return s.repo.ListPracticeServices(ctx, clampPage(opts))
}

func (s *Service) UpdatePracticeService(ctx context.Context, ps PracticeService) (*PracticeService, error) {
	if strings.TrimSpace(ps.Name) == "" {
		return nil, ErrMissingName
	}
	return s.repo.UpdatePracticeService(ctx, &ps)
}

func (s *Service) DeletePracticeService(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeletePracticeService(ctx, id)
}

// Insurance providers

func (s *Service) CreateInsuranceProvider(ctx context.Context, p InsuranceProvider) (*InsuranceProvider, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, ErrMissingName
	}
	return s.repo.CreateInsuranceProvider(ctx, &p)
}

func (s *Service) GetInsuranceProvider(ctx context.Context, id uuid.UUID) (*InsuranceProvider, error) {
	return s.repo.GetInsuranceProvider(ctx, id)
}

func (s *Service) ListInsuranceProviders(ctx context.Context, opts ListOptions) ([]InsuranceProvider, error) {
	return s.repo.ListInsuranceProviders(ctx, clampPage(opts))
}

func (s *Service) UpdateInsuranceProvider(ctx context.Context, p InsuranceProvider) (*InsuranceProvider, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, ErrMissingName
	}
	return s.repo.UpdateInsuranceProvider(ctx, &p)
}

func (s *Service) DeleteInsuranceProvider(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteInsuranceProvider(ctx, id)
}

// Testimonials

func (s *Service) CreateTestimonial(ctx context.Context, tm Testimonial) (*Testimonial, error) {
	if strings.TrimSpace(tm.Quote) == "" {
		return nil, ErrMissingQuote
	}
	if tm.Rating < 1 || tm.Rating > 5 {
		return nil, ErrInvalidRating
	}
	return s.repo.CreateTestimonial(ctx, &tm)
}

func (s *Service) GetTestimonial(ctx context.Context, id uuid.UUID) (*Testimonial, error) {
	return s.repo.GetTestimonial(ctx, id)
}

func (s *Service) ListTestimonials(ctx context.Context, opts ListOptions) ([]Testimonial, error) {
	return s.repo.ListTestimonials(ctx, clampPage(opts))
}

func (s *Service) UpdateTestimonial(ctx context.Context, tm Testimonial) (*Testimonial, error) {
	if strings.TrimSpace(tm.Quote) == "" {
		return nil, ErrMissingQuote
	}
	if tm.Rating < 1 || tm.Rating > 5 {
		return nil, ErrInvalidRating
	}
	return s.repo.UpdateTestimonial(ctx, &tm)
}

func (s *Service) DeleteTestimonial(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTestimonial(ctx, id)
}
