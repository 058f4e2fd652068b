package content

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrBlogPostNotFound          = errors.New("blog post not found")
	ErrDuplicateSlug             = errors.New("a blog post with that slug already exists")
	ErrTeamMemberNotFound        = errors.New("team member not found")
	ErrPracticeServiceNotFound   = errors.New("practice service not found")
	ErrInsuranceProviderNotFound = errors.New("insurance provider not found")
	ErrTestimonialNotFound       = errors.New("testimonial not found")
)

type Repository interface {
	CreateBlogPost(ctx context.Context, p *BlogPost) (*BlogPost, error)
	GetBlogPost(ctx context.Context, id uuid.UUID) (*BlogPost, error)
	GetBlogPostBySlug(ctx context.Context, slug string) (*BlogPost, error)
	ListBlogPosts(ctx context.Context, opts ListOptions) ([]BlogPost, error)
	UpdateBlogPost(ctx context.Context, p *BlogPost) (*BlogPost, error)
	DeleteBlogPost(ctx context.Context, id uuid.UUID) error

	CreateTeamMember(ctx context.Context, m *TeamMember) (*TeamMember, error)
	GetTeamMember(ctx context.Context, id uuid.UUID) (*TeamMember, error)
	ListTeamMembers(ctx context.Context, opts ListOptions) ([]TeamMember, error)
	UpdateTeamMember(ctx context.Context, m *TeamMember) (*TeamMember, error)
	DeleteTeamMember(ctx context.Context, id uuid.UUID) error

	CreatePracticeService(ctx context.Context, s *PracticeService) (*PracticeService, error)
	GetPracticeService(ctx context.Context, id uuid.UUID) (*PracticeService, error)
	ListPracticeServices(ctx context.Context, opts ListOptions) ([]PracticeService, error)
	UpdatePracticeService(ctx context.Context, s *PracticeService) (*PracticeService, error)
	DeletePracticeService(ctx context.Context, id uuid.UUID) error

	CreateInsuranceProvider(ctx context.Context, p *InsuranceProvider) (*InsuranceProvider, error)
	GetInsuranceProvider(ctx context.Context, id uuid.UUID) (*InsuranceProvider, error)
	ListInsuranceProviders(ctx context.Context, opts ListOptions) ([]InsuranceProvider, error)
	UpdateInsuranceProvider(ctx context.Context, p *InsuranceProvider) (*InsuranceProvider, error)
	DeleteInsuranceProvider(ctx context.Context, id uuid.UUID) error

	CreateTestimonial(ctx context.Context, tm *Testimonial) (*Testimonial, error)
	GetTestimonial(ctx context.Context, id uuid.UUID) (*Testimonial, error)
	ListTestimonials(ctx context.Context, opts ListOptions) ([]Testimonial, error)
	UpdateTestimonial(ctx context.Context, tm *Testimonial) (*Testimonial, error)
	DeleteTestimonial(ctx context.Context, id uuid.UUID) error
}
