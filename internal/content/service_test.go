package content

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRepo embeds the interface and implements only what these tests touch.
type fakeRepo struct {
	Repository
	posts        map[uuid.UUID]BlogPost
	testimonials map[uuid.UUID]Testimonial
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		posts:        make(map[uuid.UUID]BlogPost),
		testimonials: make(map[uuid.UUID]Testimonial),
	}
}

func (r *fakeRepo) CreateBlogPost(_ context.Context, p *BlogPost) (*BlogPost, error) {
	for _, existing := range r.posts {
		if existing.Slug == p.Slug {
			return nil, ErrDuplicateSlug
		}
	}
	c := *p
	c.ID = uuid.New()
	r.posts[c.ID] = c
	return &c, nil
}

func (r *fakeRepo) GetBlogPost(_ context.Context, id uuid.UUID) (*BlogPost, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, ErrBlogPostNotFound
	}
	return &p, nil
}

func (r *fakeRepo) UpdateBlogPost(_ context.Context, p *BlogPost) (*BlogPost, error) {
	if _, ok := r.posts[p.ID]; !ok {
		return nil, ErrBlogPostNotFound
	}
	r.posts[p.ID] = *p
	return p, nil
}

func (r *fakeRepo) CreateTestimonial(_ context.Context, tm *Testimonial) (*Testimonial, error) {
	c := *tm
	c.ID = uuid.New()
	r.testimonials[c.ID] = c
	return &c, nil
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Managing Seasonal Allergies", "managing-seasonal-allergies"},
		{"  What's New in 2024!  ", "what-s-new-in-2024"},
		{"---", ""},
		{"Flu Shots: Q&A", "flu-shots-q-a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.title), tt.title)
	}
}

func TestBlogPostLifecycle(t *testing.T) {
	svc := NewService(newFakeRepo(), zap.NewNop())
	ctx := context.Background()

	t.Run("derives slug and stamps publication time", func(t *testing.T) {
		p, err := svc.CreateBlogPost(ctx, BlogPost{Title: "Managing Seasonal Allergies", Published: true})
		require.NoError(t, err)
		assert.Equal(t, "managing-seasonal-allergies", p.Slug)
		require.NotNil(t, p.PublishedAt)
		assert.WithinDuration(t, time.Now(), *p.PublishedAt, time.Minute)
	})

	t.Run("draft has no publication time", func(t *testing.T) {
		p, err := svc.CreateBlogPost(ctx, BlogPost{Title: "Draft Post"})
		require.NoError(t, err)
		assert.Nil(t, p.PublishedAt)
	})

	t.Run("publishing a draft stamps once and keeps the stamp", func(t *testing.T) {
		p, err := svc.CreateBlogPost(ctx, BlogPost{Title: "Later Post"})
		require.NoError(t, err)

		p.Published = true
		published, err := svc.UpdateBlogPost(ctx, *p)
		require.NoError(t, err)
		require.NotNil(t, published.PublishedAt)
		stamp := *published.PublishedAt

		published.Excerpt = "edited"
		edited, err := svc.UpdateBlogPost(ctx, *published)
		require.NoError(t, err)
		require.NotNil(t, edited.PublishedAt)
		assert.Equal(t, stamp, *edited.PublishedAt)
	})

	t.Run("duplicate slug is rejected", func(t *testing.T) {
		_, err := svc.CreateBlogPost(ctx, BlogPost{Title: "Managing Seasonal Allergies"})
		assert.ErrorIs(t, err, ErrDuplicateSlug)
	})

	t.Run("title is required", func(t *testing.T) {
		_, err := svc.CreateBlogPost(ctx, BlogPost{Title: "   "})
		assert.ErrorIs(t, err, ErrMissingTitle)
	})
}

func TestTestimonialValidation(t *testing.T) {
	svc := NewService(newFakeRepo(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.CreateTestimonial(ctx, Testimonial{Author: "Pat", Quote: "Great care", Rating: 5})
	assert.NoError(t, err)

	_, err = svc.CreateTestimonial(ctx, Testimonial{Author: "Pat", Quote: "Great care", Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.CreateTestimonial(ctx, Testimonial{Author: "Pat", Quote: "", Rating: 4})
	assert.ErrorIs(t, err, ErrMissingQuote)
}
