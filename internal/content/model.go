package content

import (
	"time"

	"github.com/google/uuid"
)

// BlogPost bodies arrive from the dashboard's rich-text editor as HTML and
// are stored opaque.
type BlogPost struct {
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

type TeamMember struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	DisplayOrder int       `json:"display_order"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PracticeService is a service the practice offers (physio, counselling...),
// shown as cards on the public site.
type PracticeService struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	IconName     string    `json:"icon_name,omitempty"`
	DisplayOrder int       `json:"display_order"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type InsuranceProvider struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	LogoURL      string    `json:"logo_url,omitempty"`
	DisplayOrder int       `json:"display_order"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Testimonial struct {
	ID        uuid.UUID `json:"id"`
	Author    string    `json:"author"`
	Quote     string    `json:"quote"`
	Rating    int       `json:"rating"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListOptions pages list endpoints. PublishedOnly narrows blog posts to
// published ones and the other collections to active/approved ones.
type ListOptions struct {
	PublishedOnly bool
	Limit         int
	Offset        int
}
