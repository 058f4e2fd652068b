package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Blog posts

const blogColumns = `
	id, slug, title, excerpt, body, cover_image_url,
	published, published_at, created_at, updated_at`

func scanBlogPost(row pgx.Row) (*BlogPost, error) {
	var p BlogPost

	err := row.Scan(
		&p.ID,
		&p.Slug,
		&p.Title,
		&p.Excerpt,
		&p.Body,
		&p.CoverImageURL,
		&p.Published,
		&p.PublishedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBlogPostNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *PgRepository) CreateBlogPost(ctx context.Context, p *BlogPost) (*BlogPost, error) {
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO blog_posts
			(id, slug, title, excerpt, body, cover_image_url,
			 published, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING `+blogColumns+`
	`, id, p.Slug, p.Title, p.Excerpt, p.Body, p.CoverImageURL, p.Published, p.PublishedAt)

	created, err := scanBlogPost(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}
	return created, nil
}

func (r *PgRepository) GetBlogPost(ctx context.Context, id uuid.UUID) (*BlogPost, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+blogColumns+` FROM blog_posts WHERE id = $1
	`, id)
	return scanBlogPost(row)
}

func (r *PgRepository) GetBlogPostBySlug(ctx context.Context, slug string) (*BlogPost, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+blogColumns+` FROM blog_posts WHERE slug = $1
	`, slug)
	return scanBlogPost(row)
}

func (r *PgRepository) ListBlogPosts(ctx context.Context, opts ListOptions) ([]BlogPost, error) {
	query := `SELECT ` + blogColumns + ` FROM blog_posts`
	if opts.PublishedOnly {
		query += ` WHERE published`
	}
	query += ` ORDER BY COALESCE(published_at, created_at) DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, opts.Limit, opts.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []BlogPost
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func (r *PgRepository) UpdateBlogPost(ctx context.Context, p *BlogPost) (*BlogPost, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE blog_posts
		SET slug = $2,
		    title = $3,
		    excerpt = $4,
		    body = $5,
		    cover_image_url = $6,
		    published = $7,
		    published_at = $8,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+blogColumns+`
	`, p.ID, p.Slug, p.Title, p.Excerpt, p.Body, p.CoverImageURL, p.Published, p.PublishedAt)

	updated, err := scanBlogPost(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}
	return updated, nil
}

func (r *PgRepository) DeleteBlogPost(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "blog_posts", id, ErrBlogPostNotFound)
}

// Team members

const teamColumns = `
	id, name, role, bio, photo_url, display_order, active, created_at, updated_at`

func scanTeamMember(row pgx.Row) (*TeamMember, error) {
	var m TeamMember

	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Role,
		&m.Bio,
		&m.PhotoURL,
		&m.DisplayOrder,
		&m.Active,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamMemberNotFound
		}
		return nil, err
	}

	return &m, nil
}

func (r *PgRepository) CreateTeamMember(ctx context.Context, m *TeamMember) (*TeamMember, error) {
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO team_members
			(id, name, role, bio, photo_url, display_order, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING `+teamColumns+`
	`, id, m.Name, m.Role, m.Bio, m.PhotoURL, m.DisplayOrder, m.Active)

	return scanTeamMember(row)
}

func (r *PgRepository) GetTeamMember(ctx context.Context, id uuid.UUID) (*TeamMember, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+teamColumns+` FROM team_members WHERE id = $1
	`, id)
	return scanTeamMember(row)
}

func (r *PgRepository) ListTeamMembers(ctx context.Context, opts ListOptions) ([]TeamMember, error) {
	query := `SELECT ` + teamColumns + ` FROM team_members`
	if opts.PublishedOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY display_order, name LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, opts.Limit, opts.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []TeamMember
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	return result, rows.Err()
}

func (r *PgRepository) UpdateTeamMember(ctx context.Context, m *TeamMember) (*TeamMember, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE team_members
		SET name = $2,
		    role = $3,
		    bio = $4,
		    photo_url = $5,
		    display_order = $6,
		    active = $7,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+teamColumns+`
	`, m.ID, m.Name, m.Role, m.Bio, m.PhotoURL, m.DisplayOrder, m.Active)

	return scanTeamMember(row)
}

func (r *PgRepository) DeleteTeamMember(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "team_members", id, ErrTeamMemberNotFound)
}

// Practice services

const serviceColumns = `
	id, name, description, icon_name, display_order, active, created_at, updated_at`

func scanPracticeService(row pgx.Row) (*PracticeService, error) {
	var s PracticeService

	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.IconName,
		&s.DisplayOrder,
		&s.Active,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPracticeServiceNotFound
		}
		return nil, err
	}

	return &s, nil
}

func (r *PgRepository) CreatePracticeService(ctx context.Context, s *PracticeService) (*PracticeService, error) {
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO practice_services
			(id, name, description, icon_name, display_order, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING `+serviceColumns+`
	`, id, s.Name, s.Description, s.IconName, s.DisplayOrder, s.Active)

	return scanPracticeService(row)
}

func (r *PgRepository) GetPracticeService(ctx context.Context, id uuid.UUID) (*PracticeService, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+serviceColumns+` FROM practice_services WHERE id = $1
	`, id)
	return scanPracticeService(row)
}

func (r *PgRepository) ListPracticeServices(ctx context.Context, opts ListOptions) ([]PracticeService, error) {
	query := `SELECT ` + serviceColumns + ` FROM practice_services`
	if opts.PublishedOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY display_order, name LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, opts.Limit, opts.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PracticeService
	for rows.Next() {
		s, err := scanPracticeService(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

func (r *PgRepository) UpdatePracticeService(ctx context.Context, s *PracticeService) (*PracticeService, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE practice_services
		SET name = $2,
		    description = $3,
		    icon_name = $4,
		    display_order = $5,
		    active = $6,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+serviceColumns+`
	`, s.ID, s.Name, s.Description, s.IconName, s.DisplayOrder, s.Active)

	return scanPracticeService(row)
}

func (r *PgRepository) DeletePracticeService(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "practice_services", id, ErrPracticeServiceNotFound)
}

// Insurance providers

const insuranceColumns = `
	id, name, logo_url, display_order, active, created_at, updated_at`

func scanInsuranceProvider(row pgx.Row) (*InsuranceProvider, error) {
	var p InsuranceProvider

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.LogoURL,
		&p.DisplayOrder,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInsuranceProviderNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *PgRepository) CreateInsuranceProvider(ctx context.Context, p *InsuranceProvider) (*InsuranceProvider, error) {
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO insurance_providers
			(id, name, logo_url, display_order, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING `+insuranceColumns+`
	`, id, p.Name, p.LogoURL, p.DisplayOrder, p.Active)

	return scanInsuranceProvider(row)
}

func (r *PgRepository) GetInsuranceProvider(ctx context.Context, id uuid.UUID) (*InsuranceProvider, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+insuranceColumns+` FROM insurance_providers WHERE id = $1
	`, id)
	return scanInsuranceProvider(row)
}

func (r *PgRepository) ListInsuranceProviders(ctx context.Context, opts ListOptions) ([]InsuranceProvider, error) {
	query := `SELECT ` + insuranceColumns + ` FROM insurance_providers`
	if opts.PublishedOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY display_order, name LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, opts.Limit, opts.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []InsuranceProvider
	for rows.Next() {
		p, err := scanInsuranceProvider(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func (r *PgRepository) UpdateInsuranceProvider(ctx context.Context, p *InsuranceProvider) (*InsuranceProvider, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE insurance_providers
		SET name = $2,
		    logo_url = $3,
		    display_order = $4,
		    active = $5,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+insuranceColumns+`
	`, p.ID, p.Name, p.LogoURL, p.DisplayOrder, p.Active)

	return scanInsuranceProvider(row)
}

func (r *PgRepository) DeleteInsuranceProvider(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "insurance_providers", id, ErrInsuranceProviderNotFound)
}

// Testimonials

const testimonialColumns = `
	id, author, quote, rating, approved, created_at, updated_at`

func scanTestimonial(row pgx.Row) (*Testimonial, error) {
	var tm Testimonial

	err := row.Scan(
		&tm.ID,
		&tm.Author,
		&tm.Quote,
		&tm.Rating,
		&tm.Approved,
		&tm.CreatedAt,
		&tm.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTestimonialNotFound
		}
		return nil, err
	}

	return &tm, nil
}

func (r *PgRepository) CreateTestimonial(ctx context.Context, tm *Testimonial) (*Testimonial, error) {
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO testimonials
			(id, author, quote, rating, approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING `+testimonialColumns+`
	`, id, tm.Author, tm.Quote, tm.Rating, tm.Approved)

	return scanTestimonial(row)
}

func (r *PgRepository) GetTestimonial(ctx context.Context, id uuid.UUID) (*Testimonial, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+testimonialColumns+` FROM testimonials WHERE id = $1
	`, id)
	return scanTestimonial(row)
}

func (r *PgRepository) ListTestimonials(ctx context.Context, opts ListOptions) ([]Testimonial, error) {
	query := `SELECT ` + testimonialColumns + ` FROM testimonials`
	if opts.PublishedOnly {
		query += ` WHERE approved`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, opts.Limit, opts.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Testimonial
	for rows.Next() {
		tm, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *tm)
	}
	return result, rows.Err()
}

func (r *PgRepository) UpdateTestimonial(ctx context.Context, tm *Testimonial) (*Testimonial, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE testimonials
		SET author = $2,
		    quote = $3,
		    rating = $4,
		    approved = $5,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+testimonialColumns+`
	`, tm.ID, tm.Author, tm.Quote, tm.Rating, tm.Approved)

	return scanTestimonial(row)
}

func (r *PgRepository) DeleteTestimonial(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, "testimonials", id, ErrTestimonialNotFound)
}

func (r *PgRepository) deleteByID(ctx context.Context, table string, id uuid.UUID, notFound error) error {
	tag, err := r.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound
	}
	return nil
}
