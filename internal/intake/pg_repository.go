package intake

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const visitColumns = `
	id, patient_name, email, phone, preferred_clinician,
	to_char(preferred_date, 'YYYY-MM-DD'), reason, status, created_at, updated_at`

const referralColumns = `
	id, referring_provider, practice, phone, fax, patient_name,
	to_char(patient_dob, 'YYYY-MM-DD'), urgency, reason, status, created_at, updated_at`

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanVisitRequest(row pgx.Row) (*VisitRequest, error) {
	var v VisitRequest
	var preferredDate *string

	err := row.Scan(
		&v.ID,
		&v.PatientName,
		&v.Email,
		&v.Phone,
		&v.PreferredClinician,
		&preferredDate,
		&v.Reason,
		&v.Status,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVisitRequestNotFound
		}
		return nil, err
	}

	if preferredDate != nil {
		v.PreferredDate = *preferredDate
	}
	return &v, nil
}

func scanReferral(row pgx.Row) (*Referral, error) {
	var r Referral
	var dob *string

	err := row.Scan(
		&r.ID,
		&r.ReferringProvider,
		&r.Practice,
		&r.Phone,
		&r.Fax,
		&r.PatientName,
		&dob,
		&r.Urgency,
		&r.Reason,
		&r.Status,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReferralNotFound
		}
		return nil, err
	}

	if dob != nil {
		r.PatientDOB = *dob
	}
	return &r, nil
}

func nullableDate(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *PgRepository) CreateVisitRequest(ctx context.Context, v *VisitRequest) (*VisitRequest, error) {
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO visit_requests
			(id, patient_name, email, phone, preferred_clinician, preferred_date,
			 reason, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8, now(), now())
		RETURNING `+visitColumns+`
	`, id, v.PatientName, v.Email, v.Phone, v.PreferredClinician,
		nullableDate(v.PreferredDate), v.Reason, v.Status)

	return scanVisitRequest(row)
}

func (r *PgRepository) GetVisitRequest(ctx context.Context, id uuid.UUID) (*VisitRequest, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+visitColumns+`
		FROM visit_requests
		WHERE id = $1
	`, id)
	return scanVisitRequest(row)
}

func (r *PgRepository) ListVisitRequests(ctx context.Context, status VisitRequestStatus, limit, offset int) ([]VisitRequest, error) {
	query := `SELECT ` + visitColumns + ` FROM visit_requests`
	var args []any

	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" WHERE status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []VisitRequest
	for rows.Next() {
		v, err := scanVisitRequest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *v)
	}
	return result, rows.Err()
}

func (r *PgRepository) UpdateVisitRequestStatus(ctx context.Context, id uuid.UUID, to VisitRequestStatus) (*VisitRequest, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE visit_requests
		SET status = $2,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+visitColumns+`
	`, id, to)
	return scanVisitRequest(row)
}

func (r *PgRepository) DeleteVisitRequest(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM visit_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete visit request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVisitRequestNotFound
	}
	return nil
}

func (r *PgRepository) CreateReferral(ctx context.Context, ref *Referral) (*Referral, error) {
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO referrals
			(id, referring_provider, practice, phone, fax, patient_name, patient_dob,
			 urgency, reason, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8, $9, $10, now(), now())
		RETURNING `+referralColumns+`
	`, id, ref.ReferringProvider, ref.Practice, ref.Phone, ref.Fax, ref.PatientName,
		nullableDate(ref.PatientDOB), ref.Urgency, ref.Reason, ref.Status)

	return scanReferral(row)
}

func (r *PgRepository) GetReferral(ctx context.Context, id uuid.UUID) (*Referral, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+referralColumns+`
		FROM referrals
		WHERE id = $1
	`, id)
	return scanReferral(row)
}

func (r *PgRepository) ListReferrals(ctx context.Context, status ReferralStatus, limit, offset int) ([]Referral, error) {
	query := `SELECT ` + referralColumns + ` FROM referrals`
	var args []any

	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" WHERE status = $%d", len(args))
	}
	query += `
		ORDER BY CASE urgency
			WHEN 'emergency' THEN 0
			WHEN 'urgent' THEN 1
			ELSE 2
		END, created_at DESC`
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Referral
	for rows.Next() {
		ref, err := scanReferral(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ref)
	}
	return result, rows.Err()
}

func (r *PgRepository) UpdateReferralStatus(ctx context.Context, id uuid.UUID, to ReferralStatus) (*Referral, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE referrals
		SET status = $2,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+referralColumns+`
	`, id, to)
	return scanReferral(row)
}

func (r *PgRepository) DeleteReferral(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM referrals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete referral: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrReferralNotFound
	}
	return nil
}
