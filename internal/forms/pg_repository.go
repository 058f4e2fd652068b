package forms

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanFormConfig(row pgx.Row) (*FormConfig, error) {
	var cfg FormConfig
	var fields []byte

	err := row.Scan(&cfg.FormName, &fields, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(fields, &cfg.Fields); err != nil {
		return nil, fmt.Errorf("decode form fields: %w", err)
	}
	return &cfg, nil
}

func (r *PgRepository) Get(ctx context.Context, formName string) (*FormConfig, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT form_name, fields, updated_at
		FROM form_configs
		WHERE form_name = $1
	`, formName)
	return scanFormConfig(row)
}

func (r *PgRepository) List(ctx context.Context) ([]FormConfig, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT form_name, fields, updated_at
		FROM form_configs
		ORDER BY form_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []FormConfig
	for rows.Next() {
		cfg, err := scanFormConfig(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *cfg)
	}
	return result, rows.Err()
}

func (r *PgRepository) Upsert(ctx context.Context, cfg *FormConfig) (*FormConfig, error) {
	fields, err := json.Marshal(cfg.Fields)
	if err != nil {
		return nil, fmt.Errorf("encode form fields: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO form_configs (form_name, fields, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (form_name)
		DO UPDATE SET fields = EXCLUDED.fields, updated_at = now()
		RETURNING form_name, fields, updated_at
	`, cfg.FormName, fields)

	return scanFormConfig(row)
}

func (r *PgRepository) Delete(ctx context.Context, formName string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM form_configs WHERE form_name = $1`, formName)
	if err != nil {
		return fmt.Errorf("delete form config: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrFormNotFound
	}
	return nil
}
