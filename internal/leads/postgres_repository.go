package leads

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores leads in the relational database, keyed on phone.
// It ignores the positional row index; phone is unique here by schema.
type PostgresRepository struct {
	pool querier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

func newPostgresRepositoryWithQuerier(q querier) *PostgresRepository {
	if q == nil {
		panic("leads: querier required")
	}
	return &PostgresRepository{pool: q}
}

// FindByPhone fetches the lead for phone. The returned row index is always 0.
func (r *PostgresRepository) FindByPhone(ctx context.Context, phone string) (*Lead, int, error) {
	query := `
		SELECT phone, name, status, created_at, updated_at, last_message
		FROM leads
		WHERE phone = $1
	`
	var lead Lead
	if err := r.pool.QueryRow(ctx, query, phone).Scan(
		&lead.Phone,
		&lead.Name,
		&lead.Status,
		&lead.CreatedAt,
		&lead.UpdatedAt,
		&lead.LastMessage,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, ErrLeadNotFound
		}
		return nil, 0, fmt.Errorf("leads: select failed: %w", err)
	}
	return &lead, 0, nil
}

// Append inserts a new lead row.
func (r *PostgresRepository) Append(ctx context.Context, lead *Lead) error {
	query := `
		INSERT INTO leads (phone, name, status, created_at, updated_at, last_message)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.pool.Exec(ctx, query,
		lead.Phone,
		lead.Name,
		lead.Status,
		lead.CreatedAt,
		lead.UpdatedAt,
		lead.LastMessage,
	); err != nil {
		return fmt.Errorf("leads: insert failed: %w", err)
	}
	return nil
}

// Update rewrites only updated_at and last_message, keyed on phone.
func (r *PostgresRepository) Update(ctx context.Context, _ int, lead *Lead) error {
	query := `
		UPDATE leads
		SET updated_at = $2, last_message = $3
		WHERE phone = $1
	`
	ct, err := r.pool.Exec(ctx, query, lead.Phone, lead.UpdatedAt, lead.LastMessage)
	if err != nil {
		return fmt.Errorf("leads: update failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}
