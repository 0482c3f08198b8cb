package repository

import (
	"context"
	"errors"

	"github.com/ifsc-carteirinha/carteirinha-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GrantRepository handles the mutable admin-grants registry. Bootstrap
// grants live in configuration, not here.
type GrantRepository struct {
	pool *pgxpool.Pool
}

// NewGrantRepository creates a new GrantRepository.
func NewGrantRepository(pool *pgxpool.Pool) *GrantRepository {
	return &GrantRepository{pool: pool}
}

// List retrieves every registry grant ordered by login.
func (r *GrantRepository) List(ctx context.Context) ([]model.AdminGrant, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT login, role, created_at FROM admin_grants ORDER BY login`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []model.AdminGrant
	for rows.Next() {
		var g model.AdminGrant
		if err := rows.Scan(&g.Login, &g.Role, &g.CreatedAt); err != nil {
			return nil, err
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

// Get retrieves a grant by lower-cased login. Absence returns (nil, nil).
func (r *GrantRepository) Get(ctx context.Context, login string) (*model.AdminGrant, error) {
	g := &model.AdminGrant{}
	err := r.pool.QueryRow(ctx,
		`SELECT login, role, created_at FROM admin_grants WHERE login = $1`, login,
	).Scan(&g.Login, &g.Role, &g.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Add upserts an admin grant for a login. Idempotent.
func (r *GrantRepository) Add(ctx context.Context, login string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO admin_grants (login, role) VALUES ($1, $2)
		 ON CONFLICT (login) DO NOTHING`,
		login, model.RoleAdmin,
	)
	return err
}

// Remove deletes a registry grant. Removing an absent login is a no-op.
func (r *GrantRepository) Remove(ctx context.Context, login string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM admin_grants WHERE login = $1`, login)
	return err
}
