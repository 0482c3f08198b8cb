package repository

import (
	"context"
	"errors"

	"github.com/ifsc-carteirinha/carteirinha-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateAccount is returned when an account already exists for an email.
var ErrDuplicateAccount = errors.New("account with this email already exists")

// AccountRepository handles local-credential accounts.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// GetByEmail retrieves an account by lower-cased email. Absence returns (nil, nil).
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	a := &model.Account{}
	err := r.pool.QueryRow(ctx,
		`SELECT email, nome, password_hash, created_at FROM accounts WHERE email = $1`, email,
	).Scan(&a.Email, &a.Nome, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts a new account.
func (r *AccountRepository) Create(ctx context.Context, a *model.Account) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO accounts (email, nome, password_hash) VALUES ($1, $2, $3)
		 RETURNING created_at`,
		a.Email, a.Nome, a.PasswordHash,
	).Scan(&a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateAccount
		}
		return err
	}
	return nil
}
