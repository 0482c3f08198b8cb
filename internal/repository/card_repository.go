package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a keyed lookup matches no row.
var ErrNotFound = errors.New("record not found")

const cardColumns = `id, owner_identity, ra, nome, curso, turma, email,
	data_nascimento, responsavel_nome, responsavel_telefone, responsavel_ok,
	saida_autorizada, foto_data_url, status, created_at, updated_at`

// CardRepository handles carteirinha record data access.
type CardRepository struct {
	pool *pgxpool.Pool
}

// NewCardRepository creates a new CardRepository.
func NewCardRepository(pool *pgxpool.Pool) *CardRepository {
	return &CardRepository{pool: pool}
}

func scanCard(row pgx.Row) (*model.CardRecord, error) {
	r := &model.CardRecord{}
	err := row.Scan(
		&r.ID, &r.OwnerIdentity, &r.RA, &r.Nome, &r.Curso, &r.Turma, &r.Email,
		&r.DataNascimento, &r.ResponsavelNome, &r.ResponsavelTelefone,
		&r.ResponsavelOk, &r.SaidaAutorizada, &r.FotoDataURL, &r.Status,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// GetByOwner retrieves the record owned by an identity. Absence is a valid
// result and returns (nil, nil).
func (r *CardRepository) GetByOwner(ctx context.Context, owner string) (*model.CardRecord, error) {
	card, err := scanCard(r.pool.QueryRow(ctx,
		`SELECT `+cardColumns+` FROM card_records WHERE owner_identity = $1`, owner,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

// GetByID retrieves a record by its opaque id.
func (r *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CardRecord, error) {
	card, err := scanCard(r.pool.QueryRow(ctx,
		`SELECT `+cardColumns+` FROM card_records WHERE id = $1`, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

// Save writes a full merged record in one atomic upsert keyed by the owner
// identity, never by submission. Insert and update are a single statement so
// a failure can never leave a partially written row. On conflict the stored
// status is kept: a submission can only set status on the initial insert, so
// a review decision landing between the caller's read and this write can
// never be reverted. The status actually stored is scanned back into card.
func (r *CardRepository) Save(ctx context.Context, card *model.CardRecord) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO card_records (id, owner_identity, ra, nome, curso, turma, email,
			data_nascimento, responsavel_nome, responsavel_telefone, responsavel_ok,
			saida_autorizada, foto_data_url, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 ON CONFLICT (owner_identity) DO UPDATE SET
			ra = EXCLUDED.ra,
			nome = EXCLUDED.nome,
			curso = EXCLUDED.curso,
			turma = EXCLUDED.turma,
			email = EXCLUDED.email,
			data_nascimento = EXCLUDED.data_nascimento,
			responsavel_nome = EXCLUDED.responsavel_nome,
			responsavel_telefone = EXCLUDED.responsavel_telefone,
			responsavel_ok = EXCLUDED.responsavel_ok,
			saida_autorizada = EXCLUDED.saida_autorizada,
			foto_data_url = EXCLUDED.foto_data_url,
			status = card_records.status,
			updated_at = EXCLUDED.updated_at
		 RETURNING status`,
		card.ID, card.OwnerIdentity, card.RA, card.Nome, card.Curso, card.Turma,
		card.Email, card.DataNascimento, card.ResponsavelNome,
		card.ResponsavelTelefone, card.ResponsavelOk, card.SaidaAutorizada,
		card.FotoDataURL, card.Status, card.CreatedAt, card.UpdatedAt,
	).Scan(&card.Status)
}

// ListByStatus retrieves every record in one review state. Reviewer ordering
// is applied by the service layer.
func (r *CardRepository) ListByStatus(ctx context.Context, status model.CardStatus) ([]model.CardRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+cardColumns+` FROM card_records WHERE status = $1`, status,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []model.CardRecord
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	return cards, rows.Err()
}

// UpdateStatus applies a review transition and stamps updated_at with the
// caller's clock, the same source Save uses. A missing id is an error, never
// a silent success.
func (r *CardRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.CardStatus, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE card_records SET status = $1, updated_at = $2 WHERE id = $3`,
		status, updatedAt, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
