package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/config"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/model"
	"github.com/rs/zerolog"
)

// Domain errors.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError carries field-level detail for a rejected submission.
// Validation always happens before any store call.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field(s)", len(e.Fields))
}

// CardRepository is the card record store contract. One record per owner
// identity; Save must be a single atomic upsert keyed by that identity that
// writes status only on the initial insert, keeps the stored status on
// conflict and reflects the stored status back into card. Status moves
// through UpdateStatus alone.
type CardRepository interface {
	GetByOwner(ctx context.Context, owner string) (*model.CardRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.CardRecord, error)
	Save(ctx context.Context, card *model.CardRecord) error
	ListByStatus(ctx context.Context, status model.CardStatus) ([]model.CardRecord, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.CardStatus, updatedAt time.Time) error
}

// CardService owns the carteirinha request lifecycle: submission merge
// semantics, validation and reviewer listings.
type CardService struct {
	repo CardRepository
	cfg  *config.Config
	log  zerolog.Logger
	now  func() time.Time
}

// NewCardService creates a new CardService.
func NewCardService(repo CardRepository, cfg *config.Config, log zerolog.Logger) *CardService {
	return &CardService{
		repo: repo,
		cfg:  cfg,
		log:  log.With().Str("component", "card_service").Logger(),
		now:  time.Now,
	}
}

// Get retrieves the caller's own record. Absence is a valid (nil, nil) result.
func (s *CardService) Get(ctx context.Context, sess *model.Session) (*model.CardRecord, error) {
	if sess == nil || sess.Identity == "" {
		return nil, ErrNotAuthenticated
	}
	card, err := s.repo.GetByOwner(ctx, sess.Identity)
	if err != nil {
		return nil, fmt.Errorf("%w: get card: %v", ErrStoreUnavailable, err)
	}
	return card, nil
}

// Submit creates or re-submits the caller's carteirinha request. A first
// submission always starts pending; a re-submission merges over the
// existing record and can never move its status in either direction, nor
// drop a previously stored photo.
func (s *CardService) Submit(ctx context.Context, sess *model.Session, req *model.SubmitCardRequest) (*model.CardRecord, error) {
	if sess == nil || sess.Identity == "" {
		return nil, ErrNotAuthenticated
	}

	incoming, err := s.buildIncoming(sess, req)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByOwner(ctx, sess.Identity)
	if err != nil {
		return nil, fmt.Errorf("%w: get card: %v", ErrStoreUnavailable, err)
	}

	merged := mergeCard(existing, incoming, s.now())

	if err := s.repo.Save(ctx, merged); err != nil {
		return nil, fmt.Errorf("%w: save card: %v", ErrStoreUnavailable, err)
	}

	s.log.Info().
		Str("owner", merged.OwnerIdentity).
		Str("ra", merged.RA).
		Str("status", string(merged.Status)).
		Bool("resubmission", existing != nil).
		Msg("card request saved")

	return merged, nil
}

// ListByStatus retrieves records for the reviewer panels: the pending queue
// is first come, first served; approved and rejected lists are browsed by
// name.
func (s *CardService) ListByStatus(ctx context.Context, status model.CardStatus) ([]model.CardRecord, error) {
	if !status.Valid() {
		return nil, &ValidationError{Fields: map[string]string{
			"status": "status deve ser pending, approved ou rejected",
		}}
	}
	cards, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("%w: list cards: %v", ErrStoreUnavailable, err)
	}
	if cards == nil {
		cards = []model.CardRecord{}
	}
	orderForReview(cards, status)
	return cards, nil
}

// orderForReview sorts one panel's records in place.
func orderForReview(cards []model.CardRecord, status model.CardStatus) {
	if status == model.CardStatusPending {
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].CreatedAt.Before(cards[j].CreatedAt)
		})
		return
	}
	sort.SliceStable(cards, func(i, j int) bool {
		return strings.ToLower(cards[i].Nome) < strings.ToLower(cards[j].Nome)
	})
}

// buildIncoming validates the submission and shapes it as a record value.
// Owner identity and e-mail come from the session, never from the payload.
func (s *CardService) buildIncoming(sess *model.Session, req *model.SubmitCardRequest) (*model.CardRecord, error) {
	fields := make(map[string]string)

	if !req.ResponsavelOk {
		fields["responsavelOk"] = "confirme a entrega do formulário do responsável"
	}
	if !req.SaidaAutorizada {
		fields["saidaAutorizada"] = "confirme a solicitação de saída antecipada"
	}

	foto := req.FotoDataURL
	if foto != "" {
		if err := s.validatePhoto(foto); err != nil {
			fields["fotoDataUrl"] = err.Error()
		}
	}

	var nascimento *time.Time
	if req.DataNascimento != "" {
		t, err := time.Parse("2006-01-02", req.DataNascimento)
		if err != nil {
			fields["dataNascimento"] = "data de nascimento inválida"
		} else {
			nascimento = &t
		}
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	return &model.CardRecord{
		OwnerIdentity:       sess.Identity,
		RA:                  strings.TrimSpace(req.RA),
		Nome:                strings.TrimSpace(req.Nome),
		Curso:               strings.TrimSpace(req.Curso),
		Turma:               strings.TrimSpace(req.Turma),
		Email:               sess.Email,
		DataNascimento:      nascimento,
		ResponsavelNome:     strings.TrimSpace(req.ResponsavelNome),
		ResponsavelTelefone: strings.TrimSpace(req.ResponsavelTelefone),
		ResponsavelOk:       req.ResponsavelOk,
		SaidaAutorizada:     req.SaidaAutorizada,
		FotoDataURL:         foto,
	}, nil
}

// validatePhoto checks the 3x4 photo payload: an image data URL whose
// decoded size stays within the configured limit (300 KB by default).
func (s *CardService) validatePhoto(dataURL string) error {
	if !strings.HasPrefix(dataURL, "data:image/") {
		return errors.New("a foto deve ser uma imagem válida")
	}
	idx := strings.Index(dataURL, ";base64,")
	if idx < 0 {
		return errors.New("a foto deve ser uma imagem válida")
	}
	decoded, err := base64.StdEncoding.DecodeString(dataURL[idx+len(";base64,"):])
	if err != nil {
		return errors.New("a foto deve ser uma imagem válida")
	}
	if len(decoded) > s.cfg.MaxPhotoBytes {
		return fmt.Errorf("a foto 3x4 deve ter no máximo %d KB", s.cfg.MaxPhotoBytes/1024)
	}
	return nil
}

// mergeCard merges a submission over an existing record and returns a new
// value. Precedence: existing wins for id, owner, status, photo (when no new
// one is supplied) and creation time; incoming wins for everything else when
// present. A re-submission must never silently reset an approval to pending
// nor escalate pending to approved.
func mergeCard(existing, in *model.CardRecord, now time.Time) *model.CardRecord {
	if existing == nil {
		out := *in
		out.ID = uuid.New()
		out.Status = model.CardStatusPending // new requests always start pending
		out.CreatedAt = now
		out.UpdatedAt = now
		return &out
	}

	out := *existing
	if in.RA != "" {
		out.RA = in.RA
	}
	if in.Nome != "" {
		out.Nome = in.Nome
	}
	if in.Curso != "" {
		out.Curso = in.Curso
	}
	if in.Turma != "" {
		out.Turma = in.Turma
	}
	if in.Email != "" {
		out.Email = in.Email
	}
	if in.DataNascimento != nil {
		out.DataNascimento = in.DataNascimento
	}
	if in.ResponsavelNome != "" {
		out.ResponsavelNome = in.ResponsavelNome
	}
	if in.ResponsavelTelefone != "" {
		out.ResponsavelTelefone = in.ResponsavelTelefone
	}
	out.ResponsavelOk = in.ResponsavelOk
	out.SaidaAutorizada = in.SaidaAutorizada
	if in.FotoDataURL != "" {
		out.FotoDataURL = in.FotoDataURL
	}
	out.UpdatedAt = now
	return &out
}
