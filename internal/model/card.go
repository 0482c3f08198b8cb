package model

import (
	"time"

	"github.com/google/uuid"
)

// CardStatus enumerates the review states of a carteirinha request.
type CardStatus string

const (
	CardStatusPending  CardStatus = "pending"
	CardStatusApproved CardStatus = "approved"
	CardStatusRejected CardStatus = "rejected"
)

// Valid reports whether s is one of the three known statuses.
func (s CardStatus) Valid() bool {
	switch s {
	case CardStatusPending, CardStatusApproved, CardStatusRejected:
		return true
	}
	return false
}

// CardRecord is one carteirinha request, at most one per owner identity.
// JSON tags follow the persisted record shape the PWA consumes.
type CardRecord struct {
	ID                  uuid.UUID  `json:"id"`
	OwnerIdentity       string     `json:"ownerIdentity"`
	RA                  string     `json:"ra"`
	Nome                string     `json:"nome"`
	Curso               string     `json:"curso"`
	Turma               string     `json:"turma"`
	Email               string     `json:"email,omitempty"`
	DataNascimento      *time.Time `json:"dataNascimento,omitempty"`
	ResponsavelNome     string     `json:"responsavelNome"`
	ResponsavelTelefone string     `json:"responsavelTelefone"`
	ResponsavelOk       bool       `json:"responsavelOk"`
	SaidaAutorizada     bool       `json:"saidaAutorizada"`
	FotoDataURL         string     `json:"fotoDataUrl,omitempty"`
	Status              CardStatus `json:"status"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// Student-facing stamps. A rejected request deliberately renders the pending
// stamp on the card; only the situacao text tells the states apart.
const (
	StampAuthorized = "SAÍDA AUTORIZADA"
	StampPending    = "PENDENTE"
)

// Carimbo returns the visual stamp printed over the student-facing card.
func (r *CardRecord) Carimbo() string {
	if r.Status == CardStatusApproved {
		return StampAuthorized
	}
	return StampPending
}

// Situacao returns the status line shown under the card.
func (r *CardRecord) Situacao() string {
	switch r.Status {
	case CardStatusApproved:
		return "Carteirinha ativa. Saída antecipada autorizada."
	case CardStatusPending:
		return "Pedido em análise. Saída antecipada ainda pendente de autorização."
	case CardStatusRejected:
		return "Pedido indeferido. Saída antecipada não autorizada. Procure a coordenação."
	default:
		return "Status da carteirinha não definido."
	}
}

// SubmitCardRequest is the payload for creating or re-submitting a
// carteirinha request. The owner identity and e-mail come from the session,
// never from the payload.
type SubmitCardRequest struct {
	RA                  string `json:"ra" binding:"required,min=4,max=20"`
	Nome                string `json:"nome" binding:"required,min=2,max=100"`
	Curso               string `json:"curso" binding:"required,min=2,max=100"`
	Turma               string `json:"turma" binding:"required,min=1,max=30"`
	DataNascimento      string `json:"dataNascimento" binding:"omitempty,datetime=2006-01-02"`
	ResponsavelNome     string `json:"responsavelNome" binding:"required,min=2,max=100"`
	ResponsavelTelefone string `json:"responsavelTelefone" binding:"required,min=8,max=20"`
	ResponsavelOk       bool   `json:"responsavelOk"`
	SaidaAutorizada     bool   `json:"saidaAutorizada"`
	FotoDataURL         string `json:"fotoDataUrl" binding:"omitempty"`
}

// ReviewActionRequest carries the optional pre-confirmed intent for
// transitions that require an extra confirmation (deactivate, re-approve).
type ReviewActionRequest struct {
	Confirmed bool `json:"confirmed"`
}

// StudentCardView is the card record plus the derived presentation fields
// the carteirinha screen renders.
type StudentCardView struct {
	*CardRecord
	Carimbo  string `json:"carimbo"`
	Situacao string `json:"situacao"`
}

// NewStudentCardView derives the student-facing view of a record.
func NewStudentCardView(r *CardRecord) *StudentCardView {
	return &StudentCardView{
		CardRecord: r,
		Carimbo:    r.Carimbo(),
		Situacao:   r.Situacao(),
	}
}
