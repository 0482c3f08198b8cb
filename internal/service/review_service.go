package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/model"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ErrRecordNotFound marks a review action against an unknown record id.
var ErrRecordNotFound = errors.New("card record not found")

// ErrConfirmationRequired marks a reversal transition issued without the
// pre-confirmed intent.
var ErrConfirmationRequired = errors.New("confirmation required for this transition")

// ReviewService is the status workflow engine. Only admins reach it; the
// router enforces that. It never renders the confirmation dialog itself —
// callers send a pre-confirmed intent where the policy demands one.
type ReviewService struct {
	repo CardRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewReviewService creates a new ReviewService.
func NewReviewService(repo CardRepository, log zerolog.Logger) *ReviewService {
	return &ReviewService{
		repo: repo,
		log:  log.With().Str("component", "review_service").Logger(),
		now:  time.Now,
	}
}

// Approve moves a record to approved. Approving a rejected record is a
// re-approval and requires explicit confirmation.
func (s *ReviewService) Approve(ctx context.Context, id uuid.UUID, confirmed bool) (*model.CardRecord, error) {
	return s.transition(ctx, id, model.CardStatusApproved, confirmed)
}

// Reject moves a record to rejected. Rejecting an approved record is a
// deactivation and requires explicit confirmation.
func (s *ReviewService) Reject(ctx context.Context, id uuid.UUID, confirmed bool) (*model.CardRecord, error) {
	return s.transition(ctx, id, model.CardStatusRejected, confirmed)
}

func (s *ReviewService) transition(ctx context.Context, id uuid.UUID, to model.CardStatus, confirmed bool) (*model.CardRecord, error) {
	card, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("%w: get card: %v", ErrStoreUnavailable, err)
	}

	if card.Status == to {
		// Re-issuing the current status changes nothing. Concurrent
		// reviewers land here instead of erroring; last write wins.
		return card, nil
	}

	if requiresConfirmation(card.Status, to) && !confirmed {
		return nil, ErrConfirmationRequired
	}

	now := s.now()
	if err := s.repo.UpdateStatus(ctx, id, to, now); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("%w: update status: %v", ErrStoreUnavailable, err)
	}

	s.log.Info().
		Str("id", id.String()).
		Str("from", string(card.Status)).
		Str("to", string(to)).
		Msg("card status transition")

	card.Status = to
	card.UpdatedAt = now
	return card, nil
}

// requiresConfirmation encodes the transition policy: reversals out of a
// terminal state need an extra confirmation, first decisions do not.
//
//	pending  → approved   no
//	pending  → rejected   no
//	approved → rejected   yes (deactivate)
//	rejected → approved   yes (re-approve despite prior rejection)
func requiresConfirmation(from, to model.CardStatus) bool {
	return (from == model.CardStatusApproved && to == model.CardStatusRejected) ||
		(from == model.CardStatusRejected && to == model.CardStatusApproved)
}
