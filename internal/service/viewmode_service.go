package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ifsc-carteirinha/carteirinha-backend/internal/model"
	"github.com/rs/zerolog"
)

// ErrAdminOnly rejects a view-mode toggle from a non-admin session.
var ErrAdminOnly = errors.New("view mode toggle is admin only")

// ViewModeService drives the admin-only viewing-as-student toggle and the
// affordance visibility derived from it.
type ViewModeService struct {
	sessions SessionStore
	ttl      time.Duration
	log      zerolog.Logger
}

// NewViewModeService creates a new ViewModeService. ttl bounds how long a
// forgotten flag can outlive its session.
func NewViewModeService(sessions SessionStore, ttl time.Duration, log zerolog.Logger) *ViewModeService {
	return &ViewModeService{
		sessions: sessions,
		ttl:      ttl,
		log:      log.With().Str("component", "viewmode_service").Logger(),
	}
}

// DeriveVisibility maps {isAdmin, viewingAsStudent} to the affordance set.
// Pure; the three cases are exhaustive.
func DeriveVisibility(isAdmin, viewingAsStudent bool) model.Visibility {
	switch {
	case !isAdmin:
		return model.Visibility{StudentPanel: true}
	case viewingAsStudent:
		return model.Visibility{
			StudentPanel:       true,
			StudentViewBanner:  true,
			CanExitStudentView: true,
		}
	default:
		return model.Visibility{
			AdminPanel:          true,
			RolesPanel:          true,
			CanEnterStudentView: true,
		}
	}
}

// EnterStudentView turns the test-mode flag on for an admin session.
func (s *ViewModeService) EnterStudentView(ctx context.Context, sess *model.Session) error {
	if sess == nil || !sess.IsAdmin {
		return ErrAdminOnly
	}
	if err := s.sessions.SetStudentView(ctx, sess.Identity, true, s.ttl); err != nil {
		return fmt.Errorf("%w: set view mode: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// ExitStudentView returns an admin session to the admin role.
func (s *ViewModeService) ExitStudentView(ctx context.Context, sess *model.Session) error {
	if sess == nil || !sess.IsAdmin {
		return ErrAdminOnly
	}
	if err := s.sessions.SetStudentView(ctx, sess.Identity, false, 0); err != nil {
		return fmt.Errorf("%w: clear view mode: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Current derives the visibility set for a session. A flag lookup failure is
// logged and treated as "not viewing as student" — the session falls back to
// its real role, never to a broader one.
func (s *ViewModeService) Current(ctx context.Context, sess *model.Session) model.Visibility {
	if sess == nil {
		return model.Visibility{}
	}

	viewing := false
	if sess.IsAdmin {
		v, err := s.sessions.StudentView(ctx, sess.Identity)
		if err != nil {
			s.log.Error().Err(err).Str("identity", sess.Identity).Msg("student view lookup failed")
		} else {
			viewing = v
		}
	}

	return DeriveVisibility(sess.IsAdmin, viewing)
}
