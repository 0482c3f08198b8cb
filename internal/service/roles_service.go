package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ifsc-carteirinha/carteirinha-backend/internal/config"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/model"
	"github.com/rs/zerolog"
)

var (
	// ErrInvalidLogin rejects empty or malformed logins.
	ErrInvalidLogin = errors.New("invalid login")
	// ErrBootstrapAdmin rejects revocation of a configuration-defined admin.
	ErrBootstrapAdmin = errors.New("bootstrap admin cannot be removed")
)

// RolesService manages the admin-grants registry layered over the fixed
// bootstrap set. Bootstrap entries appear in every listing and survive any
// registry state.
type RolesService struct {
	cfg    *config.Config
	grants GrantRepository
	log    zerolog.Logger
}

// NewRolesService creates a new RolesService.
func NewRolesService(cfg *config.Config, grants GrantRepository, log zerolog.Logger) *RolesService {
	return &RolesService{
		cfg:    cfg,
		grants: grants,
		log:    log.With().Str("component", "roles_service").Logger(),
	}
}

// List returns the merged bootstrap ∪ registry grant set, sorted by login,
// with bootstrap entries flagged non-removable.
func (s *RolesService) List(ctx context.Context) ([]model.AdminGrant, error) {
	stored, err := s.grants.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list grants: %v", ErrStoreUnavailable, err)
	}

	merged := make(map[string]model.AdminGrant, len(stored)+len(s.cfg.BootstrapAdmins))
	for _, g := range stored {
		merged[g.Login] = g
	}
	for login := range s.cfg.BootstrapAdmins {
		g := merged[login]
		g.Login = login
		g.Role = model.RoleAdmin
		g.Bootstrap = true
		merged[login] = g
	}

	grants := make([]model.AdminGrant, 0, len(merged))
	for _, g := range merged {
		grants = append(grants, g)
	}
	sort.Slice(grants, func(i, j int) bool { return grants[i].Login < grants[j].Login })
	return grants, nil
}

// Add grants admin to a login. Input is normalized to lower case; empty or
// malformed logins are rejected before any write.
func (s *RolesService) Add(ctx context.Context, login string) (string, error) {
	normalized, err := normalizeLogin(login)
	if err != nil {
		return "", err
	}
	if err := s.grants.Add(ctx, normalized); err != nil {
		return "", fmt.Errorf("%w: add grant: %v", ErrStoreUnavailable, err)
	}
	s.log.Info().Str("login", normalized).Msg("admin grant added")
	return normalized, nil
}

// Remove revokes a registry grant. Bootstrap logins cannot be revoked
// through this interface, so they never disappear from List.
func (s *RolesService) Remove(ctx context.Context, login string) error {
	normalized, err := normalizeLogin(login)
	if err != nil {
		return err
	}
	if s.cfg.BootstrapAdmins[normalized] {
		return ErrBootstrapAdmin
	}
	if err := s.grants.Remove(ctx, normalized); err != nil {
		return fmt.Errorf("%w: remove grant: %v", ErrStoreUnavailable, err)
	}
	s.log.Info().Str("login", normalized).Msg("admin grant removed")
	return nil
}

func normalizeLogin(login string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(login))
	if normalized == "" || !strings.Contains(normalized, "@") {
		return "", ErrInvalidLogin
	}
	return normalized, nil
}
