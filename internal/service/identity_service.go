package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ifsc-carteirinha/carteirinha-backend/internal/config"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/model"
	"github.com/rs/zerolog"
)

// ErrDomainNotAllowed marks a principal whose e-mail matches neither
// institutional domain. Callers must sign the principal out.
var ErrDomainNotAllowed = errors.New("e-mail domain not allowed")

// GrantRepository is the mutable admin-grants registry the identity resolver
// and the roles service read and write.
type GrantRepository interface {
	List(ctx context.Context) ([]model.AdminGrant, error)
	Get(ctx context.Context, login string) (*model.AdminGrant, error)
	Add(ctx context.Context, login string) error
	Remove(ctx context.Context, login string) error
}

// IdentityService classifies authenticated principals and derives admin
// membership from the bootstrap allow-list plus the grants registry.
type IdentityService struct {
	cfg    *config.Config
	grants GrantRepository
	log    zerolog.Logger
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(cfg *config.Config, grants GrantRepository, log zerolog.Logger) *IdentityService {
	return &IdentityService{
		cfg:    cfg,
		grants: grants,
		log:    log.With().Str("component", "identity_service").Logger(),
	}
}

// Classify maps an e-mail to an affiliation. The student suffix is checked
// first: "@aluno.ifsc.edu.br" also ends with the employee suffix.
func (s *IdentityService) Classify(email string) model.Affiliation {
	lower := strings.ToLower(strings.TrimSpace(email))
	switch {
	case strings.HasSuffix(lower, s.cfg.StudentDomain):
		return model.AffiliationStudent
	case strings.HasSuffix(lower, s.cfg.EmployeeDomain):
		return model.AffiliationEmployee
	default:
		return model.AffiliationUnaffiliated
	}
}

// Resolve classifies an e-mail and computes admin membership. Unaffiliated
// principals are rejected outright. Admin status is computed only for
// employees: bootstrap membership or an admin grant in the registry. A
// registry lookup failure is logged and treated as "not found" — the
// resolver may fail open to non-admin, never to admin.
func (s *IdentityService) Resolve(ctx context.Context, email string) (model.Affiliation, bool, error) {
	affiliation := s.Classify(email)
	if affiliation == model.AffiliationUnaffiliated {
		return affiliation, false, ErrDomainNotAllowed
	}
	if affiliation != model.AffiliationEmployee {
		return affiliation, false, nil
	}

	login := strings.ToLower(strings.TrimSpace(email))
	if s.cfg.BootstrapAdmins[login] {
		return affiliation, true, nil
	}

	grant, err := s.grants.Get(ctx, login)
	if err != nil {
		s.log.Error().Err(err).Str("login", login).Msg("grant lookup failed, treating as non-admin")
		return affiliation, false, nil
	}

	return affiliation, grant != nil && grant.Role == model.RoleAdmin, nil
}
