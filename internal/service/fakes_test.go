package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/config"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/model"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/repository"
)

// errStore is the injectable backend failure used across the fakes.
var errStore = errors.New("backend down")

// fakeCardRepo is an in-memory CardRepository keyed by owner identity.
type fakeCardRepo struct {
	mu    sync.Mutex
	cards map[string]*model.CardRecord
	fail  bool
}

func newFakeCardRepo() *fakeCardRepo {
	return &fakeCardRepo{cards: make(map[string]*model.CardRecord)}
}

func (r *fakeCardRepo) GetByOwner(_ context.Context, owner string) (*model.CardRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errStore
	}
	card, ok := r.cards[owner]
	if !ok {
		return nil, nil
	}
	cp := *card
	return &cp, nil
}

func (r *fakeCardRepo) GetByID(_ context.Context, id uuid.UUID) (*model.CardRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errStore
	}
	for _, card := range r.cards {
		if card.ID == id {
			cp := *card
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCardRepo) Save(_ context.Context, card *model.CardRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errStore
	}
	// Same contract as the SQL upsert: the stored status wins on conflict
	// and flows back into the caller's record.
	if existing, ok := r.cards[card.OwnerIdentity]; ok {
		card.Status = existing.Status
	}
	cp := *card
	r.cards[card.OwnerIdentity] = &cp
	return nil
}

func (r *fakeCardRepo) ListByStatus(_ context.Context, status model.CardStatus) ([]model.CardRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errStore
	}
	var out []model.CardRecord
	for _, card := range r.cards {
		if card.Status == status {
			out = append(out, *card)
		}
	}
	return out, nil
}

func (r *fakeCardRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.CardStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errStore
	}
	for _, card := range r.cards {
		if card.ID == id {
			card.Status = status
			card.UpdatedAt = updatedAt
			return nil
		}
	}
	return repository.ErrNotFound
}

// fakeGrantRepo is an in-memory GrantRepository.
type fakeGrantRepo struct {
	mu     sync.Mutex
	grants map[string]model.AdminGrant
	fail   bool
}

func newFakeGrantRepo() *fakeGrantRepo {
	return &fakeGrantRepo{grants: make(map[string]model.AdminGrant)}
}

func (r *fakeGrantRepo) List(_ context.Context) ([]model.AdminGrant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errStore
	}
	var out []model.AdminGrant
	for _, g := range r.grants {
		out = append(out, g)
	}
	return out, nil
}

func (r *fakeGrantRepo) Get(_ context.Context, login string) (*model.AdminGrant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errStore
	}
	g, ok := r.grants[login]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (r *fakeGrantRepo) Add(_ context.Context, login string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errStore
	}
	if _, ok := r.grants[login]; !ok {
		r.grants[login] = model.AdminGrant{Login: login, Role: model.RoleAdmin, CreatedAt: time.Now()}
	}
	return nil
}

func (r *fakeGrantRepo) Remove(_ context.Context, login string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errStore
	}
	delete(r.grants, login)
	return nil
}

// fakeAccountRepo is an in-memory AccountRepository.
type fakeAccountRepo struct {
	accounts map[string]*model.Account
	fail     bool
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*model.Account)}
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	if r.fail {
		return nil, errStore
	}
	a, ok := r.accounts[email]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

// fakeSessionStore is an in-memory SessionStore.
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]string
	viewing  map[string]bool
	fail     bool
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		sessions: make(map[string]string),
		viewing:  make(map[string]bool),
	}
}

func (s *fakeSessionStore) SetSession(_ context.Context, identity, jti string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errStore
	}
	s.sessions[identity] = jti
	return nil
}

func (s *fakeSessionStore) GetSession(_ context.Context, identity string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return "", errStore
	}
	return s.sessions[identity], nil
}

func (s *fakeSessionStore) ClearSession(_ context.Context, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errStore
	}
	delete(s.sessions, identity)
	delete(s.viewing, identity)
	return nil
}

func (s *fakeSessionStore) SetStudentView(_ context.Context, identity string, on bool, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errStore
	}
	if !on {
		delete(s.viewing, identity)
		return nil
	}
	s.viewing[identity] = true
	return nil
}

func (s *fakeSessionStore) StudentView(_ context.Context, identity string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return false, errStore
	}
	return s.viewing[identity], nil
}

// testConfig returns a config with the institutional defaults the services
// expect, without reading the environment.
func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret",
		JWTExpiry:      time.Hour,
		BcryptCost:     4,
		StudentDomain:  "@aluno.ifsc.edu.br",
		EmployeeDomain: "@ifsc.edu.br",
		BootstrapAdmins: map[string]bool{
			"coordenacao@ifsc.edu.br": true,
			"direcao@ifsc.edu.br":     true,
		},
		MaxPhotoBytes: 300 * 1024,
	}
}
