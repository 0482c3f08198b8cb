package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/rs/zerolog"
)

func newTestRolesService(grants *fakeGrantRepo) *RolesService {
	return NewRolesService(testConfig(), grants, zerolog.Nop())
}

func TestRolesAddNormalizesLogin(t *testing.T) {
	grants := newFakeGrantRepo()
	svc := newTestRolesService(grants)

	login, err := svc.Add(context.Background(), "  Secretaria@IFSC.edu.br ")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if login != "secretaria@ifsc.edu.br" {
		t.Errorf("login = %q, want normalized lower-case", login)
	}
	if _, ok := grants.grants["secretaria@ifsc.edu.br"]; !ok {
		t.Error("normalized login not stored")
	}
}

func TestRolesAddRejectsInvalidLogin(t *testing.T) {
	svc := newTestRolesService(newFakeGrantRepo())

	for _, login := range []string{"", "   ", "sem-arroba"} {
		if _, err := svc.Add(context.Background(), login); !errors.Is(err, ErrInvalidLogin) {
			t.Errorf("Add(%q) err = %v, want ErrInvalidLogin", login, err)
		}
	}
}

func TestRolesListMergesBootstrap(t *testing.T) {
	grants := newFakeGrantRepo()
	svc := newTestRolesService(grants)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "secretaria@ifsc.edu.br"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if !sort.SliceIsSorted(list, func(i, j int) bool { return list[i].Login < list[j].Login }) {
		t.Error("listing is not sorted by login")
	}

	byLogin := make(map[string]bool, len(list))
	for _, g := range list {
		byLogin[g.Login] = g.Bootstrap
	}
	for _, login := range []string{"coordenacao@ifsc.edu.br", "direcao@ifsc.edu.br"} {
		bootstrap, ok := byLogin[login]
		if !ok {
			t.Errorf("bootstrap admin %q missing from listing", login)
			continue
		}
		if !bootstrap {
			t.Errorf("bootstrap admin %q not flagged", login)
		}
	}
	if bootstrap, ok := byLogin["secretaria@ifsc.edu.br"]; !ok || bootstrap {
		t.Errorf("registry grant missing or wrongly flagged bootstrap")
	}
}

func TestRolesRemoveBootstrapRejected(t *testing.T) {
	grants := newFakeGrantRepo()
	svc := newTestRolesService(grants)
	ctx := context.Background()

	if err := svc.Remove(ctx, "coordenacao@ifsc.edu.br"); !errors.Is(err, ErrBootstrapAdmin) {
		t.Fatalf("Remove bootstrap err = %v, want ErrBootstrapAdmin", err)
	}

	// Bootstrap entries stay listed after the rejected removal.
	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	found := false
	for _, g := range list {
		if g.Login == "coordenacao@ifsc.edu.br" {
			found = true
		}
	}
	if !found {
		t.Error("bootstrap admin disappeared from listing")
	}
}

func TestRolesRemoveRegistryGrant(t *testing.T) {
	grants := newFakeGrantRepo()
	svc := newTestRolesService(grants)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "secretaria@ifsc.edu.br"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Remove(ctx, "Secretaria@IFSC.edu.br"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok := grants.grants["secretaria@ifsc.edu.br"]; ok {
		t.Error("grant still stored after removal")
	}
}
