package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ifsc-carteirinha/carteirinha-backend/internal/model"
	"github.com/rs/zerolog"
)

func adminSession() *model.Session {
	return &model.Session{
		Identity:    "coordenacao@ifsc.edu.br",
		Email:       "coordenacao@ifsc.edu.br",
		Name:        "Coordenação",
		Affiliation: model.AffiliationEmployee,
		IsAdmin:     true,
	}
}

func newTestViewModeService(store *fakeSessionStore) *ViewModeService {
	return NewViewModeService(store, time.Hour, zerolog.Nop())
}

func TestDeriveVisibility(t *testing.T) {
	tests := []struct {
		name    string
		isAdmin bool
		viewing bool
		want    model.Visibility
	}{
		{
			"student", false, false,
			model.Visibility{StudentPanel: true},
		},
		{
			"admin", true, false,
			model.Visibility{AdminPanel: true, RolesPanel: true, CanEnterStudentView: true},
		},
		{
			"admin viewing as student", true, true,
			model.Visibility{StudentPanel: true, StudentViewBanner: true, CanExitStudentView: true},
		},
		{
			// The flag is meaningless without admin; it must not leak panels.
			"non-admin with stale flag", false, true,
			model.Visibility{StudentPanel: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveVisibility(tt.isAdmin, tt.viewing); got != tt.want {
				t.Errorf("DeriveVisibility(%t, %t) = %+v, want %+v", tt.isAdmin, tt.viewing, got, tt.want)
			}
		})
	}
}

func TestEnterStudentViewAdminOnly(t *testing.T) {
	svc := newTestViewModeService(newFakeSessionStore())

	sess := studentSession()
	if err := svc.EnterStudentView(context.Background(), sess); !errors.Is(err, ErrAdminOnly) {
		t.Errorf("student enter err = %v, want ErrAdminOnly", err)
	}
	if err := svc.ExitStudentView(context.Background(), nil); !errors.Is(err, ErrAdminOnly) {
		t.Errorf("nil session exit err = %v, want ErrAdminOnly", err)
	}
}

func TestViewModeRoundTrip(t *testing.T) {
	store := newFakeSessionStore()
	svc := newTestViewModeService(store)
	sess := adminSession()
	ctx := context.Background()

	if got := svc.Current(ctx, sess); !got.AdminPanel {
		t.Fatalf("fresh admin visibility = %+v, want admin panel", got)
	}

	if err := svc.EnterStudentView(ctx, sess); err != nil {
		t.Fatalf("EnterStudentView: %v", err)
	}
	got := svc.Current(ctx, sess)
	if !got.StudentPanel || !got.StudentViewBanner || got.AdminPanel {
		t.Errorf("viewing visibility = %+v, want student panel with banner", got)
	}

	if err := svc.ExitStudentView(ctx, sess); err != nil {
		t.Fatalf("ExitStudentView: %v", err)
	}
	if got := svc.Current(ctx, sess); !got.AdminPanel || got.StudentPanel {
		t.Errorf("visibility after exit = %+v, want admin panel", got)
	}
}

func TestCurrentFallsBackOnStoreFailure(t *testing.T) {
	store := newFakeSessionStore()
	svc := newTestViewModeService(store)
	sess := adminSession()
	ctx := context.Background()

	if err := svc.EnterStudentView(ctx, sess); err != nil {
		t.Fatalf("EnterStudentView: %v", err)
	}
	store.fail = true

	// The lookup failure must fall back to the real role, never widen it.
	got := svc.Current(ctx, sess)
	if !got.AdminPanel {
		t.Errorf("visibility on store failure = %+v, want admin fallback", got)
	}
}
