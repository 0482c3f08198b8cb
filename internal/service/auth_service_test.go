package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ifsc-carteirinha/carteirinha-backend/internal/model"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(accounts *fakeAccountRepo, grants *fakeGrantRepo, store *fakeSessionStore) *AuthService {
	cfg := testConfig()
	identity := NewIdentityService(cfg, grants, zerolog.Nop())
	return NewAuthService(cfg, accounts, identity, store)
}

func seedAccount(accounts *fakeAccountRepo, email, senha string) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.MinCost)
	accounts.accounts[email] = &model.Account{
		Email:        email,
		Nome:         "Maria Silva",
		PasswordHash: string(hash),
	}
}

func TestLoginLocal(t *testing.T) {
	accounts := newFakeAccountRepo()
	seedAccount(accounts, "maria@aluno.ifsc.edu.br", "senha123")
	store := newFakeSessionStore()
	svc := newTestAuthService(accounts, newFakeGrantRepo(), store)

	token, sess, err := svc.LoginLocal(context.Background(), "Maria@ALUNO.ifsc.edu.br", "senha123")
	if err != nil {
		t.Fatalf("LoginLocal: %v", err)
	}
	if token == "" {
		t.Error("expected a signed token")
	}
	if sess.Affiliation != model.AffiliationStudent || sess.IsAdmin {
		t.Errorf("session = %+v, want non-admin student", sess)
	}
	if store.sessions[sess.Identity] == "" {
		t.Error("session JTI not registered")
	}
}

func TestLoginLocalInvalidCredentials(t *testing.T) {
	accounts := newFakeAccountRepo()
	seedAccount(accounts, "maria@aluno.ifsc.edu.br", "senha123")
	svc := newTestAuthService(accounts, newFakeGrantRepo(), newFakeSessionStore())

	tests := []struct {
		name  string
		email string
		senha string
	}{
		{"unknown account", "outra@aluno.ifsc.edu.br", "senha123"},
		{"wrong password", "maria@aluno.ifsc.edu.br", "errada"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.LoginLocal(context.Background(), tt.email, tt.senha)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestLoginRejectsForeignDomain(t *testing.T) {
	accounts := newFakeAccountRepo()
	seedAccount(accounts, "maria@gmail.com", "senha123")
	svc := newTestAuthService(accounts, newFakeGrantRepo(), newFakeSessionStore())

	_, _, err := svc.LoginLocal(context.Background(), "maria@gmail.com", "senha123")
	if !errors.Is(err, ErrDomainNotAllowed) {
		t.Errorf("err = %v, want ErrDomainNotAllowed", err)
	}
}

func TestLoginGoogleDisabledWithoutClientID(t *testing.T) {
	svc := newTestAuthService(newFakeAccountRepo(), newFakeGrantRepo(), newFakeSessionStore())

	_, _, err := svc.LoginGoogle(context.Background(), "some-token")
	if !errors.Is(err, ErrGoogleLoginDisabled) {
		t.Errorf("err = %v, want ErrGoogleLoginDisabled", err)
	}
}

func TestFreshLoginResetsStudentView(t *testing.T) {
	accounts := newFakeAccountRepo()
	seedAccount(accounts, "coordenacao@ifsc.edu.br", "senha123")
	store := newFakeSessionStore()
	svc := newTestAuthService(accounts, newFakeGrantRepo(), store)
	ctx := context.Background()

	_, sess, err := svc.LoginLocal(ctx, "coordenacao@ifsc.edu.br", "senha123")
	if err != nil {
		t.Fatalf("LoginLocal: %v", err)
	}
	if !sess.IsAdmin {
		t.Fatal("bootstrap admin not resolved as admin")
	}

	// Simulate a viewing-as-student session left behind, then sign in again.
	store.viewing[sess.Identity] = true
	if _, _, err := svc.LoginLocal(ctx, "coordenacao@ifsc.edu.br", "senha123"); err != nil {
		t.Fatalf("second LoginLocal: %v", err)
	}
	if store.viewing[sess.Identity] {
		t.Error("viewing-as-student flag survived a fresh login")
	}
}

func TestValidateTokenRoundTrip(t *testing.T) {
	accounts := newFakeAccountRepo()
	seedAccount(accounts, "maria@aluno.ifsc.edu.br", "senha123")
	store := newFakeSessionStore()
	svc := newTestAuthService(accounts, newFakeGrantRepo(), store)
	ctx := context.Background()

	token, sess, err := svc.LoginLocal(ctx, "maria@aluno.ifsc.edu.br", "senha123")
	if err != nil {
		t.Fatalf("LoginLocal: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Subject != sess.Identity || claims.Email != sess.Email {
		t.Errorf("claims = %+v, want session identity %q", claims, sess.Identity)
	}
	if err := svc.ValidateSession(ctx, claims.Subject, claims.ID); err != nil {
		t.Errorf("ValidateSession: %v", err)
	}
}

func TestFreshLoginInvalidatesOlderToken(t *testing.T) {
	accounts := newFakeAccountRepo()
	seedAccount(accounts, "maria@aluno.ifsc.edu.br", "senha123")
	svc := newTestAuthService(accounts, newFakeGrantRepo(), newFakeSessionStore())
	ctx := context.Background()

	first, _, err := svc.LoginLocal(ctx, "maria@aluno.ifsc.edu.br", "senha123")
	if err != nil {
		t.Fatalf("first LoginLocal: %v", err)
	}
	if _, _, err := svc.LoginLocal(ctx, "maria@aluno.ifsc.edu.br", "senha123"); err != nil {
		t.Fatalf("second LoginLocal: %v", err)
	}

	claims, err := svc.ValidateToken(first)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if err := svc.ValidateSession(ctx, claims.Subject, claims.ID); err == nil {
		t.Error("older token still accepted after a fresh login")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	accounts := newFakeAccountRepo()
	seedAccount(accounts, "maria@aluno.ifsc.edu.br", "senha123")
	store := newFakeSessionStore()
	svc := newTestAuthService(accounts, newFakeGrantRepo(), store)
	ctx := context.Background()

	token, sess, err := svc.LoginLocal(ctx, "maria@aluno.ifsc.edu.br", "senha123")
	if err != nil {
		t.Fatalf("LoginLocal: %v", err)
	}
	if err := svc.Logout(ctx, sess.Identity); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if err := svc.ValidateSession(ctx, claims.Subject, claims.ID); err == nil {
		t.Error("session still valid after logout")
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	svc := newTestAuthService(newFakeAccountRepo(), newFakeGrantRepo(), newFakeSessionStore())

	if _, err := svc.ValidateToken("not.a.token"); err == nil {
		t.Error("malformed token accepted")
	}
}
