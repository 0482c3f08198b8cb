package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/config"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrGoogleLoginDisabled  = errors.New("google login is not configured")
	ErrInvalidProviderToken = errors.New("invalid identity-provider token")
)

// AccountRepository is the local-credential account lookup the auth
// service needs. Google sign-ins never touch it.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
}

// Claims extends JWT standard claims with the authenticated-identity fact
// the rest of the system consumes.
type Claims struct {
	jwt.RegisteredClaims
	Email       string            `json:"email"`
	Name        string            `json:"name"`
	Affiliation model.Affiliation `json:"affiliation"`
	IsAdmin     bool              `json:"is_admin"`
}

// Session converts validated claims into the ephemeral session fact.
func (c *Claims) Session() *model.Session {
	return &model.Session{
		Identity:    c.Subject,
		Email:       c.Email,
		Name:        c.Name,
		Affiliation: c.Affiliation,
		IsAdmin:     c.IsAdmin,
	}
}

// AuthService handles both auth modes (local credentials and the Google
// identity-provider popup), JWT minting/validation and session state.
type AuthService struct {
	cfg      *config.Config
	accounts AccountRepository
	identity *IdentityService
	sessions SessionStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, accounts AccountRepository, identity *IdentityService, sessions SessionStore) *AuthService {
	return &AuthService{
		cfg:      cfg,
		accounts: accounts,
		identity: identity,
		sessions: sessions,
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// LoginLocal authenticates against a local account, resolves the identity
// and opens a fresh session. The identity is the lower-cased email.
func (s *AuthService) LoginLocal(ctx context.Context, email, senha string) (string, *model.Session, error) {
	login := strings.ToLower(strings.TrimSpace(email))

	account, err := s.accounts.GetByEmail(ctx, login)
	if err != nil {
		return "", nil, fmt.Errorf("%w: account lookup: %v", ErrStoreUnavailable, err)
	}
	if account == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := s.CheckPassword(account.PasswordHash, senha); err != nil {
		return "", nil, err
	}

	return s.openSession(ctx, login, login, account.Nome)
}

// LoginGoogle verifies an identity-provider ID token, resolves the identity
// and opens a fresh session. The identity is the provider's stable subject.
func (s *AuthService) LoginGoogle(ctx context.Context, idToken string) (string, *model.Session, error) {
	if s.cfg.GoogleClientID == "" {
		return "", nil, ErrGoogleLoginDisabled
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{s.cfg.GoogleClientID}); err != nil {
		return "", nil, ErrInvalidProviderToken
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return "", nil, ErrInvalidProviderToken
	}

	return s.openSession(ctx, claimSet.Sub, claimSet.Email, claimSet.Name)
}

// openSession runs the hard domain boundary, mints the JWT and registers the
// session. A fresh login always clears the viewing-as-student flag, so the
// flag never survives a sign-out/sign-in cycle.
func (s *AuthService) openSession(ctx context.Context, identity, email, name string) (string, *model.Session, error) {
	affiliation, isAdmin, err := s.identity.Resolve(ctx, email)
	if err != nil {
		return "", nil, err
	}

	jti := uuid.New().String()
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		Email:       strings.ToLower(email),
		Name:        name,
		Affiliation: affiliation,
		IsAdmin:     isAdmin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	if err := s.sessions.SetSession(ctx, identity, jti, s.cfg.JWTExpiry); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}
	if err := s.sessions.SetStudentView(ctx, identity, false, 0); err != nil {
		return "", nil, fmt.Errorf("reset view mode: %w", err)
	}

	return signed, claims.Session(), nil
}

// Logout destroys the session state for an identity.
func (s *AuthService) Logout(ctx context.Context, identity string) error {
	return s.sessions.ClearSession(ctx, identity)
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// ValidateSession checks that the token's JTI matches the live session.
// A fresh login elsewhere invalidates older tokens.
func (s *AuthService) ValidateSession(ctx context.Context, identity, jti string) error {
	stored, err := s.sessions.GetSession(ctx, identity)
	if err != nil {
		return fmt.Errorf("check session: %w", err)
	}
	if stored == "" {
		return errors.New("no active session")
	}
	if stored != jti {
		return errors.New("session invalidated")
	}
	return nil
}
