package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type stubUsers struct {
	byEmail    *domain.User
	byEmailErr error
	created    *domain.User
	createErr  error
	ensured    *domain.User
	ensureErr  error

	lastEnsureName  string
	lastEnsureEmail string
	lastCreate      domain.User
}

func (s *stubUsers) Create(_ context.Context, u domain.User) (*domain.User, error) {
	s.lastCreate = u
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.created != nil {
		return s.created, nil
	}
	out := u
	out.ID = 1
	return &out, nil
}

func (s *stubUsers) EnsureByEmail(_ context.Context, name, email string) (*domain.User, error) {
	s.lastEnsureName = name
	s.lastEnsureEmail = email
	return s.ensured, s.ensureErr
}

func (s *stubUsers) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return s.byEmail, s.byEmailErr
}

func newSessions() *Sessions {
	return NewSessions("test-secret", time.Hour)
}

func TestCredentialStrategy_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Abcdefg1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users := &stubUsers{byEmail: &domain.User{ID: 7, Email: "user@example.com", PasswordHash: string(hash), Role: domain.RoleUser}}

	identity, err := NewCredentialStrategy(users).Authenticate(context.Background(), Credentials{Email: "User@Example.com", Password: "Abcdefg1"})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if identity.UserID != 7 || identity.Email != "user@example.com" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestCredentialStrategy_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-pass"), bcrypt.MinCost)
	users := &stubUsers{byEmail: &domain.User{ID: 7, Email: "user@example.com", PasswordHash: string(hash)}}

	_, err := NewCredentialStrategy(users).Authenticate(context.Background(), Credentials{Email: "user@example.com", Password: "wrong-pass"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCredentialStrategy_UnknownEmail(t *testing.T) {
	users := &stubUsers{byEmailErr: domain.ErrNotFound}

	_, err := NewCredentialStrategy(users).Authenticate(context.Background(), Credentials{Email: "nobody@example.com", Password: "whatever1"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCredentialStrategy_FederatedOnlyAccount(t *testing.T) {
	users := &stubUsers{byEmail: &domain.User{ID: 3, Email: "sso@example.com"}}

	_, err := NewCredentialStrategy(users).Authenticate(context.Background(), Credentials{Email: "sso@example.com", Password: "whatever1"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestFederatedStrategy_ProvisionsUser(t *testing.T) {
	users := &stubUsers{ensured: &domain.User{ID: 12, Email: "new@example.com", Role: domain.RoleUser}}

	identity, err := NewFederatedStrategy(users).Authenticate(context.Background(), Credentials{Provider: "google", Email: "New@Example.com", Name: "New User"})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if identity.UserID != 12 {
		t.Fatalf("unexpected identity: %+v", identity)
	}
	if users.lastEnsureEmail != "new@example.com" {
		t.Fatalf("expected lowered email, got %q", users.lastEnsureEmail)
	}
	if users.lastEnsureName != "New User" {
		t.Fatalf("unexpected name: %q", users.lastEnsureName)
	}
}

func TestFederatedStrategy_MissingEmail(t *testing.T) {
	users := &stubUsers{}
	_, err := NewFederatedStrategy(users).Authenticate(context.Background(), Credentials{Provider: "google"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestService_Login_IssuesVerifiableToken(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("Abcdefg1"), bcrypt.MinCost)
	users := &stubUsers{byEmail: &domain.User{ID: 7, Email: "user@example.com", PasswordHash: string(hash), Role: domain.RoleAdmin}}
	sessions := newSessions()
	svc := New(users, sessions)

	identity, token, err := svc.Login(context.Background(), Credentials{Email: "user@example.com", Password: "Abcdefg1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !identity.IsAdmin() {
		t.Fatalf("expected admin identity")
	}

	got, err := sessions.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != identity {
		t.Fatalf("identity mismatch: got %+v want %+v", got, identity)
	}
}

func TestService_Register_ShortPassword(t *testing.T) {
	svc := New(&stubUsers{}, newSessions())
	if _, err := svc.Register(context.Background(), "A", "a@example.com", "short"); err == nil {
		t.Fatalf("expected error for short password")
	}
}

func TestSessions_VerifyExpired(t *testing.T) {
	sessions := NewSessions("test-secret", -time.Minute)
	token, err := sessions.Issue(domain.Identity{UserID: 1, Email: "a@example.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := sessions.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestSessions_VerifyWrongSecret(t *testing.T) {
	token, err := newSessions().Issue(domain.Identity{UserID: 1})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	other := NewSessions("other-secret", time.Hour)
	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
