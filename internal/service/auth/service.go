package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Credentials carries whatever the chosen strategy needs: email+password
// for the credential strategy, a verified provider assertion for the
// federated one.
type Credentials struct {
	Provider string
	Email    string
	Password string
	Name     string
}

// Strategy authenticates credentials into an identity. Implementations
// must not issue sessions; that stays with the Service.
type Strategy interface {
	Authenticate(ctx context.Context, creds Credentials) (domain.Identity, error)
}

type usersRepo interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	EnsureByEmail(ctx context.Context, name, email string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// CredentialStrategy checks an email/password pair against stored bcrypt
// hashes.
type CredentialStrategy struct {
	users usersRepo
}

// NewCredentialStrategy builds the email/password strategy.
func NewCredentialStrategy(users usersRepo) *CredentialStrategy {
	return &CredentialStrategy{users: users}
}

func (s *CredentialStrategy) Authenticate(ctx context.Context, creds Credentials) (domain.Identity, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(creds.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Identity{}, ErrInvalidCredentials
		}
		return domain.Identity{}, err
	}
	// Federated-only accounts carry no hash and cannot log in by password.
	if u.PasswordHash == "" {
		return domain.Identity{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(creds.Password)); err != nil {
		return domain.Identity{}, ErrInvalidCredentials
	}
	return domain.Identity{UserID: u.ID, Email: u.Email, Role: u.Role}, nil
}

// FederatedStrategy provisions the user row on first sign-in and resolves
// the identity for a federated assertion. It performs no caller
// authentication itself: the HTTP layer must first verify the request
// comes from the trusted frontend relay (shared-secret header) before
// invoking it.
type FederatedStrategy struct {
	users usersRepo
}

// NewFederatedStrategy builds the federated sign-in strategy.
func NewFederatedStrategy(users usersRepo) *FederatedStrategy {
	return &FederatedStrategy{users: users}
}

func (s *FederatedStrategy) Authenticate(ctx context.Context, creds Credentials) (domain.Identity, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" {
		return domain.Identity{}, ErrInvalidCredentials
	}
	name := strings.TrimSpace(creds.Name)
	if name == "" {
		name = "Unnamed"
	}
	u, err := s.users.EnsureByEmail(ctx, name, email)
	if err != nil {
		return domain.Identity{}, err
	}
	return domain.Identity{UserID: u.ID, Email: u.Email, Role: u.Role}, nil
}

// Service unifies the authentication strategies behind one
// identity-resolution contract and owns session issuance.
type Service struct {
	users       usersRepo
	credential  Strategy
	federated   Strategy
	sessions    *Sessions
	passwordMin int
}

// New creates a Service with sane defaults.
func New(users usersRepo, sessions *Sessions) *Service {
	return &Service{
		users:       users,
		credential:  NewCredentialStrategy(users),
		federated:   NewFederatedStrategy(users),
		sessions:    sessions,
		passwordMin: 8,
	}
}

// Register creates a credential account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email required", domain.ErrInvalidInput)
	}
	password = strings.TrimSpace(password)
	if len(password) < s.passwordMin {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, s.passwordMin)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.users.Create(ctx, domain.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         domain.RoleUser,
	})
}

// Login resolves the strategy from the provider field, authenticates, and
// issues a session token for the resulting identity.
func (s *Service) Login(ctx context.Context, creds Credentials) (domain.Identity, string, error) {
	strategy := s.credential
	switch strings.ToLower(strings.TrimSpace(creds.Provider)) {
	case "", "credentials":
	default:
		strategy = s.federated
	}

	identity, err := strategy.Authenticate(ctx, creds)
	if err != nil {
		return domain.Identity{}, "", err
	}
	token, err := s.sessions.Issue(identity)
	if err != nil {
		return domain.Identity{}, "", err
	}
	return identity, token, nil
}

// SessionTTLSeconds exposes the access token lifetime for response bodies.
func (s *Service) SessionTTLSeconds() int {
	return s.sessions.TTLSeconds()
}
