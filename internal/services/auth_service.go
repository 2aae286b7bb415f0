package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/farellandr/sponzo/internal/logging"
	"github.com/farellandr/sponzo/internal/metrics"
	"github.com/farellandr/sponzo/internal/models"
)

type AuthOptions struct {
	// VerifyPasswords turns on bcrypt checks for accounts that have a hash.
	// Accounts without one (the seeded demo accounts) still log in by email.
	VerifyPasswords bool
	HashCost        int
}

type AuthService struct {
	accounts AccountRepository
	opts     AuthOptions
	now      func() time.Time
}

func NewAuthService(accounts AccountRepository, opts AuthOptions) *AuthService {
	if opts.HashCost == 0 {
		opts.HashCost = bcrypt.DefaultCost
	}
	return &AuthService{accounts: accounts, opts: opts, now: time.Now}
}

type RegisterInput struct {
	Email            string
	Password         string
	Name             string
	Role             models.Role
	OrganizationName string
	CollegeName      string
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// Authenticate looks the account up by email, ignoring surrounding whitespace.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	account, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if s.opts.VerifyPasswords && account.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
			return nil, models.ErrInvalidCredentials
		}
	}
	return account, nil
}

// Register creates an account. It returns models.ErrConflict when the email is
// already registered.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.Account, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, models.NewValidationError("email", "is required")
	}
	if !in.Role.Valid() {
		return nil, models.NewValidationError("role", "unknown role "+string(in.Role))
	}
	if in.Role == models.RoleAdmin {
		return nil, models.NewValidationError("role", "admin accounts cannot be self-registered")
	}

	account := models.Account{
		ID:               newID(string(in.Role)),
		Email:            email,
		Name:             strings.TrimSpace(in.Name),
		Role:             in.Role,
		OrganizationName: in.OrganizationName,
		CollegeName:      in.CollegeName,
		CreatedAt:        s.now().UTC(),
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.opts.HashCost)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = string(hash)
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, models.ErrConflict) {
			metrics.Registration(string(in.Role), "conflict")
		}
		return nil, err
	}

	metrics.Registration(string(in.Role), "success")
	logging.FromContext(ctx).Info().Str("account_id", account.ID).Str("role", string(account.Role)).Msg("account registered")
	return &account, nil
}

func (s *AuthService) Account(ctx context.Context, id string) (*models.Account, error) {
	return s.accounts.FindByID(ctx, id)
}

// SessionManager keeps one "current user" in the session slot, the way a
// single-user client does.
type SessionManager struct {
	auth     *AuthService
	sessions SessionRepository
}

func NewSessionManager(auth *AuthService, sessions SessionRepository) *SessionManager {
	return &SessionManager{auth: auth, sessions: sessions}
}

// Login overwrites the slot with the matching account.
func (m *SessionManager) Login(ctx context.Context, email, password string) (*models.Account, error) {
	account, err := m.auth.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := m.sessions.Set(ctx, *account); err != nil {
		return nil, err
	}
	return account, nil
}

// Register leaves the slot untouched when registration fails.
func (m *SessionManager) Register(ctx context.Context, in RegisterInput) (*models.Account, error) {
	account, err := m.auth.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := m.sessions.Set(ctx, *account); err != nil {
		return nil, err
	}
	return account, nil
}

func (m *SessionManager) Logout(ctx context.Context) error {
	return m.sessions.Clear(ctx)
}

// CurrentUser returns models.ErrNoSession when nobody is logged in.
func (m *SessionManager) CurrentUser(ctx context.Context) (*models.Account, error) {
	return m.sessions.Current(ctx)
}

func (m *SessionManager) HasRole(ctx context.Context, roles ...models.Role) (bool, error) {
	account, err := m.sessions.Current(ctx)
	if errors.Is(err, models.ErrNoSession) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return account.HasRole(roles...), nil
}
