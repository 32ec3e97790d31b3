package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/meetline/api/internal/domain"
	"github.com/meetline/api/internal/identity"
)

// UserStore defines the profile document access interface consumed by UserService.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user domain.User) error
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

// IdentityProvider defines the account-management operations consumed by UserService.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, email, password string) (identity.Account, error)
	GetAccount(ctx context.Context, uid string) (identity.Account, error)
	UpdateAccountEmail(ctx context.Context, uid, email string) error
	DeleteAccount(ctx context.Context, uid string) error
	PasswordResetLink(ctx context.Context, email string) (string, error)
}

// PasswordGrant exchanges email/password credentials for session tokens.
type PasswordGrant interface {
	SignIn(ctx context.Context, email, password string) (identity.Session, error)
}

// UserService orchestrates account and profile lifecycle operations.
type UserService struct {
	users     UserStore
	provider  IdentityProvider
	passwords PasswordGrant // nil when no web API key is configured
}

// NewUserService creates a new UserService. passwords may be nil if the
// password grant is not configured; Login then fails with an internal error.
func NewUserService(users UserStore, provider IdentityProvider, passwords PasswordGrant) *UserService {
	return &UserService{users: users, provider: provider, passwords: passwords}
}

// Register creates the identity-provider account and then persists the
// shadow profile document. When the document write fails after account
// creation succeeded, a *PhaseError for the profile phase is returned and
// the orphaned account is left in place.
func (s *UserService) Register(ctx context.Context, email, password string, fields domain.UserFields) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.E(domain.ErrInvalidInput, "Email and password are required")
	}

	account, err := s.provider.CreateAccount(ctx, email, password)
	if err != nil {
		switch identity.Classify(err) {
		case identity.ErrorEmailAlreadyExists:
			return nil, domain.E(domain.ErrConflict, "Email already in use")
		case identity.ErrorInvalidArgument:
			return nil, domain.E(domain.ErrInvalidInput, "Invalid email or password")
		default:
			return nil, &PhaseError{Phase: PhaseAccount, Err: err}
		}
	}

	fields.Email = email
	user := domain.NewUser(fields, account.UID)

	if err := s.users.Create(ctx, user); err != nil {
		slog.Error("profile document not persisted after account creation",
			"uid", account.UID, "error", err)
		return nil, &PhaseError{Phase: PhaseProfile, Err: err}
	}

	return &user, nil
}

// LoginResult holds the session tokens and the best-effort shadow profile.
type LoginResult struct {
	IDToken      string
	RefreshToken string
	User         *domain.User
}

// Login exchanges credentials for session tokens via the provider's
// password grant. Credential rejections collapse to a single generic
// message regardless of whether the account exists. The profile lookup is
// best effort: its failure does not fail the login.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.E(domain.ErrInvalidInput, "Email and password are required")
	}
	if s.passwords == nil {
		return nil, domain.E(domain.ErrInternal, "Missing FIREBASE_WEB_API_KEY")
	}

	session, err := s.passwords.SignIn(ctx, email, password)
	if err != nil {
		var signInErr *identity.SignInError
		if errors.As(err, &signInErr) {
			return nil, domain.E(domain.ErrUnauthenticated, loginMessage(signInErr.Code))
		}
		return nil, fmt.Errorf("password grant: %w", err)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		slog.Warn("profile lookup failed during login", "email", email, "error", err)
		user = nil
	}

	return &LoginResult{
		IDToken:      session.IDToken,
		RefreshToken: session.RefreshToken,
		User:         user,
	}, nil
}

func loginMessage(code string) string {
	switch code {
	case "INVALID_PASSWORD", "EMAIL_NOT_FOUND", "INVALID_LOGIN_CREDENTIALS":
		return "Invalid credentials"
	case "UNKNOWN":
		return "Unable to login with email/password"
	default:
		return code
	}
}

// GetProfile fetches the shadow profile for the given subject. A missing
// document is not an error: accounts provisioned upstream (social sign-in)
// have no document yet, so a minimal one is created from provider data and
// returned. The fallback is idempotent; a second call finds the document.
func (s *UserService) GetProfile(ctx context.Context, subjectID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, subjectID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	account, err := s.provider.GetAccount(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("fetch account for auto-provisioning: %w", err)
	}

	username := account.DisplayName
	if username == "" {
		username, _, _ = strings.Cut(account.Email, "@")
	}

	created := domain.NewUser(domain.UserFields{
		Username: username,
		Email:    account.Email,
	}, subjectID)

	if err := s.users.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("auto-provision profile %s: %w", subjectID, err)
	}

	return &created, nil
}

// ProfileUpdate holds the profile fields a caller may change. Nil fields
// are left untouched. Email changes go through UpdateEmail so the auth
// account and the document stay in step.
type ProfileUpdate struct {
	Username  *string
	Lastname  *string
	Birthdate *string
}

// UpdateProfile merges the supplied fields into the shadow document only.
func (s *UserService) UpdateProfile(ctx context.Context, subjectID string, update ProfileUpdate) error {
	fields := map[string]any{}
	if update.Username != nil {
		fields["username"] = *update.Username
	}
	if update.Lastname != nil {
		fields["lastname"] = *update.Lastname
	}
	if update.Birthdate != nil {
		fields["birthdate"] = *update.Birthdate
	}

	if err := s.users.Update(ctx, subjectID, fields); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.E(domain.ErrNotFound, "User not found")
		}
		return err
	}
	return nil
}

// UpdateEmail changes the login email at the identity provider first, then
// mirrors it into the shadow document.
func (s *UserService) UpdateEmail(ctx context.Context, subjectID, email string) error {
	if email == "" {
		return domain.E(domain.ErrInvalidInput, "New email is required")
	}

	if err := s.provider.UpdateAccountEmail(ctx, subjectID, email); err != nil {
		switch identity.Classify(err) {
		case identity.ErrorEmailAlreadyExists:
			return domain.E(domain.ErrConflict, "Email already in use")
		case identity.ErrorInvalidArgument:
			return domain.E(domain.ErrInvalidInput, "Invalid email")
		case identity.ErrorAccountNotFound:
			return domain.E(domain.ErrNotFound, "User not found")
		default:
			return fmt.Errorf("update account email: %w", err)
		}
	}

	if err := s.users.Update(ctx, subjectID, map[string]any{"email": email}); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

// DeleteProfile removes the shadow document, then the provider account.
// The document goes first: if that fails the account survives, whereas the
// reverse order could strand an undiscoverable document. An already-missing
// document is fine; the account phase still runs. Each phase failure is
// reported as a *PhaseError naming the phase.
func (s *UserService) DeleteProfile(ctx context.Context, subjectID string) error {
	if err := s.users.Delete(ctx, subjectID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return &PhaseError{Phase: PhaseProfile, Err: err}
	}

	if err := s.provider.DeleteAccount(ctx, subjectID); err != nil {
		slog.Error("account deletion failed after profile document removal",
			"uid", subjectID, "error", err)
		return &PhaseError{Phase: PhaseAccount, Err: err}
	}
	return nil
}

// RequestPasswordReset asks the provider for a reset link. The provider
// also delivers the reset email itself; the link is returned for
// non-production flows.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", domain.E(domain.ErrInvalidInput, "Email is required")
	}

	link, err := s.provider.PasswordResetLink(ctx, email)
	if err != nil {
		return "", err
	}
	return link, nil
}
