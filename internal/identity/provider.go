// Package identity talks to Firebase Auth: verifying bearer credentials,
// managing accounts, and exchanging email/password for session tokens via
// the Identity Toolkit REST API.
package identity

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// Account is the subset of a Firebase Auth user record the rest of the
// system is allowed to see.
type Account struct {
	UID         string
	Email       string
	DisplayName string
}

// Provider performs account-management operations against Firebase Auth.
type Provider struct {
	client *auth.Client
}

// NewProvider creates a Provider over the given Auth client.
func NewProvider(client *auth.Client) *Provider {
	return &Provider{client: client}
}

// CreateAccount registers a new email/password account and returns it.
func (p *Provider) CreateAccount(ctx context.Context, email, password string) (Account, error) {
	record, err := p.client.CreateUser(ctx, (&auth.UserToCreate{}).Email(email).Password(password))
	if err != nil {
		return Account{}, fmt.Errorf("create account: %w", err)
	}
	return accountFromRecord(record), nil
}

// GetAccount fetches the account for the given UID.
func (p *Provider) GetAccount(ctx context.Context, uid string) (Account, error) {
	record, err := p.client.GetUser(ctx, uid)
	if err != nil {
		return Account{}, fmt.Errorf("get account %s: %w", uid, err)
	}
	return accountFromRecord(record), nil
}

// UpdateAccountEmail changes the login email of the account.
func (p *Provider) UpdateAccountEmail(ctx context.Context, uid, email string) error {
	if _, err := p.client.UpdateUser(ctx, uid, (&auth.UserToUpdate{}).Email(email)); err != nil {
		return fmt.Errorf("update account email: %w", err)
	}
	return nil
}

// DeleteAccount removes the account from Firebase Auth.
func (p *Provider) DeleteAccount(ctx context.Context, uid string) error {
	if err := p.client.DeleteUser(ctx, uid); err != nil {
		return fmt.Errorf("delete account %s: %w", uid, err)
	}
	return nil
}

// PasswordResetLink asks the provider to generate a password reset link.
// Email delivery is handled provider-side; the link is returned for
// non-production flows.
func (p *Provider) PasswordResetLink(ctx context.Context, email string) (string, error) {
	link, err := p.client.PasswordResetLink(ctx, email)
	if err != nil {
		return "", fmt.Errorf("generate password reset link: %w", err)
	}
	return link, nil
}

func accountFromRecord(record *auth.UserRecord) Account {
	return Account{
		UID:         record.UID,
		Email:       record.Email,
		DisplayName: record.DisplayName,
	}
}
