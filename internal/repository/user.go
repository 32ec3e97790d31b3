package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/meetline/api/internal/domain"
)

const usersCollection = "users"

// UserRepository handles profile document access in the users collection.
// Documents are keyed by the auth UID of the account they shadow.
type UserRepository struct {
	client *firestore.Client
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(client *firestore.Client) *UserRepository {
	return &UserRepository{client: client}
}

// FindByID retrieves the profile document for the given UID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	snap, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}

	var user domain.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", id, err)
	}
	return &user, nil
}

// FindByEmail retrieves the first profile document with the given email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	iter := r.client.Collection(usersCollection).
		Where("email", "==", email).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	var user domain.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &user, nil
}

// Create persists the profile document under its UID.
func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	if _, err := r.client.Collection(usersCollection).Doc(user.ID).Set(ctx, user); err != nil {
		return fmt.Errorf("create user %s: %w", user.ID, err)
	}
	return nil
}

// Update merges the supplied fields into the document and stamps updatedAt.
// Fields not present in the map are left untouched. A missing document is
// reported as domain.ErrNotFound.
func (r *UserRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	merged := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged[updatedAtField] = time.Now().UTC().Format(time.RFC3339)

	_, err := r.client.Collection(usersCollection).Doc(id).Update(ctx, updatesFrom(merged))
	if err != nil {
		if isNotFound(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update user %s: %w", id, err)
	}
	return nil
}

// Delete removes the profile document. Deleting a missing document is
// reported as domain.ErrNotFound for the caller to decide.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(usersCollection).Doc(id).Delete(ctx, firestore.Exists)
	if err != nil {
		if isNotFound(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}
