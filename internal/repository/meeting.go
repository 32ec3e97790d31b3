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

const meetingsCollection = "meetings"

// MeetingRepository handles meeting document access in the meetings collection.
type MeetingRepository struct {
	client *firestore.Client
}

// NewMeetingRepository creates a new MeetingRepository.
func NewMeetingRepository(client *firestore.Client) *MeetingRepository {
	return &MeetingRepository{client: client}
}

// Create persists the meeting under a store-generated document ID and
// returns the stored meeting including that ID.
func (r *MeetingRepository) Create(ctx context.Context, meeting domain.Meeting) (*domain.Meeting, error) {
	ref := r.client.Collection(meetingsCollection).NewDoc()
	meeting.ID = ref.ID

	if _, err := ref.Set(ctx, meeting); err != nil {
		return nil, fmt.Errorf("create meeting: %w", err)
	}
	return &meeting, nil
}

// FindByID retrieves a meeting by its document ID.
func (r *MeetingRepository) FindByID(ctx context.Context, id string) (*domain.Meeting, error) {
	snap, err := r.client.Collection(meetingsCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find meeting %s: %w", id, err)
	}

	var meeting domain.Meeting
	if err := snap.DataTo(&meeting); err != nil {
		return nil, fmt.Errorf("decode meeting %s: %w", id, err)
	}
	return &meeting, nil
}

// FindByOwner retrieves all meetings owned by the given UID, in the store's
// natural order.
func (r *MeetingRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.Meeting, error) {
	iter := r.client.Collection(meetingsCollection).
		Where("ownerId", "==", ownerID).
		Documents(ctx)
	defer iter.Stop()

	meetings := []domain.Meeting{}
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list meetings for %s: %w", ownerID, err)
		}

		var meeting domain.Meeting
		if err := snap.DataTo(&meeting); err != nil {
			return nil, fmt.Errorf("decode meeting: %w", err)
		}
		meetings = append(meetings, meeting)
	}
	return meetings, nil
}

// Update merges the supplied fields into the document and stamps updatedAt.
// A missing document is reported as domain.ErrNotFound.
func (r *MeetingRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	merged := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged[updatedAtField] = time.Now().UTC().Format(time.RFC3339)

	_, err := r.client.Collection(meetingsCollection).Doc(id).Update(ctx, updatesFrom(merged))
	if err != nil {
		if isNotFound(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update meeting %s: %w", id, err)
	}
	return nil
}

// Delete removes the meeting document; a missing document is reported as
// domain.ErrNotFound.
func (r *MeetingRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(meetingsCollection).Doc(id).Delete(ctx, firestore.Exists)
	if err != nil {
		if isNotFound(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete meeting %s: %w", id, err)
	}
	return nil
}
