package service

import (
	"context"
	"errors"

	"github.com/meetline/api/internal/domain"
)

// MeetingStore defines the meeting document access interface consumed by
// MeetingService.
type MeetingStore interface {
	Create(ctx context.Context, meeting domain.Meeting) (*domain.Meeting, error)
	FindByID(ctx context.Context, id string) (*domain.Meeting, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Meeting, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

// MeetingService handles meeting CRUD for authenticated users.
//
// Lookups, updates and deletes go by document ID without comparing ownerId
// to the caller; any authenticated caller who knows an ID can operate on
// the meeting. Kept as-is pending a product decision, pinned by tests.
type MeetingService struct {
	meetings MeetingStore
}

// NewMeetingService creates a new MeetingService.
func NewMeetingService(meetings MeetingStore) *MeetingService {
	return &MeetingService{meetings: meetings}
}

// Create validates the required fields, builds the meeting document for the
// owner and persists it, returning the stored meeting with its assigned ID.
func (s *MeetingService) Create(ctx context.Context, ownerID string, fields domain.MeetingFields) (*domain.Meeting, error) {
	if fields.Title == "" || fields.Date == "" || fields.Time == "" || fields.Duration <= 0 {
		return nil, domain.E(domain.ErrInvalidInput, "title, date, time and duration are required")
	}

	return s.meetings.Create(ctx, domain.NewMeeting(fields, ownerID))
}

// ListOwned returns all meetings owned by the given subject.
func (s *MeetingService) ListOwned(ctx context.Context, ownerID string) ([]domain.Meeting, error) {
	return s.meetings.FindByOwner(ctx, ownerID)
}

// GetByID returns the meeting with the given ID.
func (s *MeetingService) GetByID(ctx context.Context, id string) (*domain.Meeting, error) {
	meeting, err := s.meetings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.E(domain.ErrNotFound, "Meeting not found")
		}
		return nil, err
	}
	return meeting, nil
}

// MeetingUpdate holds the meeting fields a caller may change. Nil fields
// are left untouched.
type MeetingUpdate struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
	Duration    *int
}

// Update merges the supplied fields into the meeting document.
func (s *MeetingService) Update(ctx context.Context, id string, update MeetingUpdate) error {
	fields := map[string]any{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Date != nil {
		fields["date"] = *update.Date
	}
	if update.Time != nil {
		fields["time"] = *update.Time
	}
	if update.Duration != nil {
		fields["duration"] = *update.Duration
	}

	if err := s.meetings.Update(ctx, id, fields); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.E(domain.ErrNotFound, "Meeting not found")
		}
		return err
	}
	return nil
}

// Delete removes the meeting. Deleting a missing ID reports NotFound so the
// caller can decide; it is never a retryable failure.
func (s *MeetingService) Delete(ctx context.Context, id string) error {
	if err := s.meetings.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.E(domain.ErrNotFound, "Meeting not found")
		}
		return err
	}
	return nil
}
