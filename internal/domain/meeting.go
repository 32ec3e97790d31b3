package domain

import "time"

// Meeting represents a meeting scheduled by a user. The document ID is
// assigned by the store; OwnerID is the auth UID of the creator and never
// changes after creation.
type Meeting struct {
	ID          string `json:"id" firestore:"id"`
	OwnerID     string `json:"ownerId" firestore:"ownerId"`
	Title       string `json:"title" firestore:"title"`
	Description string `json:"description" firestore:"description"`
	Date        string `json:"date" firestore:"date"`
	Time        string `json:"time" firestore:"time"`
	Duration    int    `json:"duration" firestore:"duration"`
	CreatedAt   string `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   string `json:"updatedAt" firestore:"updatedAt"`
}

// MeetingFields holds the fields a caller may supply when creating a meeting.
type MeetingFields struct {
	Title       string
	Description string
	Date        string // YYYY-MM-DD
	Time        string // HH:mm
	Duration    int    // minutes
}

// NewMeeting builds a meeting document for the given owner, filling in
// defaults for omitted fields. The ID is left empty; the store assigns one.
func NewMeeting(fields MeetingFields, ownerID string) Meeting {
	now := time.Now().UTC()

	date := fields.Date
	if date == "" {
		date = now.Format("2006-01-02")
	}
	timeOfDay := fields.Time
	if timeOfDay == "" {
		timeOfDay = "00:00"
	}
	duration := fields.Duration
	if duration == 0 {
		duration = 30
	}

	stamp := now.Format(time.RFC3339)
	return Meeting{
		OwnerID:     ownerID,
		Title:       fields.Title,
		Description: fields.Description,
		Date:        date,
		Time:        timeOfDay,
		Duration:    duration,
		CreatedAt:   stamp,
		UpdatedAt:   stamp,
	}
}
