package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meetline/api/internal/domain"
	"github.com/meetline/api/internal/service"
)

type memMeetingStore struct {
	docs map[string]domain.Meeting
	seq  int
}

func newMemMeetingStore() *memMeetingStore {
	return &memMeetingStore{docs: map[string]domain.Meeting{}}
}

func (s *memMeetingStore) Create(_ context.Context, meeting domain.Meeting) (*domain.Meeting, error) {
	s.seq++
	meeting.ID = fmt.Sprintf("doc-%d", s.seq)
	s.docs[meeting.ID] = meeting
	return &meeting, nil
}

func (s *memMeetingStore) FindByID(_ context.Context, id string) (*domain.Meeting, error) {
	meeting, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &meeting, nil
}

func (s *memMeetingStore) FindByOwner(_ context.Context, ownerID string) ([]domain.Meeting, error) {
	out := []domain.Meeting{}
	for _, m := range s.docs {
		if m.OwnerID == ownerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memMeetingStore) Update(_ context.Context, id string, fields map[string]any) error {
	meeting, ok := s.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	if title, ok := fields["title"].(string); ok {
		meeting.Title = title
	}
	meeting.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	s.docs[id] = meeting
	return nil
}

func (s *memMeetingStore) Delete(_ context.Context, id string) error {
	if _, ok := s.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

func newMeetingAPI(store *memMeetingStore) *echo.Echo {
	e := echo.New()
	e.Validator = NewAppValidator()
	e.HTTPErrorHandler = HTTPErrorHandler

	h := NewMeetingHandler(service.NewMeetingService(store))
	g := e.Group("/api/v1/meetings", Auth(stubVerifier{}))
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)

	return e
}

func doJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateMeeting(t *testing.T) {
	e := newMeetingAPI(newMemMeetingStore())

	rec := doJSON(e, http.MethodPost, "/api/v1/meetings", "user-1",
		`{"title":"Standup","date":"2024-01-05","time":"09:00","duration":15}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Message string         `json:"message"`
		Meeting domain.Meeting `json:"meeting"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	m := body.Meeting
	if m.ID == "" {
		t.Error("meeting id is empty")
	}
	if m.OwnerID != "user-1" {
		t.Errorf("ownerId = %q, want caller's subject id", m.OwnerID)
	}
	if m.Title != "Standup" || m.Date != "2024-01-05" || m.Time != "09:00" || m.Duration != 15 {
		t.Errorf("fields do not match request: %+v", m)
	}
	if m.CreatedAt == "" || m.CreatedAt != m.UpdatedAt {
		t.Errorf("timestamps should be equal on creation: %q vs %q", m.CreatedAt, m.UpdatedAt)
	}
}

func TestCreateMeetingMissingFields(t *testing.T) {
	e := newMeetingAPI(newMemMeetingStore())

	rec := doJSON(e, http.MethodPost, "/api/v1/meetings", "user-1", `{"title":"Standup"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if msg := decodeMessage(t, rec); msg != "title, date, time and duration are required" {
		t.Errorf("message = %q", msg)
	}
}

func TestCreateMeetingWithoutToken(t *testing.T) {
	e := newMeetingAPI(newMemMeetingStore())

	rec := doJSON(e, http.MethodPost, "/api/v1/meetings", "",
		`{"title":"Standup","date":"2024-01-05","time":"09:00","duration":15}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "No token provided" {
		t.Errorf("message = %q", msg)
	}
}

func TestListReturnsOnlyOwnMeetings(t *testing.T) {
	e := newMeetingAPI(newMemMeetingStore())

	doJSON(e, http.MethodPost, "/api/v1/meetings", "user-1",
		`{"title":"Mine","date":"2024-01-05","time":"09:00","duration":15}`)
	doJSON(e, http.MethodPost, "/api/v1/meetings", "user-2",
		`{"title":"Theirs","date":"2024-01-05","time":"10:00","duration":30}`)

	rec := doJSON(e, http.MethodGet, "/api/v1/meetings", "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var meetings []domain.Meeting
	if err := json.Unmarshal(rec.Body.Bytes(), &meetings); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(meetings) != 1 || meetings[0].Title != "Mine" {
		t.Errorf("meetings = %+v", meetings)
	}
}

// Pins the current behavior: a meeting is readable by any authenticated
// caller who knows its id, not only by its owner.
func TestGetMeetingByIDIgnoresOwnership(t *testing.T) {
	store := newMemMeetingStore()
	e := newMeetingAPI(store)

	rec := doJSON(e, http.MethodPost, "/api/v1/meetings", "user-1",
		`{"title":"Private","date":"2024-01-05","time":"09:00","duration":15}`)
	var created struct {
		Meeting domain.Meeting `json:"meeting"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created meeting: %v", err)
	}

	rec = doJSON(e, http.MethodGet, "/api/v1/meetings/"+created.Meeting.ID, "user-2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for a foreign meeting (current behavior)", rec.Code)
	}
}

func TestGetMeetingNotFound(t *testing.T) {
	e := newMeetingAPI(newMemMeetingStore())

	rec := doJSON(e, http.MethodGet, "/api/v1/meetings/missing", "user-1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Meeting not found" {
		t.Errorf("message = %q", msg)
	}
}

func TestDeleteMeeting(t *testing.T) {
	store := newMemMeetingStore()
	e := newMeetingAPI(store)

	rec := doJSON(e, http.MethodPost, "/api/v1/meetings", "user-1",
		`{"title":"Gone","date":"2024-01-05","time":"09:00","duration":15}`)
	var created struct {
		Meeting domain.Meeting `json:"meeting"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created meeting: %v", err)
	}

	rec = doJSON(e, http.MethodDelete, "/api/v1/meetings/"+created.Meeting.ID, "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = doJSON(e, http.MethodDelete, "/api/v1/meetings/"+created.Meeting.ID, "user-1", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}
