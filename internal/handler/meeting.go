package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meetline/api/internal/domain"
	"github.com/meetline/api/internal/service"
)

// MeetingHandler handles the meeting CRUD endpoints. All of them sit behind
// the access gate.
type MeetingHandler struct {
	meetings *service.MeetingService
}

// NewMeetingHandler creates a new MeetingHandler.
func NewMeetingHandler(meetings *service.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetings: meetings}
}

type createMeetingRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
	Duration    int    `json:"duration" validate:"gt=0"`
}

// Create persists a meeting owned by the caller.
func (h *MeetingHandler) Create(c echo.Context) error {
	subjectID, ok := SubjectID(c)
	if !ok {
		return domain.E(domain.ErrUnauthenticated, "No token provided")
	}

	var req createMeetingRequest
	if err := c.Bind(&req); err != nil {
		return domain.E(domain.ErrInvalidInput, "The request body is invalid")
	}
	if err := c.Validate(req); err != nil {
		return domain.E(domain.ErrInvalidInput, "title, date, time and duration are required")
	}

	meeting, err := h.meetings.Create(c.Request().Context(), subjectID, domain.MeetingFields{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Duration:    req.Duration,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Meeting created successfully",
		"meeting": meeting,
	})
}

// List returns all meetings owned by the caller.
func (h *MeetingHandler) List(c echo.Context) error {
	subjectID, ok := SubjectID(c)
	if !ok {
		return domain.E(domain.ErrUnauthenticated, "No token provided")
	}

	meetings, err := h.meetings.ListOwned(c.Request().Context(), subjectID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, meetings)
}

// GetByID returns a meeting by its ID.
func (h *MeetingHandler) GetByID(c echo.Context) error {
	meeting, err := h.meetings.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, meeting)
}

type updateMeetingRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Duration    *int    `json:"duration"`
}

// Update merges the supplied fields into the meeting document.
func (h *MeetingHandler) Update(c echo.Context) error {
	var req updateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return domain.E(domain.ErrInvalidInput, "The request body is invalid")
	}

	err := h.meetings.Update(c.Request().Context(), c.Param("id"), service.MeetingUpdate{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Duration:    req.Duration,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Meeting updated successfully"})
}

// Delete removes a meeting by its ID.
func (h *MeetingHandler) Delete(c echo.Context) error {
	if err := h.meetings.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Meeting deleted successfully"})
}
