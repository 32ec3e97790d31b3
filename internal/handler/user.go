package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meetline/api/internal/domain"
	"github.com/meetline/api/internal/service"
)

// UserHandler handles user registration, login and profile endpoints.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type registerRequest struct {
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
	Username  string `json:"username"`
	Lastname  string `json:"lastname"`
	Birthdate string `json:"birthdate"`
}

// Register creates an identity-provider account plus its profile document.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domain.E(domain.ErrInvalidInput, "The request body is invalid")
	}
	if err := c.Validate(req); err != nil {
		return domain.E(domain.ErrInvalidInput, "Email and password are required")
	}

	user, err := h.users.Register(c.Request().Context(), req.Email, req.Password, domain.UserFields{
		Username:  req.Username,
		Lastname:  req.Lastname,
		Birthdate: req.Birthdate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login exchanges email/password for session tokens.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.E(domain.ErrInvalidInput, "The request body is invalid")
	}
	if err := c.Validate(req); err != nil {
		return domain.E(domain.ErrInvalidInput, "Email and password are required")
	}

	result, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Login successful",
		"idToken":      result.IDToken,
		"refreshToken": result.RefreshToken,
		"user":         result.User,
	})
}

type passwordResetRequest struct {
	Email string `json:"email" validate:"required"`
}

// RequestPasswordReset has the provider generate (and deliver) a reset link.
func (h *UserHandler) RequestPasswordReset(c echo.Context) error {
	var req passwordResetRequest
	if err := c.Bind(&req); err != nil {
		return domain.E(domain.ErrInvalidInput, "The request body is invalid")
	}
	if err := c.Validate(req); err != nil {
		return domain.E(domain.ErrInvalidInput, "Email is required")
	}

	link, err := h.users.RequestPasswordReset(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":   "Password reset email sent",
		"resetLink": link,
	})
}

// ResetPassword is a deliberate stub: the reset itself happens out-of-band
// through the emailed provider link.
func (h *UserHandler) ResetPassword(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, MessageResponse{
		Message: "Password reset is handled automatically via email link",
	})
}

// GetProfile returns the caller's profile, creating it when the account
// exists upstream without a document yet.
func (h *UserHandler) GetProfile(c echo.Context) error {
	subjectID, ok := SubjectID(c)
	if !ok {
		return domain.E(domain.ErrUnauthenticated, "No token provided")
	}

	user, err := h.users.GetProfile(c.Request().Context(), subjectID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

type updateProfileRequest struct {
	Username  *string `json:"username"`
	Lastname  *string `json:"lastname"`
	Birthdate *string `json:"birthdate"`
}

// UpdateProfile merges the supplied profile fields into the caller's document.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	subjectID, ok := SubjectID(c)
	if !ok {
		return domain.E(domain.ErrUnauthenticated, "No token provided")
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return domain.E(domain.ErrInvalidInput, "The request body is invalid")
	}

	err := h.users.UpdateProfile(c.Request().Context(), subjectID, service.ProfileUpdate{
		Username:  req.Username,
		Lastname:  req.Lastname,
		Birthdate: req.Birthdate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Profile updated"})
}

type updateEmailRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
}

// UpdateEmail changes the caller's login email at the provider and mirrors
// it into the profile document.
func (h *UserHandler) UpdateEmail(c echo.Context) error {
	subjectID, ok := SubjectID(c)
	if !ok {
		return domain.E(domain.ErrUnauthenticated, "No token provided")
	}

	var req updateEmailRequest
	if err := c.Bind(&req); err != nil {
		return domain.E(domain.ErrInvalidInput, "The request body is invalid")
	}
	if err := c.Validate(req); err != nil {
		return domain.E(domain.ErrInvalidInput, "Invalid email")
	}

	if err := h.users.UpdateEmail(c.Request().Context(), subjectID, req.Email); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Email updated"})
}

// DeleteProfile removes the caller's document and provider account.
func (h *UserHandler) DeleteProfile(c echo.Context) error {
	subjectID, ok := SubjectID(c)
	if !ok {
		return domain.E(domain.ErrUnauthenticated, "No token provided")
	}

	if err := h.users.DeleteProfile(c.Request().Context(), subjectID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "User deleted"})
}
