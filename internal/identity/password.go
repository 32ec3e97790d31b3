package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultSignInURL = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// Session holds the tokens returned by a successful password grant.
type Session struct {
	IDToken      string
	RefreshToken string
}

// SignInError carries the provider's error code for a rejected password
// grant (for example INVALID_PASSWORD or EMAIL_NOT_FOUND).
type SignInError struct {
	Code string
}

func (e *SignInError) Error() string {
	return "sign-in rejected: " + e.Code
}

// PasswordClient exchanges email/password credentials for session tokens
// through the Identity Toolkit REST endpoint.
type PasswordClient struct {
	apiKey string

	// SignInURL may be overridden in tests.
	SignInURL string

	httpClient *http.Client
}

// NewPasswordClient creates a PasswordClient with the given web API key.
func NewPasswordClient(apiKey string) *PasswordClient {
	return &PasswordClient{
		apiKey:     apiKey,
		SignInURL:  defaultSignInURL,
		httpClient: http.DefaultClient,
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn performs the password grant. Provider rejections are returned as
// *SignInError; transport and decoding failures as plain errors.
func (c *PasswordClient) SignIn(ctx context.Context, email, password string) (Session, error) {
	body, err := json.Marshal(signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return Session{}, fmt.Errorf("encode sign-in request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.SignInURL+"?key="+c.apiKey, bytes.NewReader(body))
	if err != nil {
		return Session{}, fmt.Errorf("create sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("sign-in request: %w", err)
	}
	defer resp.Body.Close()

	var payload signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Session{}, fmt.Errorf("decode sign-in response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		code := "UNKNOWN"
		if payload.Error != nil && payload.Error.Message != "" {
			code = payload.Error.Message
		}
		return Session{}, &SignInError{Code: code}
	}

	return Session{
		IDToken:      payload.IDToken,
		RefreshToken: payload.RefreshToken,
	}, nil
}
