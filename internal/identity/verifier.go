package identity

import (
	"context"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/meetline/api/internal/domain"
)

const bearerScheme = "Bearer "

// Verifier validates bearer credentials against Firebase Auth.
type Verifier struct {
	client *auth.Client
}

// NewVerifier creates a Verifier over the given Auth client.
func NewVerifier(client *auth.Client) *Verifier {
	return &Verifier{client: client}
}

// Verify takes the raw Authorization header value, strips the bearer scheme
// and introspects the token with the provider. It returns the stable subject
// UID on success. A missing header or wrong scheme and a provider rejection
// fail with distinct unauthenticated messages; token failures are terminal
// for the request, never retried.
func (v *Verifier) Verify(ctx context.Context, header string) (string, error) {
	if header == "" || !strings.HasPrefix(header, bearerScheme) {
		return "", domain.E(domain.ErrUnauthenticated, "No token provided")
	}

	token, err := v.client.VerifyIDToken(ctx, strings.TrimPrefix(header, bearerScheme))
	if err != nil {
		return "", domain.E(domain.ErrUnauthenticated, "Token invalid or expired")
	}

	return token.UID, nil
}
