// Package firebase owns the process-wide Firebase app handle. The app and
// its derived clients are initialized exactly once and are safe for
// concurrent use; everything else in the codebase goes through the accessor
// functions and never re-initializes.
package firebase

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/firestore"
	fb "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var (
	once sync.Once

	initErr     error
	authClient  *auth.Client
	storeClient *firestore.Client
)

// Connect initializes the Firebase app, Auth client and Firestore client.
// The first call wins; later calls return the outcome of the first.
// credentialsFile may be empty, in which case application-default
// credentials are used.
func Connect(ctx context.Context, projectID, credentialsFile string) error {
	once.Do(func() {
		var opts []option.ClientOption
		if credentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(credentialsFile))
		}

		app, err := fb.NewApp(ctx, &fb.Config{ProjectID: projectID}, opts...)
		if err != nil {
			initErr = fmt.Errorf("initialize firebase app: %w", err)
			return
		}

		authClient, err = app.Auth(ctx)
		if err != nil {
			initErr = fmt.Errorf("initialize auth client: %w", err)
			return
		}

		storeClient, err = app.Firestore(ctx)
		if err != nil {
			initErr = fmt.Errorf("initialize firestore client: %w", err)
		}
	})
	return initErr
}

// Auth returns the shared Firebase Auth client. Connect must have succeeded.
func Auth() *auth.Client {
	return authClient
}

// Firestore returns the shared Firestore client. Connect must have succeeded.
func Firestore() *firestore.Client {
	return storeClient
}
