package usecase

import (
	"context"
	"io"
)

// Uploader is the object storage collaborator. Satisfied by the GCS client.
type Uploader interface {
	UploadFile(ctx context.Context, file io.Reader, fileType, folder string, isPublic bool) (string, error)
}

// Notifier delivers a fire-and-forget push message to a device token.
// Failures are logged by callers and never affect the triggering operation.
type Notifier interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// IdentityProvider exposes the identity details the engine needs beyond the
// verified uid. Satisfied by the Firebase auth client wrapper.
type IdentityProvider interface {
	GetEmail(ctx context.Context, uid string) (string, error)
}
