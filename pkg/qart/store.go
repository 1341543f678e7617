// Package qart publishes finished render outputs to S3-compatible storage.
package qart

import (
	"context"
	"io"
	"time"
)

// Artifact represents a stored artifact with metadata.
type Artifact struct {
	Key          string            `json:"key"`           // object key, e.g. "renders/shot010/render_00001.png"
	Bucket       string            `json:"bucket"`        // Bucket name
	Size         int64             `json:"size"`          // Size in bytes
	ContentType  string            `json:"content_type"`  // MIME type
	LastModified time.Time         `json:"last_modified"` // Last modification time
	Metadata     map[string]string `json:"metadata"`      // Custom metadata
	URL          string            `json:"url,omitempty"` // Presigned URL (when requested)
}

// Store defines the artifact storage operations publishing needs.
type Store interface {
	// Upload uploads size bytes from reader. size may be -1 when unknown.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string, metadata map[string]string) (*Artifact, error)

	// GetPresignedURL generates a presigned URL for downloading the artifact
	// uploaded under key.
	GetPresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// DeletePrefix removes all artifacts with the given prefix.
	DeletePrefix(ctx context.Context, prefix string) error

	// EnsureBucket ensures the bucket exists, creating it if necessary.
	EnsureBucket(ctx context.Context) error
}

// RenderPrefix returns the key prefix for a published render set. Stores
// place it under their own prefix, renders/ for S3Store.
func RenderPrefix(name string) string {
	return name + "/"
}

// RenderArtifactKey returns the full key for one published file.
func RenderArtifactKey(name, filename string) string {
	return RenderPrefix(name) + filename
}
