package ports

import (
	"context"

	"github.com/craftdesk/client-portal/internal/core/domain"
)

// BlobStore abstracts where file bytes live. Names are the generated
// storage names, never client-supplied paths.
type BlobStore interface {
	Write(name string, data []byte) error
	// Read returns domain.ErrFileMissing when the blob does not exist.
	Read(name string) ([]byte, error)
}

// UploadInput carries one multipart upload through the service.
type UploadInput struct {
	Principal domain.Principal
	ProjectID string
	// FileName is the original client filename, kept verbatim for display.
	FileName string
	// FileType is the raw "type" form value; empty means upload.
	FileType string
	Data     []byte
}

// FileContent is a retrieved blob plus its display name.
type FileContent struct {
	Name string
	Data []byte
}

// FileService is the file storage manager: it owns the mapping between
// logical file records and blobs, and applies access control on both
// directions.
type FileService interface {
	Upload(ctx context.Context, in UploadInput) (*domain.File, error)
	Download(ctx context.Context, p domain.Principal, fileID string) (*FileContent, error)
}
