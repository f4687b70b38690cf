package ports

import (
	"context"

	"github.com/craftdesk/client-portal/internal/core/domain"
)

// FileRepository defines persistence operations for file records.
// Records are insert-only.
type FileRepository interface {
	Create(ctx context.Context, f *domain.File) (*domain.File, error)
	FindByID(ctx context.Context, id string) (*domain.File, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.File, error)

	// ListPaths returns every storage path referenced by a file record.
	// Used by the orphan sweep to decide which blobs are still live.
	ListPaths(ctx context.Context) (map[string]struct{}, error)
}
