package ports

import (
	"context"

	"github.com/craftdesk/client-portal/internal/core/domain"
)

// ProjectRepository defines persistence operations for projects and
// their invoices.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)

	// FindByID retrieves a project by id. When clientID is non-empty the
	// query is additionally scoped to that owner, so a non-owned project
	// is indistinguishable from a missing one (existence hiding).
	FindByID(ctx context.Context, id, clientID string) (*domain.Project, error)

	// List returns projects newest first. Empty clientID means no owner
	// filter (admin view).
	List(ctx context.Context, clientID string) ([]*domain.Project, error)

	// UpdateStatus sets the status and returns the updated project, or
	// ErrProjectNotFound when id matches nothing.
	UpdateStatus(ctx context.Context, id string, status domain.ProjectStatus) (*domain.Project, error)

	// UpsertInvoice creates or replaces the single invoice of a project
	// using the store's native upsert, never check-then-write.
	UpsertInvoice(ctx context.Context, projectID string, amount float64, status domain.InvoiceStatus) (*domain.Invoice, error)

	// FindInvoiceByProject returns (nil, nil) when the project has no
	// invoice yet.
	FindInvoiceByProject(ctx context.Context, projectID string) (*domain.Invoice, error)
}
