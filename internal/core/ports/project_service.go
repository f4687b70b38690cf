package ports

import (
	"context"

	"github.com/craftdesk/client-portal/internal/core/domain"
)

// ClientSummary is the owner identity joined into admin listings.
type ClientSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProjectView is a project composed with its files, invoice, and (for
// admin listings) the owning client's identity. JSON tags exist because
// views are cached serialized.
type ProjectView struct {
	Project *domain.Project `json:"project"`
	Client  *ClientSummary  `json:"client,omitempty"`
	Files   []*domain.File  `json:"files"`
	Invoice *domain.Invoice `json:"invoice,omitempty"`
}

// UpsertInvoiceInput carries the admin invoice upsert parameters.
// Status may be empty, in which case it defaults to draft.
type UpsertInvoiceInput struct {
	ProjectID string
	Amount    float64
	Status    string
}

// ProjectService defines use-case operations over projects and invoices.
// Every operation takes the requesting principal; ownership and role
// rules are enforced here, not in transport.
type ProjectService interface {
	Create(ctx context.Context, p domain.Principal, title, description string) (*domain.Project, error)

	// List returns the principal's visible set: clients their own
	// projects, admins everything joined with owner identity.
	List(ctx context.Context, p domain.Principal) ([]*ProjectView, error)

	UpdateStatus(ctx context.Context, p domain.Principal, projectID, status string) (*domain.Project, error)

	UpsertInvoice(ctx context.Context, p domain.Principal, in UpsertInvoiceInput) (*domain.Invoice, error)
}
