package handler

import (
	"time"

	"github.com/craftdesk/client-portal/internal/core/domain"
	"github.com/craftdesk/client-portal/internal/core/ports"
)

// --- Request types ---

type createProjectRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// upsertInvoiceRequest uses a pointer for amount so a missing field is
// distinguishable from a legitimate zero.
type upsertInvoiceRequest struct {
	Amount *float64 `json:"amount" validate:"required"`
	Status string   `json:"status"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type clientResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type fileResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ProjectID  string    `json:"project_id"`
	UploadedBy string    `json:"uploaded_by"`
	Type       string    `json:"type"`
	CreatedAt  time.Time `json:"created_at"`
}

type invoiceResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

type projectResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Status      string           `json:"status"`
	ClientID    string           `json:"client_id"`
	CreatedAt   time.Time        `json:"created_at"`
	Client      *clientResponse  `json:"client,omitempty"`
	Files       []fileResponse   `json:"files"`
	Invoice     *invoiceResponse `json:"invoice,omitempty"`
}

func toFileResponse(f *domain.File) fileResponse {
	return fileResponse{
		ID:         f.ID,
		Name:       f.Name,
		ProjectID:  f.ProjectID,
		UploadedBy: f.UploadedBy,
		Type:       string(f.Type),
		CreatedAt:  f.CreatedAt,
	}
}

func toInvoiceResponse(inv *domain.Invoice) *invoiceResponse {
	if inv == nil {
		return nil
	}
	return &invoiceResponse{
		ID:        inv.ID,
		ProjectID: inv.ProjectID,
		Amount:    inv.Amount,
		Status:    string(inv.Status),
		UpdatedAt: inv.UpdatedAt,
	}
}

func toProjectResponse(view *ports.ProjectView) projectResponse {
	resp := projectResponse{
		ID:          view.Project.ID,
		Title:       view.Project.Title,
		Description: view.Project.Description,
		Status:      string(view.Project.Status),
		ClientID:    view.Project.ClientID,
		CreatedAt:   view.Project.CreatedAt,
		Files:       make([]fileResponse, 0, len(view.Files)),
		Invoice:     toInvoiceResponse(view.Invoice),
	}
	if view.Client != nil {
		resp.Client = &clientResponse{Name: view.Client.Name, Email: view.Client.Email}
	}
	for _, f := range view.Files {
		resp.Files = append(resp.Files, toFileResponse(f))
	}
	return resp
}

func toProjectResponses(views []*ports.ProjectView) []projectResponse {
	out := make([]projectResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toProjectResponse(v))
	}
	return out
}
