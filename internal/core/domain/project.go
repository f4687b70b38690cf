package domain

import (
	"errors"
	"time"
)

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	StatusPending    ProjectStatus = "pending"
	StatusInProgress ProjectStatus = "in_progress"
	StatusCompleted  ProjectStatus = "completed"
)

// IsValid reports whether s is one of the enumerated project statuses.
func (s ProjectStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// InvoiceStatus represents the billing state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "draft"
	InvoiceSent  InvoiceStatus = "sent"
	InvoicePaid  InvoiceStatus = "paid"
)

// IsValid reports whether s is one of the enumerated invoice statuses.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid:
		return true
	}
	return false
}

var ErrProjectNotFound = errors.New("project not found")
var ErrTitleRequired = errors.New("title is required")
var ErrInvalidStatus = errors.New("invalid status")
var ErrInvalidAmount = errors.New("invalid amount")
var ErrForbidden = errors.New("forbidden")

// Project is owned by exactly one client; admins have override access.
// Status is mutated only by admins.
type Project struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	ClientID    string        `json:"client_id"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Invoice bills a project. At most one invoice exists per project,
// enforced by a unique index on ProjectID.
type Invoice struct {
	ID        string        `json:"id"`
	ProjectID string        `json:"project_id"`
	Amount    float64       `json:"amount"`
	Status    InvoiceStatus `json:"status"`
	UpdatedAt time.Time     `json:"updated_at"`
}
