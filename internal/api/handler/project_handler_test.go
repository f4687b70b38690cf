package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/craftdesk/client-portal/internal/core/domain"
	"github.com/craftdesk/client-portal/internal/core/ports"
)

type stubProjectService struct {
	views      []*ports.ProjectView
	listErr    error
	created    *domain.Project
	createErr  error
	updated    *domain.Project
	updateErr  error
	invoice    *domain.Invoice
	invoiceErr error

	lastPrincipal domain.Principal
	lastStatus    string
	lastInvoice   ports.UpsertInvoiceInput
}

func (s *stubProjectService) Create(_ context.Context, p domain.Principal, title, description string) (*domain.Project, error) {
	s.lastPrincipal = p
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.created != nil {
		return s.created, nil
	}
	return &domain.Project{ID: "p1", Title: title, Description: description, ClientID: p.UserID, Status: domain.StatusPending}, nil
}

func (s *stubProjectService) List(_ context.Context, p domain.Principal) ([]*ports.ProjectView, error) {
	s.lastPrincipal = p
	return s.views, s.listErr
}

func (s *stubProjectService) UpdateStatus(_ context.Context, p domain.Principal, projectID, status string) (*domain.Project, error) {
	s.lastPrincipal = p
	s.lastStatus = status
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	if s.updated != nil {
		return s.updated, nil
	}
	return &domain.Project{ID: projectID, Status: domain.ProjectStatus(status)}, nil
}

func (s *stubProjectService) UpsertInvoice(_ context.Context, p domain.Principal, in ports.UpsertInvoiceInput) (*domain.Invoice, error) {
	s.lastPrincipal = p
	s.lastInvoice = in
	if s.invoiceErr != nil {
		return nil, s.invoiceErr
	}
	if s.invoice != nil {
		return s.invoice, nil
	}
	return &domain.Invoice{ID: "i1", ProjectID: in.ProjectID, Amount: in.Amount, Status: domain.InvoiceDraft}, nil
}

// newPrincipalContext builds an echo context carrying the claims the Auth
// middleware would have injected.
func newPrincipalContext(t *testing.T, method, path, body, userID, role string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set("user_id", userID)
		c.Set("role", role)
	}
	return c, rec
}

func TestProjectHandler_List(t *testing.T) {
	svc := &stubProjectService{views: []*ports.ProjectView{
		{
			Project: &domain.Project{ID: "p1", Title: "Site", ClientID: "u1", Status: domain.StatusPending},
			Files:   []*domain.File{{ID: "f1", Name: "brief.pdf", ProjectID: "p1", Type: domain.FileTypeUpload}},
			Invoice: &domain.Invoice{ID: "i1", ProjectID: "p1", Amount: 50, Status: domain.InvoiceSent},
		},
	}}
	h := NewProjectHandler(svc)
	c, rec := newPrincipalContext(t, http.MethodGet, "/projects", "", "u1", domain.RoleClient)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastPrincipal.UserID != "u1" || svc.lastPrincipal.Role != domain.RoleClient {
		t.Fatalf("principal not forwarded: %+v", svc.lastPrincipal)
	}

	var resp []projectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(resp) != 1 || resp[0].ID != "p1" || len(resp[0].Files) != 1 || resp[0].Invoice == nil {
		t.Fatalf("unexpected response: %s", rec.Body)
	}
}

func TestProjectHandler_List_EmptyIsArray(t *testing.T) {
	h := NewProjectHandler(&stubProjectService{})
	c, rec := newPrincipalContext(t, http.MethodGet, "/projects", "", "u1", domain.RoleClient)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("empty listing must serialize as [], got %s", got)
	}
}

func TestProjectHandler_List_MissingClaims(t *testing.T) {
	h := NewProjectHandler(&stubProjectService{})
	c, _ := newPrincipalContext(t, http.MethodGet, "/projects", "", "", "")

	err := h.List(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestProjectHandler_Create(t *testing.T) {
	svc := &stubProjectService{}
	h := NewProjectHandler(svc)
	c, rec := newPrincipalContext(t, http.MethodPost, "/projects",
		`{"title":"Site redesign","description":"New look"}`, "u1", domain.RoleClient)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.lastPrincipal.UserID != "u1" {
		t.Fatalf("principal not forwarded: %+v", svc.lastPrincipal)
	}
}

func TestProjectHandler_Create_MissingTitle(t *testing.T) {
	h := NewProjectHandler(&stubProjectService{createErr: domain.ErrTitleRequired})
	c, rec := newPrincipalContext(t, http.MethodPost, "/projects",
		`{"description":"no title"}`, "u1", domain.RoleClient)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
