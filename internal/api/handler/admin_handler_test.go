package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/craftdesk/client-portal/internal/core/domain"
)

func TestAdminHandler_UpdateStatus_Success(t *testing.T) {
	svc := &stubProjectService{}
	h := NewAdminHandler(svc)
	c, rec := newPrincipalContext(t, http.MethodPut, "/admin/projects/p1",
		`{"status":"in_progress"}`, "admin1", domain.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastStatus != "in_progress" {
		t.Fatalf("status not forwarded, got %q", svc.lastStatus)
	}
}

func TestAdminHandler_UpdateStatus_InvalidStatus(t *testing.T) {
	h := NewAdminHandler(&stubProjectService{updateErr: domain.ErrInvalidStatus})
	c, rec := newPrincipalContext(t, http.MethodPut, "/admin/projects/p1",
		`{"status":"archived"}`, "admin1", domain.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdminHandler_UpdateStatus_UnknownProject(t *testing.T) {
	h := NewAdminHandler(&stubProjectService{updateErr: domain.ErrProjectNotFound})
	c, rec := newPrincipalContext(t, http.MethodPut, "/admin/projects/missing",
		`{"status":"completed"}`, "admin1", domain.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAdminHandler_UpsertInvoice_Success(t *testing.T) {
	svc := &stubProjectService{}
	h := NewAdminHandler(svc)
	c, rec := newPrincipalContext(t, http.MethodPut, "/admin/projects/p1/invoice",
		`{"amount":150.5,"status":"sent"}`, "admin1", domain.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.UpsertInvoice(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastInvoice.ProjectID != "p1" || svc.lastInvoice.Amount != 150.5 || svc.lastInvoice.Status != "sent" {
		t.Fatalf("input not forwarded: %+v", svc.lastInvoice)
	}

	var resp domain.Invoice
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.ProjectID != "p1" {
		t.Fatalf("unexpected invoice: %s", rec.Body)
	}
}

func TestAdminHandler_UpsertInvoice_MissingAmount(t *testing.T) {
	h := NewAdminHandler(&stubProjectService{})
	c, rec := newPrincipalContext(t, http.MethodPut, "/admin/projects/p1/invoice",
		`{"status":"sent"}`, "admin1", domain.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.UpsertInvoice(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdminHandler_UpsertInvoice_ZeroAmountAllowed(t *testing.T) {
	svc := &stubProjectService{}
	h := NewAdminHandler(svc)
	c, rec := newPrincipalContext(t, http.MethodPut, "/admin/projects/p1/invoice",
		`{"amount":0}`, "admin1", domain.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.UpsertInvoice(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("explicit zero amount must pass the handler, got %d", rec.Code)
	}
	if svc.lastInvoice.Amount != 0 {
		t.Fatalf("expected zero amount forwarded, got %v", svc.lastInvoice.Amount)
	}
}

func TestAdminHandler_UpsertInvoice_InvalidAmount(t *testing.T) {
	h := NewAdminHandler(&stubProjectService{invoiceErr: domain.ErrInvalidAmount})
	c, rec := newPrincipalContext(t, http.MethodPut, "/admin/projects/p1/invoice",
		`{"amount":-5}`, "admin1", domain.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.UpsertInvoice(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdminHandler_UpsertInvoice_UnknownProject(t *testing.T) {
	h := NewAdminHandler(&stubProjectService{invoiceErr: domain.ErrProjectNotFound})
	c, rec := newPrincipalContext(t, http.MethodPut, "/admin/projects/missing/invoice",
		`{"amount":10}`, "admin1", domain.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.UpsertInvoice(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
