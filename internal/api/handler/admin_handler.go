package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftdesk/client-portal/internal/core/domain"
	"github.com/craftdesk/client-portal/internal/core/ports"
)

// AdminHandler serves the admin project and invoice routes. The routes
// sit behind the admin RBAC middleware; the service layer re-checks the
// role through the access evaluator regardless.
type AdminHandler struct {
	service ports.ProjectService
}

func NewAdminHandler(service ports.ProjectService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListProjects handles GET /admin/projects.
//
// @Summary      List all projects with client identity, files, invoice
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   projectResponse
// @Failure      403  {object}  map[string]string
// @Router       /admin/projects [get]
func (h *AdminHandler) ListProjects(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	views, err := h.service.List(c.Request().Context(), principal)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProjectResponses(views))
}

// UpdateStatus handles PUT /admin/projects/:id.
//
// @Summary      Update a project's status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Project id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  projectResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /admin/projects/{id} [put]
func (h *AdminHandler) UpdateStatus(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	project, err := h.service.UpdateStatus(c.Request().Context(), principal, c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, domain.ErrProjectNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
		return err
	}

	return c.JSON(http.StatusOK, project)
}

// UpsertInvoice handles PUT /admin/projects/:id/invoice.
//
// @Summary      Create or update the project's invoice
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project id"
// @Param        body  body      upsertInvoiceRequest  true  "Invoice amount and status"
// @Success      200   {object}  invoiceResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /admin/projects/{id}/invoice [put]
func (h *AdminHandler) UpsertInvoice(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req upsertInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if req.Amount == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": domain.ErrInvalidAmount.Error()})
	}

	invoice, err := h.service.UpsertInvoice(c.Request().Context(), principal, ports.UpsertInvoiceInput{
		ProjectID: c.Param("id"),
		Amount:    *req.Amount,
		Status:    req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidStatus):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, domain.ErrProjectNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
		return err
	}

	return c.JSON(http.StatusOK, invoice)
}
