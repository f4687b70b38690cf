package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/craftdesk/client-portal/internal/core/domain"
	"github.com/craftdesk/client-portal/internal/core/ports"
)

// FileHandler serves upload and download. Both routes require a bearer
// token; ownership is enforced by the file service.
type FileHandler struct {
	service ports.FileService
}

func NewFileHandler(service ports.FileService) *FileHandler {
	return &FileHandler{service: service}
}

type uploadResponse struct {
	File *domain.File `json:"file"`
}

// Upload handles POST /upload (multipart: file, projectId, type?).
//
// @Summary      Upload a file into a project
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file       formData  file    true   "File content"
// @Param        projectId  formData  string  true   "Target project id"
// @Param        type       formData  string  false  "upload (default) or download (admin only)"
// @Success      201  {object}  uploadResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /upload [post]
func (h *FileHandler) Upload(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	projectID := c.FormValue("projectId")
	if err != nil || projectID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": domain.ErrFileRequired.Error()})
	}

	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	// Read fully into memory; the BodyLimit middleware bounds the size.
	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}

	record, err := h.service.Upload(c.Request().Context(), ports.UploadInput{
		Principal: principal,
		ProjectID: projectID,
		FileName:  fh.Filename,
		FileType:  c.FormValue("type"),
		Data:      data,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFileRequired), errors.Is(err, domain.ErrInvalidFileType):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		case errors.Is(err, domain.ErrProjectNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusCreated, uploadResponse{File: record})
}

// Download handles GET /files/:id.
//
// @Summary      Download a file by id
// @Tags         files
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id  path  string  true  "File id"
// @Success      200  {file}    binary
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /files/{id} [get]
func (h *FileHandler) Download(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	content, err := h.service.Download(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		case errors.Is(err, domain.ErrFileNotFound), errors.Is(err, domain.ErrProjectNotFound), errors.Is(err, domain.ErrFileMissing):
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return err
	}

	// The display name goes in the disposition header; the content type
	// is always opaque binary, never inferred from the client's claim.
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, strings.ReplaceAll(content.Name, `"`, `_`)))
	return c.Blob(http.StatusOK, echo.MIMEOctetStream, content.Data)
}
