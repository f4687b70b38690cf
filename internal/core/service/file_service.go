package service

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/craftdesk/client-portal/internal/api/metrics"
	"github.com/craftdesk/client-portal/internal/core/domain"
	"github.com/craftdesk/client-portal/internal/core/ports"
)

type fileService struct {
	files    ports.FileRepository
	projects ports.ProjectRepository
	blobs    ports.BlobStore
	cache    ProjectCache
	log      zerolog.Logger
}

// NewFileService returns the file storage manager. It owns filename
// sanitization, storage-name generation, and access control on both
// upload and retrieval.
func NewFileService(
	files ports.FileRepository,
	projects ports.ProjectRepository,
	blobs ports.BlobStore,
	cache ProjectCache,
	log zerolog.Logger,
) ports.FileService {
	return &fileService{
		files:    files,
		projects: projects,
		blobs:    blobs,
		cache:    cache,
		log:      log,
	}
}

// Upload validates, authorizes, writes the blob, then inserts the file
// record. The two steps are not transactional: a crash between them
// leaves an orphaned blob, which the reconciliation sweep removes later.
func (s *fileService) Upload(ctx context.Context, in ports.UploadInput) (*domain.File, error) {
	if in.FileName == "" || in.ProjectID == "" {
		return nil, domain.ErrFileRequired
	}

	fileType := domain.FileType(in.FileType)
	if in.FileType == "" {
		fileType = domain.FileTypeUpload
	} else if !fileType.IsValid() {
		return nil, domain.ErrInvalidFileType
	}

	if !domain.CanUploadType(in.Principal, fileType) {
		metrics.AccessDeniedTotal.WithLabelValues("file").Inc()
		return nil, domain.ErrForbidden
	}

	// Project lookup is owner-scoped for clients, so uploading into
	// someone else's project reports not-found rather than leaking that
	// the project exists.
	ownerScope := in.Principal.UserID
	if in.Principal.IsAdmin() {
		ownerScope = ""
	}
	project, err := s.projects.FindByID(ctx, in.ProjectID, ownerScope)
	if err != nil {
		return nil, err
	}

	storageName := NewStorageName(in.FileName)
	if err := s.blobs.Write(storageName, in.Data); err != nil {
		s.log.Error().Err(err).Str("storage_name", storageName).Msg("blob write failed")
		return nil, err
	}

	record, err := s.files.Create(ctx, &domain.File{
		Name:       in.FileName,
		Path:       storageName,
		ProjectID:  project.ID,
		UploadedBy: in.Principal.UserID,
		Type:       fileType,
	})
	if err != nil {
		s.log.Error().Err(err).Str("storage_name", storageName).Msg("file record insert failed, blob orphaned until next sweep")
		return nil, err
	}

	s.invalidateViews(ctx, project.ClientID)
	metrics.UploadsTotal.WithLabelValues(string(fileType)).Inc()
	metrics.UploadBytes.Observe(float64(len(in.Data)))
	s.log.Info().
		Str("file_id", record.ID).
		Str("project_id", project.ID).
		Str("type", string(fileType)).
		Int("size", len(in.Data)).
		Msg("file stored")
	return record, nil
}

// Download resolves the record, applies the ownership rule through the
// parent project, and reads the blob. A record whose blob is gone from
// disk reports ErrFileMissing, distinct from an unknown record id.
func (s *fileService) Download(ctx context.Context, p domain.Principal, fileID string) (*ports.FileContent, error) {
	record, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.FindByID(ctx, record.ProjectID, "")
	if err != nil {
		return nil, err
	}

	if !domain.CanAccessFile(p, project) {
		metrics.AccessDeniedTotal.WithLabelValues("file").Inc()
		return nil, domain.ErrForbidden
	}

	data, err := s.blobs.Read(record.Path)
	if err != nil {
		return nil, err
	}

	metrics.DownloadsTotal.Inc()
	return &ports.FileContent{Name: record.Name, Data: data}, nil
}

func (s *fileService) invalidateViews(ctx context.Context, clientID string) {
	if err := s.cache.Invalidate(ctx, adminCacheKey, userCacheKey(clientID)); err != nil {
		s.log.Warn().Err(err).Msg("project cache invalidation failed")
	}
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SanitizeFilename replaces every character outside [A-Za-z0-9._-] with
// an underscore. Path separators and traversal sequences cannot survive.
func SanitizeFilename(name string) string {
	s := unsafeFilenameChars.ReplaceAllString(name, "_")
	if s == "" {
		s = "file"
	}
	return s
}

// NewStorageName generates the on-disk name for an upload:
// {unixMillis}-{uuid}{ext}. The extension comes from the sanitized
// original name; the random component keeps names unguessable and
// collision-free.
func NewStorageName(originalName string) string {
	ext := filepath.Ext(SanitizeFilename(originalName))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
}
