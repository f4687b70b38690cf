package service

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/craftdesk/client-portal/internal/api/metrics"
	"github.com/craftdesk/client-portal/internal/core/domain"
	"github.com/craftdesk/client-portal/internal/core/ports"
)

// ProjectCache abstracts the composed-view cache (Redis). A nil result
// with a nil error is a miss.
type ProjectCache interface {
	GetViews(ctx context.Context, key string) ([]*ports.ProjectView, error)
	SetViews(ctx context.Context, key string, views []*ports.ProjectView) error
	Invalidate(ctx context.Context, keys ...string) error
}

const adminCacheKey = "all"

func userCacheKey(userID string) string { return "user:" + userID }

type projectService struct {
	projects ports.ProjectRepository
	files    ports.FileRepository
	users    ports.AuthRepository
	cache    ProjectCache
	log      zerolog.Logger
}

// NewProjectService returns a ports.ProjectService implementation.
func NewProjectService(
	projects ports.ProjectRepository,
	files ports.FileRepository,
	users ports.AuthRepository,
	cache ProjectCache,
	log zerolog.Logger,
) ports.ProjectService {
	return &projectService{
		projects: projects,
		files:    files,
		users:    users,
		cache:    cache,
		log:      log,
	}
}

// Create stores a new project owned by the caller. The owner is always
// the creator; there is no override.
func (s *projectService) Create(ctx context.Context, p domain.Principal, title, description string) (*domain.Project, error) {
	if title == "" {
		return nil, domain.ErrTitleRequired
	}

	project, err := s.projects.Create(ctx, &domain.Project{
		Title:       title,
		Description: description,
		Status:      domain.StatusPending,
		ClientID:    p.UserID,
	})
	if err != nil {
		s.log.Error().Err(err).Str("client_id", p.UserID).Msg("failed to create project")
		return nil, err
	}

	s.invalidate(ctx, p.UserID)
	s.log.Info().Str("project_id", project.ID).Str("client_id", p.UserID).Msg("project created")
	return project, nil
}

// List returns the principal's visible projects composed with files,
// invoice, and (for admins) owner identity.
func (s *projectService) List(ctx context.Context, p domain.Principal) ([]*ports.ProjectView, error) {
	key := userCacheKey(p.UserID)
	ownerFilter := p.UserID
	if p.IsAdmin() {
		key = adminCacheKey
		ownerFilter = ""
	}

	if views, err := s.cache.GetViews(ctx, key); err != nil {
		s.log.Warn().Err(err).Msg("project cache read failed, falling back to store")
	} else if views != nil {
		metrics.ProjectCacheTotal.WithLabelValues("hit").Inc()
		return views, nil
	}
	metrics.ProjectCacheTotal.WithLabelValues("miss").Inc()

	projects, err := s.projects.List(ctx, ownerFilter)
	if err != nil {
		return nil, err
	}

	views := make([]*ports.ProjectView, 0, len(projects))
	for _, project := range projects {
		view := &ports.ProjectView{Project: project}

		if view.Files, err = s.files.ListByProject(ctx, project.ID); err != nil {
			return nil, err
		}
		if view.Invoice, err = s.projects.FindInvoiceByProject(ctx, project.ID); err != nil {
			return nil, err
		}
		if p.IsAdmin() {
			owner, err := s.users.FindByID(ctx, project.ClientID)
			if err != nil {
				s.log.Warn().Err(err).Str("project_id", project.ID).Msg("project owner lookup failed")
			} else {
				view.Client = &ports.ClientSummary{Name: owner.Name, Email: owner.Email}
			}
		}
		views = append(views, view)
	}

	if err := s.cache.SetViews(ctx, key, views); err != nil {
		s.log.Warn().Err(err).Msg("project cache write failed")
	}
	return views, nil
}

// UpdateStatus sets a project's status. Admin only; unknown statuses are
// rejected outright.
func (s *projectService) UpdateStatus(ctx context.Context, p domain.Principal, projectID, status string) (*domain.Project, error) {
	if !domain.CanWriteStatus(p) {
		metrics.AccessDeniedTotal.WithLabelValues("project").Inc()
		return nil, domain.ErrForbidden
	}

	next := domain.ProjectStatus(status)
	if !next.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	project, err := s.projects.UpdateStatus(ctx, projectID, next)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, project.ClientID)
	s.log.Info().Str("project_id", projectID).Str("status", status).Msg("project status updated")
	return project, nil
}

// UpsertInvoice creates or replaces the project's single invoice. Admin
// only. An absent status defaults to draft; a present but unknown status
// is rejected, the same policy as project status updates.
func (s *projectService) UpsertInvoice(ctx context.Context, p domain.Principal, in ports.UpsertInvoiceInput) (*domain.Invoice, error) {
	if !domain.CanManageInvoices(p) {
		metrics.AccessDeniedTotal.WithLabelValues("invoice").Inc()
		return nil, domain.ErrForbidden
	}

	if math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) || in.Amount < 0 {
		return nil, domain.ErrInvalidAmount
	}

	status := domain.InvoiceStatus(in.Status)
	if in.Status == "" {
		status = domain.InvoiceDraft
	} else if !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	// Existence check first so an unknown project is a 404, not a
	// silently created dangling invoice.
	project, err := s.projects.FindByID(ctx, in.ProjectID, "")
	if err != nil {
		return nil, err
	}

	invoice, err := s.projects.UpsertInvoice(ctx, in.ProjectID, in.Amount, status)
	if err != nil {
		s.log.Error().Err(err).Str("project_id", in.ProjectID).Msg("invoice upsert failed")
		return nil, err
	}

	s.invalidate(ctx, project.ClientID)
	s.log.Info().
		Str("project_id", in.ProjectID).
		Float64("amount", in.Amount).
		Str("status", string(status)).
		Msg("invoice upserted")
	return invoice, nil
}

// invalidate drops the owner's cached view and the admin view. Cache
// errors are logged, never surfaced.
func (s *projectService) invalidate(ctx context.Context, clientID string) {
	if err := s.cache.Invalidate(ctx, adminCacheKey, userCacheKey(clientID)); err != nil {
		s.log.Warn().Err(err).Msg("project cache invalidation failed")
	}
}
