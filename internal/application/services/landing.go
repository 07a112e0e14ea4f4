package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/MatiasOrellano/invitly-backend/internal/application"
	"github.com/MatiasOrellano/invitly-backend/internal/domain"
	"github.com/MatiasOrellano/invitly-backend/internal/templates"
)

// LandingService serves the public invitation pages. Reads go through the
// cache; cache failures degrade to the database, never to an error.
type LandingService struct {
	pages  application.LandingRepository
	cache  application.LandingCache
	logger *slog.Logger
}

func NewLandingService(pages application.LandingRepository, cache application.LandingCache, logger *slog.Logger) *LandingService {
	return &LandingService{pages: pages, cache: cache, logger: logger}
}

// GetBySlug returns a published landing page. Unpublished pages read as
// not found so draft content never leaks through the public route.
func (s *LandingService) GetBySlug(ctx context.Context, slug string) (*domain.LandingPage, error) {
	cached, err := s.cache.Get(ctx, slug)
	if err != nil {
		s.logger.Warn("landing cache read failed", "slug", slug, "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	page, err := s.pages.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, application.ErrPageNotFound) {
			return nil, application.NewNotFoundError(domain.NewPageNotFoundError(slug))
		}
		return nil, application.NewInternalError(err)
	}
	if !page.Published {
		return nil, application.NewNotFoundError(domain.NewPageNotFoundError(slug))
	}
	if _, err := templates.Lookup(page.TemplateID); err != nil {
		s.logger.Error("published page references unknown template",
			"slug", slug, "template_id", page.TemplateID)
		return nil, application.NewInternalError(err)
	}

	if err := s.cache.Set(ctx, page); err != nil {
		s.logger.Warn("landing cache write failed", "slug", slug, "error", err)
	}
	return page, nil
}

// ListTemplates returns the closed set of invitation templates.
func (s *LandingService) ListTemplates() []templates.Descriptor {
	return templates.All()
}
