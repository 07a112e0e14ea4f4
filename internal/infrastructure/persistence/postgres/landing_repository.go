package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MatiasOrellano/invitly-backend/internal/application"
	"github.com/MatiasOrellano/invitly-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const landingColumns = `id, user_id, template_id, slug, published, content, updated_at`

type LandingRepository struct {
	db Executor
}

func NewLandingRepository(db *DB) *LandingRepository {
	return &LandingRepository{db: db.Pool}
}

func (r *LandingRepository) FindBySlug(ctx context.Context, slug string) (*domain.LandingPage, error) {
	query := `SELECT ` + landingColumns + ` FROM landing_pages WHERE slug = $1`

	row := r.db.QueryRow(ctx, query, slug)
	return scanPage(row)
}

func (r *LandingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.LandingPage, error) {
	query := `SELECT ` + landingColumns + ` FROM landing_pages WHERE user_id = $1`

	row := r.db.QueryRow(ctx, query, userID)
	return scanPage(row)
}

// Publish flips the owner's page live. It is unconditional and idempotent:
// re-publishing an already published page is a no-op success.
func (r *LandingRepository) Publish(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE landing_pages SET published = TRUE, updated_at = $1 WHERE user_id = $2`

	result, err := r.db.Exec(ctx, query, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to publish landing page: %w", err)
	}
	if result.RowsAffected() == 0 {
		return application.ErrPageNotFound
	}
	return nil
}

func scanPage(row pgx.Row) (*domain.LandingPage, error) {
	var m LandingPageModel
	err := row.Scan(&m.ID, &m.UserID, &m.TemplateID, &m.Slug, &m.Published, &m.Content, &m.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, application.ErrPageNotFound
		}
		return nil, fmt.Errorf("failed to scan landing page: %w", err)
	}
	return toDomainPage(m), nil
}
