package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// LandingPage is the invitation owner's public page. Content holds the
// template-specific sections (hero, countdown, gallery, wish list) as an
// opaque document; TemplateID selects one of the registered skins.
// Published flips to true when the publication payment is approved.
type LandingPage struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	TemplateID string
	Slug       string
	Published  bool
	Content    json.RawMessage
	UpdatedAt  time.Time
}
