package checkout

import (
	"encoding/json"
	"fmt"

	"github.com/MatiasOrellano/invitly-backend/internal/application"
)

// webhookEnvelope is the processor's wire shape for lifecycle events.
type webhookEnvelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		PreferenceID string                    `json:"preference_id"`
		Status       string                    `json:"status"`
		Metadata     application.EventMetadata `json:"metadata"`
	} `json:"data"`
}

// ParseWebhookEvent decodes a verified webhook body. The raw body is kept
// on the event for the audit column.
func ParseWebhookEvent(body []byte) (*application.CheckoutEvent, error) {
	var env webhookEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode webhook event: %w", err)
	}
	if env.ID == "" || env.Type == "" {
		return nil, fmt.Errorf("webhook event missing id or type")
	}

	raw := make(json.RawMessage, len(body))
	copy(raw, body)

	return &application.CheckoutEvent{
		ID:           env.ID,
		Type:         env.Type,
		PreferenceID: env.Data.PreferenceID,
		Status:       env.Data.Status,
		Metadata:     env.Data.Metadata,
		Raw:          raw,
	}, nil
}
