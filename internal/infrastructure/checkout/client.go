// Package checkout integrates with the external hosted-checkout processor.
// The processor owns the payment UI and retries; this package only creates
// preferences (hosted sessions), reads them back, and understands the
// webhook wire format.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/MatiasOrellano/invitly-backend/internal/application"
	"github.com/MatiasOrellano/invitly-backend/internal/config"
)

type HTTPCheckoutClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewCheckoutClient(cfg config.CheckoutConfig) application.CheckoutClient {
	return &HTTPCheckoutClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

func (c *HTTPCheckoutClient) CreatePreference(ctx context.Context, req application.PreferenceRequest) (*application.Preference, error) {
	url := fmt.Sprintf("%s/v1/checkout/preferences", c.baseURL)
	return sendRequest[application.PreferenceRequest, application.Preference](c, ctx, http.MethodPost, url, &req)
}

func (c *HTTPCheckoutClient) GetPreference(ctx context.Context, preferenceID string) (*application.Preference, error) {
	url := fmt.Sprintf("%s/v1/checkout/preferences/%s", c.baseURL, preferenceID)
	return sendRequest[any, application.Preference](c, ctx, http.MethodGet, url, nil)
}

func sendRequest[Req any, Resp any](c *HTTPCheckoutClient, ctx context.Context, method, url string, reqBody *Req) (*Resp, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		var procErrResp ProcessorErrorResponse
		if err := json.Unmarshal(body, &procErrResp); err != nil {
			return nil, fmt.Errorf("processor returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, &ProcessorError{
			Code:       procErrResp.Err,
			Message:    procErrResp.Message,
			StatusCode: resp.StatusCode,
		}
	}

	var procResp Resp
	if err := json.NewDecoder(resp.Body).Decode(&procResp); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return &procResp, nil
}
