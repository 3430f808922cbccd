// Package mercadopago is a minimal client for the Mercado Pago Checkout Pro
// API: it creates checkout preferences and looks up payments referenced by
// webhook notifications.
package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"muro/internal/config"
	"muro/internal/observability"
)

// ErrNoCredentials is returned when no access token is configured.
var ErrNoCredentials = errors.New("mercadopago: access token not configured")

// GatewayError is a non-2xx response from the Mercado Pago API. Status and
// Body carry the upstream response so handlers can forward it to the client.
type GatewayError struct {
	Operation string
	Status    int
	Body      []byte
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("mercadopago: %s returned status %d", e.Operation, e.Status)
}

// PreferenceItem is a purchasable line item in a checkout preference.
type PreferenceItem struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id"`
}

// PreferenceRequest is the body sent to POST /checkout/preferences.
type PreferenceRequest struct {
	Items           []PreferenceItem  `json:"items"`
	Metadata        map[string]any    `json:"metadata,omitempty"`
	BackURLs        map[string]string `json:"back_urls,omitempty"`
	AutoReturn      string            `json:"auto_return,omitempty"`
	NotificationURL string            `json:"notification_url,omitempty"`
}

// Preference is the subset of the created preference the API serves back to
// browsers: the id and the checkout redirect URLs.
type Preference struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

// PaymentMetadata carries the application metadata attached at preference
// creation time. Mercado Pago echoes it back on the payment resource.
type PaymentMetadata struct {
	GraffitiID json.Number `json:"graffiti_id"`
}

// Payment is the subset of GET /v1/payments/:id the webhook flow needs.
type Payment struct {
	ID       int64           `json:"id"`
	Status   string          `json:"status"`
	Metadata PaymentMetadata `json:"metadata"`
}

// Client talks to the Mercado Pago REST API.
type Client struct {
	baseURL         string
	accessToken     string
	notificationURL string
	backURL         string
	httpClient      *http.Client
}

// NewClient builds a client from application configuration. The client is
// usable with an empty token; calls will then fail with ErrNoCredentials so
// the condition surfaces per-request rather than at startup.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:         cfg.MPBaseURL,
		accessToken:     cfg.MPAccessToken,
		notificationURL: cfg.WebhookURL,
		backURL:         strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:      &http.Client{Timeout: 15 * time.Second},
	}
}

// HasCredentials reports whether an access token is configured.
func (c *Client) HasCredentials() bool {
	return c.accessToken != ""
}

// CreatePreference creates a checkout preference for a single graffiti. The
// returned raw body is the gateway's full JSON response.
func (c *Client) CreatePreference(ctx context.Context, title string, amount float64, graffitiID uint) (*Preference, []byte, error) {
	if !c.HasCredentials() {
		return nil, nil, ErrNoCredentials
	}

	reqBody := PreferenceRequest{
		Items: []PreferenceItem{{
			Title:      title,
			Quantity:   1,
			UnitPrice:  amount,
			CurrencyID: "ARS",
		}},
		Metadata: map[string]any{"graffiti_id": graffitiID},
		// Distinct return paths so the frontend can tell checkout outcomes apart.
		BackURLs: map[string]string{
			"success": c.backURL + "/success",
			"failure": c.backURL + "/failure",
			"pending": c.backURL + "/pending",
		},
		AutoReturn:      "approved",
		NotificationURL: c.notificationURL,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout/preferences", bytes.NewReader(payload))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	body, err := c.do(req, "create_preference")
	if err != nil {
		return nil, nil, err
	}

	var pref Preference
	if err := json.Unmarshal(body, &pref); err != nil {
		return nil, nil, fmt.Errorf("mercadopago: decoding preference: %w", err)
	}
	return &pref, body, nil
}

// GetPayment fetches a payment by the id referenced in a webhook notification.
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	if !c.HasCredentials() {
		return nil, ErrNoCredentials
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/payments/"+paymentID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	body, err := c.do(req, "get_payment")
	if err != nil {
		return nil, err
	}

	var payment Payment
	if err := json.Unmarshal(body, &payment); err != nil {
		return nil, fmt.Errorf("mercadopago: decoding payment: %w", err)
	}
	return &payment, nil
}

func (c *Client) do(req *http.Request, operation string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.GatewayRequests.WithLabelValues(operation, "transport_error").Inc()
		return nil, fmt.Errorf("mercadopago: %s: %w", operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		observability.GatewayRequests.WithLabelValues(operation, "transport_error").Inc()
		return nil, fmt.Errorf("mercadopago: %s: reading response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		observability.GatewayRequests.WithLabelValues(operation, "gateway_error").Inc()
		return nil, &GatewayError{Operation: operation, Status: resp.StatusCode, Body: body}
	}

	observability.GatewayRequests.WithLabelValues(operation, "ok").Inc()
	return body, nil
}
