// Package payments is a minimal client for a hosted-checkout payment
// provider (the Stripe Checkout Sessions API). The storefront only
// needs one call: create a session for a set of line items and get a
// redirect URL back. Every failure is returned as an error so the
// caller's fallback path is an explicit branch.
package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.stripe.com"
	defaultTimeout = 10 * time.Second
)

// LineItem is one purchasable line: display name, unit amount in minor
// currency units, and quantity.
type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int
}

// CreateSessionParams carries everything needed for one hosted session.
type CreateSessionParams struct {
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// Session is the provider's answer: where to send the customer.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Provider creates hosted payment sessions. A nil provider means the
// payment feature is disabled, not broken.
type Provider interface {
	CreateSession(ctx context.Context, params CreateSessionParams) (*Session, error)
}

// Config holds provider connection details.
type Config struct {
	SecretKey string
	Currency  string
	// BaseURL overrides the provider endpoint, used by tests.
	BaseURL string
	Timeout time.Duration
}

// Client talks to the provider over HTTPS with an upper-bounded
// request time; a timeout surfaces as an ordinary error.
type Client struct {
	secretKey  string
	currency   string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new payments client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	currency := cfg.Currency
	if currency == "" {
		currency = "inr"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		secretKey:  cfg.SecretKey,
		currency:   currency,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CreateSession creates a hosted checkout session and returns its
// redirect target.
func (c *Client) CreateSession(ctx context.Context, params CreateSessionParams) (*Session, error) {
	if len(params.LineItems) == 0 {
		return nil, fmt.Errorf("payment session requires at least one line item")
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	for i, item := range params.LineItems {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[quantity]", strconv.Itoa(item.Quantity))
		form.Set(prefix+"[price_data][currency]", c.currency)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
	}
	for key, value := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", key), value)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build payment session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.secretKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment session request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("payment provider returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode payment session response: %w", err)
	}
	if session.URL == "" {
		return nil, fmt.Errorf("payment provider returned a session without a redirect URL")
	}
	return &session, nil
}
