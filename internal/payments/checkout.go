package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client creates hosted checkout sessions at the billing provider
// over its form-encoded HTTP API.
type Client struct {
	apiKey     string
	successURL string
	cancelURL  string
	priceID    string
	httpClient *http.Client
}

func NewClient(apiKey, priceID, successURL, cancelURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:     apiKey,
		successURL: successURL,
		cancelURL:  cancelURL,
		priceID:    priceID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type sessionResponse struct {
	URL   string `json:"url"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateSession opens a checkout session for the user. The user ID
// travels as client_reference_id so the webhook can map the payment
// back to the account.
func (c *Client) CreateSession(ctx context.Context, userID uuid.UUID, email string) (string, error) {
	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("client_reference_id", userID.String())
	form.Set("customer_email", email)
	form.Set("success_url", c.successURL)
	form.Set("cancel_url", c.cancelURL)
	form.Set("line_items[0][price]", c.priceID)
	form.Set("line_items[0][quantity]", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://api.stripe.com/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("checkout session request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var session sessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return "", fmt.Errorf("checkout response decode failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("checkout session failed with status %d: %s", resp.StatusCode, session.Error.Message)
	}
	return session.URL, nil
}
