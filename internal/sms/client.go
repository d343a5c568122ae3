// Package sms implements the outbound client for the third-party SMS gateway
// used to confirm registrations. The wire shape follows the Arkesel v2 send
// API: a JSON POST carrying the sender identifier, message body, and recipient
// list, authenticated with an api-key header.
//
// The client makes exactly one delivery attempt per call and never lets a
// gateway failure escape its boundary: transport errors, non-2xx responses,
// and missing configuration all come back as a Result with Delivered=false and
// a captured reason. Retries, if ever wanted, belong to a policy layer above
// this package.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/event-registration/registration-backend/internal/config"
	"github.com/event-registration/registration-backend/internal/telemetry"
)

// Result is the outcome of a single send attempt.
type Result struct {
	// Delivered is true when the gateway accepted the message.
	Delivered bool
	// ProviderRef is the gateway's message identifier, when one was returned.
	ProviderRef string
	// ErrorReason is set when Delivered is false.
	ErrorReason string
}

// Client talks to the SMS gateway over HTTPS.
type Client struct {
	apiURL     string
	apiKey     string
	senderID   string
	httpClient *http.Client
}

// NewClient creates a gateway client from configuration. An empty API key
// produces a client whose Send always reports "not configured" — callers don't
// need to special-case disabled SMS.
func NewClient(cfg *config.SMSConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		apiURL:   cfg.APIURL,
		apiKey:   cfg.APIKey,
		senderID: cfg.SenderID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// sendRequest is the gateway's expected request body.
type sendRequest struct {
	Sender     string   `json:"sender"`
	Message    string   `json:"message"`
	Recipients []string `json:"recipients"`
}

// sendResponse captures the fields we care about from the gateway response.
// Unknown fields are ignored; the gateway's response schema is not under our
// control and has changed before.
type sendResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    []struct {
		Recipient string `json:"recipient"`
		ID        string `json:"id"`
	} `json:"data"`
}

// Send delivers message to destination (international format) in a single
// attempt, blocking until the gateway responds or the client times out.
func (c *Client) Send(ctx context.Context, destination, message string) Result {
	if c.apiKey == "" {
		telemetry.SMSSendTotal.WithLabelValues("skipped").Inc()
		return Result{Delivered: false, ErrorReason: "sms gateway not configured"}
	}

	body, err := json.Marshal(sendRequest{
		Sender:     c.senderID,
		Message:    message,
		Recipients: []string{destination},
	})
	if err != nil {
		return c.failure(fmt.Sprintf("failed to encode request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return c.failure(fmt.Sprintf("failed to build request: %v", err))
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.failure(fmt.Sprintf("sms gateway unreachable: %v", err))
	}
	defer resp.Body.Close()

	// Cap the response read; the gateway reply is a few hundred bytes.
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return c.failure(fmt.Sprintf("failed to read gateway response: %v", err))
	}

	var parsed sendResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		parsed = sendResponse{}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reason := parsed.Message
		if reason == "" {
			reason = fmt.Sprintf("gateway returned HTTP %d", resp.StatusCode)
		}
		return c.failure(reason)
	}

	telemetry.SMSSendTotal.WithLabelValues("delivered").Inc()

	result := Result{Delivered: true}
	if len(parsed.Data) > 0 {
		result.ProviderRef = parsed.Data[0].ID
	}
	return result
}

func (c *Client) failure(reason string) Result {
	telemetry.SMSSendTotal.WithLabelValues("failed").Inc()
	slog.Warn("sms send failed", "reason", reason)
	return Result{Delivered: false, ErrorReason: reason}
}
