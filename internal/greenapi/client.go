// Package greenapi is a minimal client for the WhatsApp gateway send API.
package greenapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultBaseURL   = "https://api.green-api.com"
	defaultUserAgent = "leadgate/0.1"

	// maxErrorBodyLen caps how much of an error response lands in logs.
	maxErrorBodyLen = 512
)

var tracer = otel.Tracer("leadgate.internal.greenapi")

// ErrNotConfigured is returned by SendMessage when instance credentials are
// missing. Raised at send time, not at construction, so a deployment without
// send credentials still ingests webhooks.
var ErrNotConfigured = errors.New("greenapi: instance id and api token not configured")

// Config controls how the client behaves.
type Config struct {
	BaseURL    string
	InstanceID string
	APIToken   string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	UserAgent  string
}

// Client sends messages through a gateway instance. Sends are never retried;
// a failure is logged by the caller and the event's processing stops there.
type Client struct {
	baseURL    string
	instanceID string
	apiToken   string
	httpClient *http.Client
	logger     *slog.Logger
	userAgent  string
}

// New creates a configured Client with sane defaults.
func New(cfg Config) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		baseURL:    baseURL,
		instanceID: strings.TrimSpace(cfg.InstanceID),
		apiToken:   strings.TrimSpace(cfg.APIToken),
		httpClient: httpClient,
		logger:     logger,
		userAgent:  userAgent,
	}
}

// SendResponse is the gateway's acknowledgment of a send.
type SendResponse struct {
	IDMessage string `json:"idMessage"`
}

// SendMessage posts a text message to a chat identifier.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) (*SendResponse, error) {
	if c.instanceID == "" || c.apiToken == "" {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(chatID) == "" {
		return nil, errors.New("greenapi: chat id required")
	}
	if text == "" {
		return nil, errors.New("greenapi: message text required")
	}

	ctx, span := tracer.Start(ctx, "greenapi.send_message")
	defer span.End()
	span.SetAttributes(attribute.String("chat_id", chatID))

	body, err := json.Marshal(struct {
		ChatID  string `json:"chatId"`
		Message string `json:"message"`
	}{ChatID: chatID, Message: text})
	if err != nil {
		return nil, fmt.Errorf("greenapi: marshal send body: %w", err)
	}

	url := fmt.Sprintf("%s/waInstance%s/sendMessage/%s", c.baseURL, c.instanceID, c.apiToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("greenapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("greenapi: http error: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("greenapi: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := strings.TrimSpace(string(data))
		if len(detail) > maxErrorBodyLen {
			detail = detail[:maxErrorBodyLen]
		}
		return nil, fmt.Errorf("greenapi: send failed with status %d: %s", resp.StatusCode, detail)
	}

	var out SendResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("greenapi: decode response: %w", err)
	}
	return &out, nil
}
