// Package h2ogpte is a minimal HTTP client for the h2oGPTe chat/agent API:
// chat session creation, agent completion requests, and session
// provisioning (keystore secrets, allowed tools).
package h2ogpte

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to one h2oGPTe deployment.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the deployment at baseURL (no trailing
// slash). The timeout bounds a single agent completion request, which can
// legitimately run for many minutes.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CompletionRequest carries one agent completion call.
type CompletionRequest struct {
	Message       string            `json:"message"`
	UseAgent      bool              `json:"use_agent"`
	AgentAccuracy string            `json:"agent_accuracy"`
	AgentMaxTurns int               `json:"agent_max_turns"`
	AgentTools    []string          `json:"agent_tools,omitempty"`
	Keystore      map[string]string `json:"keystore,omitempty"`
}

type completionResponse struct {
	Content string `json:"content"`
}

type sessionResponse struct {
	ID string `json:"id"`
}

// CreateChatSession opens a fresh chat session and returns its id.
func (c *Client) CreateChatSession(ctx context.Context) (string, error) {
	var out sessionResponse
	err := retryWithBackoff(ctx, func() error {
		return c.doJSON(ctx, http.MethodPost, "/api/v1/chat/sessions", nil, &out)
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat session: %w", err)
	}
	if out.ID == "" {
		return "", fmt.Errorf("chat session response carried no id")
	}
	return out.ID, nil
}

// AgentCompletion runs one agent completion in the session and returns the
// raw multi-turn transcript. Transient network and 5xx failures are retried
// with exponential backoff; the per-request timeout is the client's.
func (c *Client) AgentCompletion(ctx context.Context, sessionID string, req CompletionRequest) (string, error) {
	req.UseAgent = true

	var out completionResponse
	err := retryWithBackoff(ctx, func() error {
		path := fmt.Sprintf("/api/v1/chat/sessions/%s/completions", sessionID)
		return c.doJSON(ctx, http.MethodPost, path, req, &out)
	})
	if err != nil {
		return "", fmt.Errorf("agent completion failed: %w", err)
	}
	return out.Content, nil
}

// SessionURL is the human-facing chat page for a session, linked from the
// reply footer.
func (c *Client) SessionURL(sessionID string) string {
	return fmt.Sprintf("%s/chats/%s", c.baseURL, sessionID)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &apiError{status: resp.StatusCode, body: string(data)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
