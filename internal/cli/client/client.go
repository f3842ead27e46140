// Package client is the HTTP client godctl uses to talk to the relay.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"godchat/internal/domain"
)

// Client calls the relay's v1 API.
type Client struct {
	baseURL    string
	callerRole string
	httpClient *http.Client
}

// New creates a client for the relay at baseURL. callerRole is sent as the
// caller identity header on transcript reads.
func New(baseURL, callerRole string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		callerRole: callerRole,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// Chat sends one user message and returns the assistant reply.
func (c *Client) Chat(req domain.ChatRequest) (*domain.ChatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.baseURL+"/v1/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp.StatusCode, respBody)
	}

	var out domain.ChatResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &out, nil
}

// History fetches a session transcript, oldest-first.
func (c *Client) History(sessionID string, limit int) ([]domain.Turn, error) {
	url := fmt.Sprintf("%s/v1/sessions/%s/turns", c.baseURL, sessionID)
	if limit > 0 {
		url = fmt.Sprintf("%s?limit=%d", url, limit)
	}

	httpReq, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.callerRole != "" {
		httpReq.Header.Set("X-Caller-Role", c.callerRole)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp.StatusCode, respBody)
	}

	var out struct {
		Turns []domain.Turn `json:"turns"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return out.Turns, nil
}

func decodeError(status int, body []byte) error {
	var envelope struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		if envelope.Detail != "" {
			return fmt.Errorf("server error [%d] %s: %s", status, envelope.Error, envelope.Detail)
		}
		return fmt.Errorf("server error [%d] %s", status, envelope.Error)
	}
	return fmt.Errorf("server error [%d]: %s", status, string(body))
}
