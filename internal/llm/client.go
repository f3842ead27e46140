// Package llm is the completion gateway: one request to an OpenAI-compatible
// chat-completions endpoint produces exactly one reply turn or one classified
// error. No retries, no caching, no streaming: the boundary is too expensive
// to blind-retry, so retry policy stays with the caller.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"godchat/internal/domain"
)

// Client is the completion endpoint client.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	httpClient  *http.Client
}

// NewClient creates a client for an OpenAI-compatible endpoint.
func NewClient(baseURL, apiKey, model string, temperature float64, timeout time.Duration) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// chatCompletionRequest is the wire request for /v1/chat/completions.
type chatCompletionRequest struct {
	Model       string         `json:"model"`
	Messages    []domain.Entry `json:"messages"`
	Temperature float64        `json:"temperature"`
}

// chatCompletionResponse is the wire response.
type chatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []choice `json:"choices"`
	Usage   *usage   `json:"usage,omitempty"`
}

type choice struct {
	Index        int           `json:"index"`
	Message      *domain.Entry `json:"message,omitempty"`
	FinishReason string        `json:"finish_reason,omitempty"`
}

type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// errorResponse is the provider's error envelope.
type errorResponse struct {
	Error *apiError `json:"error"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
}

// Complete sends the assembled prompt and returns the assistant reply.
// Outcomes are classified into the domain taxonomy:
//
//	transport failure            -> ErrGatewayUnavailable
//	non-2xx status               -> ErrUpstream{status, upstream message}
//	2xx with no usable content   -> ErrEmptyCompletion
func (c *Client) Complete(ctx context.Context, prompt []domain.Entry) (domain.Entry, error) {
	var empty domain.Entry

	body, err := json.Marshal(chatCompletionRequest{
		Model:       c.model,
		Messages:    prompt,
		Temperature: c.temperature,
	})
	if err != nil {
		return empty, domain.NewError(domain.ErrGatewayUnavailable, err, "failed to marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return empty, domain.NewError(domain.ErrGatewayUnavailable, err, "failed to create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return empty, domain.NewError(domain.ErrGatewayUnavailable, err, "completion endpoint unreachable")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return empty, domain.NewError(domain.ErrGatewayUnavailable, err, "failed to read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != nil {
			return empty, domain.NewUpstreamError(resp.StatusCode, errResp.Error.Message)
		}
		return empty, domain.NewUpstreamError(resp.StatusCode, string(respBody))
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return empty, domain.NewError(domain.ErrEmptyCompletion, err, "failed to unmarshal response")
	}

	reply := extractReply(&result)
	if reply == "" {
		return empty, domain.NewError(domain.ErrEmptyCompletion, nil, "completion carried no reply content")
	}

	return domain.Entry{Role: domain.RoleAssistant, Content: reply}, nil
}

// extractReply pulls the trimmed assistant content from the first choice.
func extractReply(resp *chatCompletionResponse) string {
	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
		return ""
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}
