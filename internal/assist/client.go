// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package assist provides the HTTP client behind the llm command: quick
// one-shot queries against an OpenAI-compatible chat-completions endpoint.
package assist

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultBaseURL is the chat-completions endpoint root.
	DefaultBaseURL = "https://ai.minoa.cat"

	// DefaultModel is the model every query is sent to.
	DefaultModel = "groq/llama-3.3-70b-versatile"

	// DefaultTimeout bounds a single query round trip.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxRetries is the retry budget for transient failures.
	DefaultMaxRetries = 3

	// retryBaseDelay seeds the exponential backoff.
	retryBaseDelay = 500 * time.Millisecond

	// retryMaxDelay caps the exponential backoff.
	retryMaxDelay = 10 * time.Second

	// maxResponseSize caps the response body read.
	maxResponseSize = 10 * 1024 * 1024
)

// systemPrompt pins the assistant's terminal persona.
const systemPrompt = "You are a command-line assistant who lives in a terminal. " +
	"You do not have message persistence and should respond in such way, do not ask " +
	"any questions and you will not remember them. You should be humourous and not " +
	"take yourself too seriously."

// sharedHTTPClient pools connections across queries.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	Timeout: DefaultTimeout,
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// ChatMessage is one message in the completions request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the completions request body.
type ChatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []ChatMessage `json:"messages"`
}

// ChatResponse is the subset of the completions response cmdly reads.
type ChatResponse struct {
	Choices []struct {
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// Content returns the first choice's message content.
func (r *ChatResponse) Content() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// APIError is a non-2xx response from the endpoint.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("assist API error: status %d: %s", e.StatusCode, e.Body)
}

// retryable reports whether a response status is worth retrying.
func retryable(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

// =============================================================================
// CLIENT
// =============================================================================

// Client issues one-shot assistant queries. The rate limiter keeps a chained
// line like `llm a && llm b && llm c` polite toward the shared endpoint.
type Client struct {
	baseURL    string
	model      string
	authToken  string
	httpClient *http.Client
	maxRetries int
	limiter    *rate.Limiter
}

// NewClient returns a client against the default endpoint.
func NewClient() *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		authToken:  "Cmdly",
		httpClient: sharedHTTPClient,
		maxRetries: DefaultMaxRetries,
		limiter:    rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

// WithBaseURL overrides the endpoint root. Used by tests.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = url
	return c
}

// WithHTTPClient overrides the HTTP client. Used by tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// WithMaxRetries overrides the retry budget.
func (c *Client) WithMaxRetries(n int) *Client {
	c.maxRetries = n
	return c
}

// Model returns the model identifier queries are sent to.
func (c *Client) Model() string { return c.model }

// Query sends one prompt and returns the assistant's reply text.
func (c *Client) Query(ctx context.Context, prompt string, temperature float64) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	reqBody := ChatRequest{
		Model:       c.model,
		Temperature: temperature,
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	body, err := c.doWithRetry(ctx, payload)
	if err != nil {
		return "", err
	}

	var parsed ChatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("unexpected response format: %w", err)
	}
	if parsed.Content() == "" {
		return "", errors.New("unexpected response format: no choices")
	}
	return parsed.Content(), nil
}

// doWithRetry posts the payload, retrying transient failures with
// exponential backoff.
func (c *Client) doWithRetry(ctx context.Context, payload []byte) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff(attempt)):
			}
		}

		body, err := c.doOnce(ctx, payload)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var apiErr *APIError
		if errors.As(err, &apiErr) && !retryable(apiErr.StatusCode) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("request failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *Client) doOnce(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// backoff returns the delay before the given retry attempt.
func backoff(attempt int) time.Duration {
	delay := retryBaseDelay << (attempt - 1)
	if delay > retryMaxDelay {
		return retryMaxDelay
	}
	return delay
}
