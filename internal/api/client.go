// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api implements the HTTP client for the podcast-assistant backend.
// Every failure surfaces as an *Error carrying one of three kinds: transport,
// status, or decode. Callers treat all three the same way: report a generic
// retryable message and let the user repeat the action.
// See docs/ARCHITECTURE.md § Backend Client.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/esosa/podcast-assistant/internal/httputil"
	"github.com/esosa/podcast-assistant/pkg/types"
)

const (
	defaultTimeout   = 4 * time.Minute
	defaultUserAgent = "podcast-assistant/0.1"
)

// Kind classifies a backend call failure.
type Kind string

const (
	// KindTransport covers requests that never completed.
	KindTransport Kind = "transport"
	// KindStatus covers non-success HTTP responses.
	KindStatus Kind = "status"
	// KindDecode covers success responses with unusable bodies.
	KindDecode Kind = "decode"
)

// Error is the uniform failure type for backend calls.
type Error struct {
	Kind   Kind
	Op     string
	Status int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Detail != "" {
			return fmt.Sprintf("%s: backend returned HTTP %d: %s", e.Op, e.Status, e.Detail)
		}
		return fmt.Sprintf("%s: backend returned HTTP %d", e.Op, e.Status)
	case KindDecode:
		return fmt.Sprintf("%s: unexpected response shape: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage returns the generic user-facing text for any backend failure.
// By design no distinction is surfaced between transient and permanent
// failures; retry is always manual.
func (e *Error) UserMessage() string {
	return "The assistant could not complete that request. Please try again."
}

// Client talks to the podcast-assistant backend API.
type Client struct {
	baseURL    string
	http       *http.Client
	token      string
	userAgent  string
	maxRetries int
}

// New builds a Client from backend configuration, applying defaults for
// timeout and user agent.
func New(cfg types.BackendConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		http:       &http.Client{Timeout: timeout},
		token:      cfg.APIToken,
		userAgent:  ua,
		maxRetries: cfg.MaxRetries,
	}
}

// HealthStatus is the health endpoint's response.
type HealthStatus struct {
	Status         string `json:"status"`
	AssistantReady bool   `json:"assistant_ready"`
}

// Health checks backend availability. GET /api/health.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var hs HealthStatus
	err := c.doJSON(ctx, "health", http.MethodGet, "/api/health", nil, &hs)
	return hs, err
}

// Research runs a multi-platform research pass. POST /api/research. The call
// is long: the backend documents one to three minutes.
func (c *Client) Research(ctx context.Context, req types.ResearchRequest) (types.RawResearchResult, error) {
	var raw types.RawResearchResult
	err := c.doJSON(ctx, "research", http.MethodPost, "/api/research", req, &raw)
	return raw, err
}

// Episode generates outline and script content for a topic. POST /api/episode.
func (c *Client) Episode(ctx context.Context, req types.EpisodeRequest) (types.EpisodeContent, error) {
	var ec types.EpisodeContent
	err := c.doJSON(ctx, "episode", http.MethodPost, "/api/episode", req, &ec)
	return ec, err
}

// ChatReply is the chat endpoint's response. Error marks replies that the
// backend generated as apology text rather than assistant output.
type ChatReply struct {
	Response string `json:"response"`
	Error    bool   `json:"error"`
}

// Chat sends one message and returns the assistant's reply. POST /api/chat.
func (c *Client) Chat(ctx context.Context, message string) (ChatReply, error) {
	var reply ChatReply
	body := map[string]string{"message": message}
	err := c.doJSON(ctx, "chat", http.MethodPost, "/api/chat", body, &reply)
	return reply, err
}

// Settings fetches the full settings object. GET /api/config.
func (c *Client) Settings(ctx context.Context) (types.Settings, error) {
	var s types.Settings
	err := c.doJSON(ctx, "settings", http.MethodGet, "/api/config", nil, &s)
	return s, err
}

// UpdateSettings sends the full settings object back. POST /api/config.
func (c *Client) UpdateSettings(ctx context.Context, s types.Settings) error {
	return c.doJSON(ctx, "settings", http.MethodPost, "/api/config", s, nil)
}

// Report streams a generated report file served under the backend's static
// output prefix. The caller owns the returned body.
func (c *Client) Report(ctx context.Context, filename string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/output/"+filename, nil)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: "report", Err: err}
	}
	c.setHeaders(req)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.maxRetries)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: "report", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &Error{Kind: KindStatus, Op: "report", Status: resp.StatusCode}
	}
	return resp.Body, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// doJSON performs one JSON round trip. A nil out discards the response body.
func (c *Client) doJSON(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindTransport, Op: op, Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setHeaders(req)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.maxRetries)
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Kind: KindStatus, Op: op, Status: resp.StatusCode, Detail: errorDetail(resp.Body)}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindDecode, Op: op, Err: err}
	}
	return nil
}

// errorDetail extracts the backend's {"detail": "..."} error string when the
// body parses, or returns a trimmed excerpt of the raw body otherwise.
func errorDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(data))
}
