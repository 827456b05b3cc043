package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/velora/storefront/internal/domain/shared"
	"github.com/velora/storefront/internal/infrastructure/config"
)

// maxResponseSize caps reads from the commerce API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Client is the typed HTTP client for the upstream commerce API. Every
// screen-facing operation goes through it; nothing else talks to the
// upstream directly.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	adminToken string
}

// NewClient creates a commerce API client from configuration
func NewClient(cfg config.CommerceConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger:     logger.Named("commerce"),
		adminToken: cfg.AdminToken,
	}
}

// request is one upstream call. Token is the caller's bearer token,
// empty for public endpoints.
type request struct {
	method string
	path   string
	query  url.Values
	token  string
	body   any
}

// do executes a request and decodes the normalized payload into out.
// Pass a nil out to discard the payload.
func (c *Client) do(ctx context.Context, req request, out any) error {
	var bodyReader io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("commerce: encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("commerce: build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("upstream request failed",
			zap.String("method", req.method),
			zap.String("path", req.path),
			zap.Error(err),
		)
		return shared.ErrUpstream
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return shared.ErrUpstream
	}

	c.logger.Debug("upstream request",
		zap.String("method", req.method),
		zap.String("path", req.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return upstreamError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}

	payload, err := normalizePayload(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("commerce: decode response: %w", err)
	}
	return nil
}

// upstreamError maps a non-2xx response to a domain error, preferring
// the upstream's own message when one is present.
func upstreamError(status int, raw []byte) error {
	msg := extractMessage(raw)
	if msg == "" {
		msg = fmt.Sprintf("The commerce service returned HTTP %d", status)
	}

	switch status {
	case http.StatusNotFound:
		return shared.NewDomainError("NOT_FOUND", msg)
	case http.StatusUnauthorized, http.StatusForbidden:
		return shared.NewDomainError("UNAUTHORIZED", msg)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return shared.NewDomainError("INVALID_INPUT", msg)
	case http.StatusConflict:
		return shared.NewDomainError("CONFLICT", msg)
	default:
		return shared.NewDomainError("UPSTREAM_ERROR", msg)
	}
}

// extractMessage pulls a human-readable message out of an upstream
// error body, tolerating the shapes the API is known to emit.
func extractMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
