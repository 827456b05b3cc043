package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"go.uber.org/zap"

	"github.com/velora/storefront/internal/domain/shared"
)

// UploadImage streams a product image to the upstream media endpoint
// and returns the stored image URL.
func (c *Client) UploadImage(ctx context.Context, token, filename string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("commerce: build upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("commerce: read upload content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("commerce: finalize upload form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload/image", &buf)
	if err != nil {
		return "", fmt.Errorf("commerce: build upload request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("upload request failed", zap.Error(err))
		return "", shared.ErrUpstream
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", shared.ErrUpstream
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", upstreamError(resp.StatusCode, raw)
	}

	payload, err := normalizePayload(raw)
	if err != nil {
		return "", err
	}
	var result struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(payload, &result); err != nil || result.URL == "" {
		return "", shared.NewDomainError("UPSTREAM_ERROR", "Upload response did not include an image URL")
	}
	return result.URL, nil
}
