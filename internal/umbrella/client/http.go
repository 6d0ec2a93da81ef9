package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// httpClient handles the low-level GET plumbing for reporting calls.
type httpClient struct {
	baseURL    string
	logger     Logger
	httpClient *http.Client
}

// newHTTPClient creates a new HTTP client.
func newHTTPClient(config Config) *httpClient {
	return &httpClient{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		logger:  config.Logger,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// doGet performs a single reporting API request. Failures surface
// immediately; there is no retry.
func (c *httpClient) doGet(
	ctx context.Context,
	path string,
	query url.Values,
	token string,
) (json.RawMessage, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("parsing URL: %w", err)
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "umbrella-reports/1.0")

	c.logger.Debug(ctx, "Making report request", map[string]interface{}{
		"operation": "report_request",
		"endpoint":  path,
		"url":       u.String(),
		"method":    "GET",
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error(ctx, "Report request failed", map[string]interface{}{
			"operation":   "report_request",
			"endpoint":    path,
			"status_code": resp.StatusCode,
			"response":    string(body),
		})
		return nil, &RequestError{Endpoint: path, Status: resp.StatusCode, Body: string(body)}
	}

	var body json.RawMessage
	if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr != nil {
		return nil, fmt.Errorf("decoding response: %w", decodeErr)
	}

	c.logger.Debug(ctx, "Report response received", map[string]interface{}{
		"operation": "report_request",
		"endpoint":  path,
		"bytes":     len(body),
	})

	return body, nil
}
