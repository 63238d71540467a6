// Package backend talks to the field-service REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"field-service/pkg/utils"
)

const maxErrorBody = 64 << 10

// Error is a non-2xx answer from the API. Message holds the API's "mensagem"
// when the body carried one.
type Error struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("field-service API %s returned %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("field-service API %s returned %d", e.Endpoint, e.StatusCode)
}

// HasMessage reports whether the API gave a user-presentable message.
func (e *Error) HasMessage() bool {
	return strings.TrimSpace(e.Message) != ""
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.Named("backend_client"),
	}
}

// do sends the request with the caller's bearer token and decodes a 2xx JSON body into out.
func (c *Client) do(ctx context.Context, method, endpoint string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request for %s: %w", endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request for %s: %w", method, endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := utils.GetAuthTokenFromCtx(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if requestID := utils.GetRequestIDFromCtx(ctx); requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("field-service API call",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp, endpoint)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode response of %s: %w", endpoint, err)
	}
	return nil
}

func decodeError(resp *http.Response, endpoint string) error {
	apiErr := &Error{StatusCode: resp.StatusCode, Endpoint: endpoint}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}
	var body struct {
		Mensagem string `json:"mensagem"`
	}
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Message = strings.TrimSpace(body.Mensagem)
	}
	return apiErr
}
