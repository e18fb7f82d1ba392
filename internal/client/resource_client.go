// Package client talks to the upstream REST services on behalf of the console.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ims/internal/metrics"
	custom_error "ims/pkg/errors"
	"ims/pkg/security"

	"go.uber.org/zap"
)

const DefaultTimeout = 30 * time.Second

// Requester is what controllers need from a ResourceClient.
type Requester interface {
	Request(ctx context.Context, method, path string, body Body) (json.RawMessage, error)
}

// ResourceClient issues fire-once authenticated requests against one upstream service.
type ResourceClient struct {
	service    string
	httpClient *http.Client
	session    security.Session
	baseURL    string
	timeout    time.Duration
	logger     *zap.Logger
}

type Config struct {
	// Service names the upstream in metrics.
	Service    string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

func NewResourceClient(cfg Config, session security.Session, logger *zap.Logger) *ResourceClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &ResourceClient{
		service:    cfg.Service,
		httpClient: httpClient,
		session:    session,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		timeout:    timeout,
		logger:     logger,
	}
}

func (c *ResourceClient) Request(ctx context.Context, method, path string, body Body) (json.RawMessage, error) {
	token, ok := c.session.Token()
	if !ok {
		return nil, custom_error.ErrUnauthenticated
	}

	var reader io.Reader
	contentType := ""
	if body != nil {
		var err error
		reader, contentType, err = body.Encode()
		if err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			metrics.ObserveUpstream(c.service, method, metrics.OutcomeTimeout, time.Since(started))
			c.logger.Warn("Upstream request timed out", zap.String("method", method), zap.String("url", url), zap.Duration("timeout", c.timeout))
			return nil, &custom_error.TimeoutError{After: c.timeout}
		}
		metrics.ObserveUpstream(c.service, method, metrics.OutcomeNetwork, time.Since(started))
		c.logger.Warn("Upstream request failed", zap.String("method", method), zap.String("url", url), zap.Error(err))
		return nil, &custom_error.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, &custom_error.NetworkError{Err: fmt.Errorf("read response body: %w", err)}
	}

	metrics.ObserveUpstream(c.service, method, strconv.Itoa(resp.StatusCode), time.Since(started))
	c.logger.Debug("Upstream request",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, custom_error.WrapHTTPStatus(resp.StatusCode, data)
	}

	return json.RawMessage(data), nil
}

func (c *ResourceClient) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodGet, path, nil)
}

func (c *ResourceClient) Post(ctx context.Context, path string, body Body) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPost, path, body)
}

func (c *ResourceClient) Put(ctx context.Context, path string, body Body) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPut, path, body)
}

func (c *ResourceClient) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodDelete, path, nil)
}
