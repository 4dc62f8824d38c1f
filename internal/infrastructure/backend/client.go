package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/urmu/storefront/domain"
)

const maxErrorBody = 64 << 10

// Client talks to the remote storefront REST API.
// Concurrent identical GETs share one in-flight request.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger
	group      singleflight.Group
}

// NewClient creates a backend client. Every call is bounded by timeout.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q: scheme and host are required", baseURL)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    u,
		httpClient: &http.Client{},
		timeout:    timeout,
		logger:     logger,
	}, nil
}

// Close releases idle keep-alive connections
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// get performs a de-duplicated GET and decodes the body into out
func (c *Client) get(ctx context.Context, path, token string, query url.Values, out any) error {
	key := path + "?" + query.Encode() + "#" + token
	ch := c.group.DoChan(key, func() (any, error) {
		// the shared request outlives any single caller's cancellation
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.roundTrip(sctx, http.MethodGet, path, token, query, nil)
	})

	select {
	case <-ctx.Done():
		return translateCtxErr(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return res.Err
		}
		return decode(res.Val.([]byte), out)
	}
}

// send performs a non-GET request with a JSON body
func (c *Client) send(ctx context.Context, method, path, token string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.roundTrip(ctx, method, path, token, nil, body)
	if err != nil {
		return err
	}
	return decode(raw, out)
}

func (c *Client) roundTrip(ctx context.Context, method, path, token string, query url.Values, body any) ([]byte, error) {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed",
			zap.String("method", method), zap.String("path", path),
			zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, translateCtxErr(ctxErr)
		}
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s %s response: %w", method, path, err)
	}

	c.logger.Debug("backend request",
		zap.String("method", method), zap.String("path", path),
		zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(raw) > maxErrorBody {
			raw = raw[:maxErrorBody]
		}
		return nil, &domain.APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	return raw, nil
}

func decode(raw []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}

// errorMessage extracts the backend's message field. Validation failures may
// carry a list of messages.
func errorMessage(raw []byte) string {
	var body struct {
		Message json.RawMessage `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	for _, field := range []json.RawMessage{body.Message, body.Error} {
		if len(field) == 0 {
			continue
		}
		var s string
		if json.Unmarshal(field, &s) == nil && s != "" {
			return s
		}
		var list []string
		if json.Unmarshal(field, &list) == nil && len(list) > 0 {
			return strings.Join(list, "، ")
		}
	}
	return ""
}

func translateCtxErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrBackendTimeout, err)
	}
	return err
}
