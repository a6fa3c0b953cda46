package client

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
	"sync"
	"time"

	"github.com/dmitrijs2005/trainingportal/internal/common"
	"github.com/dmitrijs2005/trainingportal/internal/logging"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"

	maxErrorBody = 4 << 10
)

type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     logging.Logger
	breaker    *gobreaker.CircuitBreaker

	mu          sync.RWMutex
	accessToken string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

// WithCircuitBreaker stops calling the API after failures consecutive
// transport failures and lets a single probe through once cooldown has
// passed. While open, calls fail fast with ErrUnavailable. HTTP error
// statuses do not count: the server answered.
func WithCircuitBreaker(failures uint32, cooldown time.Duration) Option {
	return func(c *HTTPClient) {
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "portal-api",
			MaxRequests: 1,
			Timeout:     cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
			IsSuccessful: func(err error) bool {
				return err == nil || !errors.Is(err, ErrUnavailable)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				c.logger.Info(context.Background(), "circuit breaker state changed",
					"breaker", name, "from", from.String(), "to", to.String())
			},
		})
	}
}

// NewHTTPClient builds a client for the API rooted at baseURL.
func NewHTTPClient(baseURL string, logger logging.Logger, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL:    u,
		httpClient: &http.Client{},
		logger:     logger.With("component", "api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *HTTPClient) setToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

func (c *HTTPClient) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	u.RawQuery = query.Encode()
	return u.String()
}

// request is one API round trip.
type request struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
}

// do performs r through the circuit breaker, when one is configured.
func (c *HTTPClient) do(ctx context.Context, r request, out any) error {
	if c.breaker == nil {
		return c.roundTrip(ctx, r, out)
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.roundTrip(ctx, r, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.logger.Debug(ctx, "api call short-circuited", "method", r.method, "path", r.path)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}

// roundTrip performs r and decodes a 2xx body into out (when out is non-nil).
// All failures are logged and classified here.
func (c *HTTPClient) roundTrip(ctx context.Context, r request, out any) error {
	requestID := uuid.NewString()
	log := c.logger.With("request_id", requestID, "method", r.method, "path", r.path)

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.endpoint(r.path, r.query), body)
	if err != nil {
		log.Error(ctx, "request build failed", "error", err)
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if token := c.token(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	log.Debug(ctx, "api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.Debug(ctx, "request abandoned", "error", ctxErr)
			return ctxErr
		}
		log.Warn(ctx, "api unreachable", "error", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Detail: readDetail(resp.Body)}
		log.Warn(ctx, "api request failed", "status", resp.StatusCode, "error", statusErr)
		return statusErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Warn(ctx, "api response decode failed", "status", resp.StatusCode, "error", err)
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, request{method: http.MethodGet, path: path, query: query}, out)
}

func (c *HTTPClient) sendJSON(ctx context.Context, method, path string, in any, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, request{method: method, path: path, body: body, contentType: contentTypeJSON}, out)
}

func (c *HTTPClient) delete(ctx context.Context, path string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: path}, nil)
}

// readDetail extracts a human readable message from an error body:
// the "detail" field of a JSON error when present, the raw text otherwise.
func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(raw, &payload) == nil && len(payload.Detail) > 0 {
		var s string
		if json.Unmarshal(payload.Detail, &s) == nil {
			return s
		}
		return string(payload.Detail)
	}
	return strings.TrimSpace(string(raw))
}

// resourcePath joins a collection and an id. The id is escaped when the URL
// is rendered.
func resourcePath(collection, id string) string {
	return collection + "/" + id
}

var _ Client = (*HTTPClient)(nil)
