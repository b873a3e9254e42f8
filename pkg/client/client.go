// Package client provides a typed HTTP client SDK for chamicore-catalog.
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
	"strconv"
	"strings"
	"time"

	"git.cscs.ch/openchami/chamicore-catalog/pkg/types"
)

const (
	defaultTimeout = 30 * time.Second
	apiPrefix      = "/api"
)

// Config holds catalog client configuration.
type Config struct {
	// BaseURL is the root URL of the catalog service (for example: http://localhost:27780).
	BaseURL string
	// Timeout is the per-request timeout. Defaults to 30s.
	Timeout time.Duration
	// HTTPClient overrides the transport. Timeout is ignored when set.
	HTTPClient *http.Client
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the envelope message, when the service sent one.
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsBadRequest reports whether err is a 400 response.
func IsBadRequest(err error) bool {
	return hasStatus(err, http.StatusBadRequest)
}

func hasStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// Client is the typed HTTP SDK for catalog APIs.
type Client struct {
	http    *http.Client
	baseURL string
	cfg     Config
}

// New creates a new catalog client.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("client: BaseURL is required")
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("client: invalid BaseURL %q: %w", cfg.BaseURL, err)
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	cfg.BaseURL = baseURL

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{http: hc, baseURL: baseURL, cfg: cfg}, nil
}

// ListOptions selects a page of a listing. Both fields must be set for the
// service to apply the window.
type ListOptions struct {
	Page  *int
	Limit *int
}

// PageOf is shorthand for ListOptions{Page: &page, Limit: &limit}.
func PageOf(page, limit int) ListOptions {
	return ListOptions{Page: &page, Limit: &limit}
}

func (o ListOptions) apply(params url.Values) url.Values {
	if params == nil {
		params = url.Values{}
	}
	if o.Page != nil {
		params.Set("page", strconv.Itoa(*o.Page))
	}
	if o.Limit != nil {
		params.Set("limit", strconv.Itoa(*o.Limit))
	}
	return params
}

// do sends body as JSON and decodes the response into out. Either may be nil.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	target := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		target += "?" + encoded
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: reading response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode}
		var env types.APIResponse[json.RawMessage]
		if len(payload) > 0 && json.Unmarshal(payload, &env) == nil {
			se.Message = env.Message
		}
		return se
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%s %s: decoding response: %w", method, path, err)
	}
	return nil
}

// Books returns the /api/books collection.
func (c *Client) Books() *Collection[types.Book] {
	return newCollection[types.Book](c, "books")
}

// Students returns the /api/students collection.
func (c *Client) Students() *Collection[types.Student] {
	return newCollection[types.Student](c, "students")
}

// Menu returns the /api/menu collection.
func (c *Client) Menu() *Collection[types.MenuItem] {
	return newCollection[types.MenuItem](c, "menu")
}

// Products returns the /api/products collection.
func (c *Client) Products() *Collection[types.Product] {
	return newCollection[types.Product](c, "products")
}

// Tasks returns the /api/tasks collection.
func (c *Client) Tasks() *Collection[types.Task] {
	return newCollection[types.Task](c, "tasks")
}

// Users returns the envelope-wrapped /api/users client.
func (c *Client) Users() *Users {
	return &Users{c: c, base: apiPrefix + "/users"}
}

// ToggleMenuAvailability flips the available flag of a menu item.
func (c *Client) ToggleMenuAvailability(ctx context.Context, id int64) (types.MenuItem, error) {
	return c.Menu().Action(ctx, http.MethodPut, id, "availability", nil)
}

// SetProductStock sets the stock quantity of a product.
func (c *Client) SetProductStock(ctx context.Context, id int64, quantity int) (types.Product, error) {
	return c.Products().Action(ctx, http.MethodPatch, id, "stock", url.Values{"quantity": {strconv.Itoa(quantity)}})
}

// CompleteTask marks a task completed.
func (c *Client) CompleteTask(ctx context.Context, id int64) (types.Task, error) {
	return c.Tasks().Action(ctx, http.MethodPatch, id, "complete", nil)
}

// Health calls the liveness probe.
func (c *Client) Health(ctx context.Context) error {
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, nil); err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	return nil
}
