package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Collection is a typed view over one plain-JSON resource.
type Collection[T any] struct {
	c    *Client
	name string
	base string
}

func newCollection[T any](c *Client, name string) *Collection[T] {
	return &Collection[T]{c: c, name: name, base: apiPrefix + "/" + name}
}

// List returns records in insertion order.
func (col *Collection[T]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	var out []T
	if err := col.c.do(ctx, http.MethodGet, col.base, opts.apply(nil), nil, &out); err != nil {
		return nil, fmt.Errorf("listing %s: %w", col.name, err)
	}
	return out, nil
}

// Get returns one record.
func (col *Collection[T]) Get(ctx context.Context, id int64) (T, error) {
	var out T
	if err := col.c.do(ctx, http.MethodGet, col.itemPath(id), nil, nil, &out); err != nil {
		return out, fmt.Errorf("getting %s %d: %w", col.name, id, err)
	}
	return out, nil
}

// Create stores rec and returns it with its server-assigned id.
func (col *Collection[T]) Create(ctx context.Context, rec T) (T, error) {
	var out T
	if err := col.c.do(ctx, http.MethodPost, col.base, nil, rec, &out); err != nil {
		return out, fmt.Errorf("creating %s: %w", col.name, err)
	}
	return out, nil
}

// Update replaces record id with rec. The stored id is kept.
func (col *Collection[T]) Update(ctx context.Context, id int64, rec T) (T, error) {
	var out T
	if err := col.c.do(ctx, http.MethodPut, col.itemPath(id), nil, rec, &out); err != nil {
		return out, fmt.Errorf("updating %s %d: %w", col.name, id, err)
	}
	return out, nil
}

// Delete removes record id.
func (col *Collection[T]) Delete(ctx context.Context, id int64) error {
	if err := col.c.do(ctx, http.MethodDelete, col.itemPath(id), nil, nil, nil); err != nil {
		return fmt.Errorf("deleting %s %d: %w", col.name, id, err)
	}
	return nil
}

// Query runs a read-only sub-route such as "search" or "category/Dessert".
// Path segments in sub must already be escaped.
func (col *Collection[T]) Query(ctx context.Context, sub string, params url.Values) ([]T, error) {
	var out []T
	if err := col.c.do(ctx, http.MethodGet, col.base+"/"+sub, params, nil, &out); err != nil {
		return nil, fmt.Errorf("querying %s/%s: %w", col.name, sub, err)
	}
	return out, nil
}

// Action invokes a per-record sub-route such as PATCH /{id}/complete.
func (col *Collection[T]) Action(ctx context.Context, method string, id int64, action string, params url.Values) (T, error) {
	var out T
	if err := col.c.do(ctx, method, col.itemPath(id)+"/"+action, params, nil, &out); err != nil {
		return out, fmt.Errorf("%s %s %d: %w", action, col.name, id, err)
	}
	return out, nil
}

func (col *Collection[T]) itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", col.base, id)
}
