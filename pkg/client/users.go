package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"git.cscs.ch/openchami/chamicore-catalog/pkg/types"
)

// Users wraps /api/users, whose responses are APIResponse envelopes.
// Failures surface as *StatusError carrying the envelope message.
type Users struct {
	c    *Client
	base string
}

type (
	userEnvelope  = types.APIResponse[*types.UserProfile]
	usersEnvelope = types.APIResponse[[]types.UserProfile]
)

// List returns every profile.
func (u *Users) List(ctx context.Context, opts ListOptions) (usersEnvelope, error) {
	return u.many(ctx, u.base, opts.apply(nil))
}

// Get returns one profile.
func (u *Users) Get(ctx context.Context, id int64) (userEnvelope, error) {
	return u.one(ctx, http.MethodGet, u.itemPath(id), nil)
}

// ByUsername returns the first profile whose username matches, ignoring case.
func (u *Users) ByUsername(ctx context.Context, username string) (userEnvelope, error) {
	return u.one(ctx, http.MethodGet, u.base+"/search/username/"+url.PathEscape(username), nil)
}

// ByCountry returns profiles from country, ignoring case.
func (u *Users) ByCountry(ctx context.Context, country string) (usersEnvelope, error) {
	return u.many(ctx, u.base+"/search/country/"+url.PathEscape(country), nil)
}

// ByAgeRange returns profiles with min <= age <= max.
func (u *Users) ByAgeRange(ctx context.Context, lo, hi int) (usersEnvelope, error) {
	return u.many(ctx, u.base+"/search/age-range", url.Values{
		"min": {strconv.Itoa(lo)},
		"max": {strconv.Itoa(hi)},
	})
}

// Active returns profiles with active set.
func (u *Users) Active(ctx context.Context) (usersEnvelope, error) {
	return u.many(ctx, u.base+"/active", nil)
}

// Inactive returns profiles with active cleared.
func (u *Users) Inactive(ctx context.Context) (usersEnvelope, error) {
	return u.many(ctx, u.base+"/inactive", nil)
}

// Create stores profile and returns it with its server-assigned id.
func (u *Users) Create(ctx context.Context, profile types.UserProfile) (userEnvelope, error) {
	return u.one(ctx, http.MethodPost, u.base, profile)
}

// Update replaces profile id.
func (u *Users) Update(ctx context.Context, id int64, profile types.UserProfile) (userEnvelope, error) {
	return u.one(ctx, http.MethodPut, u.itemPath(id), profile)
}

// Activate sets active on profile id.
func (u *Users) Activate(ctx context.Context, id int64) (userEnvelope, error) {
	return u.one(ctx, http.MethodPatch, u.itemPath(id)+"/activate", nil)
}

// Deactivate clears active on profile id.
func (u *Users) Deactivate(ctx context.Context, id int64) (userEnvelope, error) {
	return u.one(ctx, http.MethodPatch, u.itemPath(id)+"/deactivate", nil)
}

// Delete removes profile id.
func (u *Users) Delete(ctx context.Context, id int64) (userEnvelope, error) {
	return u.one(ctx, http.MethodDelete, u.itemPath(id), nil)
}

func (u *Users) one(ctx context.Context, method, path string, body any) (userEnvelope, error) {
	var env userEnvelope
	if err := u.c.do(ctx, method, path, nil, body, &env); err != nil {
		return env, fmt.Errorf("users: %w", err)
	}
	return env, nil
}

func (u *Users) many(ctx context.Context, path string, params url.Values) (usersEnvelope, error) {
	var env usersEnvelope
	if err := u.c.do(ctx, http.MethodGet, path, params, nil, &env); err != nil {
		return env, fmt.Errorf("users: %w", err)
	}
	return env, nil
}

func (u *Users) itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", u.base, id)
}
