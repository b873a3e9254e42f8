//go:build smoke

package client

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.cscs.ch/openchami/chamicore-catalog/pkg/types"
)

const (
	defaultSmokeURL      = "http://127.0.0.1:27780"
	defaultHealthTimeout = 10 * time.Second
)

// Run against a live server:
//
//	CHAMICORE_TEST_CATALOG_URL=http://127.0.0.1:27780 go test -tags smoke ./pkg/client/
func smokeClient(t *testing.T) *Client {
	t.Helper()

	baseURL := defaultSmokeURL
	if v := strings.TrimSpace(os.Getenv("CHAMICORE_TEST_CATALOG_URL")); v != "" {
		baseURL = v
	}
	c, err := New(Config{BaseURL: baseURL, Timeout: time.Second})
	require.NoError(t, err)

	deadline := time.Now().Add(defaultHealthTimeout)
	for {
		err = c.Health(context.Background())
		if err == nil {
			return c
		}
		if time.Now().After(deadline) {
			t.Fatalf("catalog not healthy within %s: %v", defaultHealthTimeout, err)
		}
		time.Sleep(250 * time.Millisecond)
	}
}

func TestSmoke_CRUDHappyPath(t *testing.T) {
	c := smokeClient(t)
	ctx := context.Background()
	title := fmt.Sprintf("smoke-%d", time.Now().UnixNano())

	created, err := c.Books().Create(ctx, types.Book{Title: title, Author: "Smoke Test"})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	found, err := c.Books().Query(ctx, "search", map[string][]string{"title": {title}})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)

	require.NoError(t, c.Books().Delete(ctx, created.ID))
	_, err = c.Books().Get(ctx, created.ID)
	assert.True(t, IsNotFound(err))
}

func TestSmoke_UserEnvelope(t *testing.T) {
	c := smokeClient(t)
	ctx := context.Background()

	env, err := c.Users().List(ctx, ListOptions{})
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.Equal(t, "User profiles retrieved successfully", env.Message)
}
