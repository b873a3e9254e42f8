package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.cscs.ch/openchami/chamicore-catalog/pkg/types"
)

type usersEnvelope = types.APIResponse[[]types.UserProfile]
type userEnvelope = types.APIResponse[*types.UserProfile]

func TestUsers_List(t *testing.T) {
	srv := testServer(t)

	rec := do(t, srv, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode[usersEnvelope](t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "User profiles retrieved successfully", env.Message)
	assert.Len(t, env.Data, 7)
}

func TestUsers_Get(t *testing.T) {
	srv := testServer(t)

	rec := do(t, srv, http.MethodGet, "/api/users/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode[userEnvelope](t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "User profile found", env.Message)
	require.NotNil(t, env.Data)
	assert.Equal(t, "mike_wilson", env.Data.Username)

	rec = do(t, srv, http.MethodGet, "/api/users/42", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"User profile not found with ID: 42","data":null}`, rec.Body.String())
}

func TestUsers_SearchByUsername(t *testing.T) {
	srv := testServer(t)

	rec := do(t, srv, http.MethodGet, "/api/users/search/username/JANE_SMITH", "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode[userEnvelope](t, rec)
	assert.Equal(t, "User found with username: JANE_SMITH", env.Message)
	require.NotNil(t, env.Data)
	assert.Equal(t, int64(2), env.Data.UserID)

	rec = do(t, srv, http.MethodGet, "/api/users/search/username/ghost", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	env = decode[userEnvelope](t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "No user found with username: ghost", env.Message)
	assert.Nil(t, env.Data)
}

func TestUsers_SearchByUsernameWithPercent(t *testing.T) {
	srv := testServer(t)

	rec := do(t, srv, http.MethodGet, "/api/users/search/username/100%25", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decode[userEnvelope](t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "No user found with username: 100%", env.Message)

	rec = do(t, srv, http.MethodPost, "/api/users", `{"username":"%6a","active":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/users/search/username/%256A", "")
	require.Equal(t, http.StatusOK, rec.Code)
	env = decode[userEnvelope](t, rec)
	require.NotNil(t, env.Data)
	assert.Equal(t, int64(8), env.Data.UserID)
	assert.Equal(t, "User found with username: %6A", env.Message)
}

func TestUsers_FilteredListings(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		target  string
		message string
		ids     []int64
	}{
		{target: "/api/users/search/country/usa", message: "Found 2 user(s) from usa", ids: []int64{1, 5}},
		{target: "/api/users/search/country/France", message: "Found 0 user(s) from France", ids: []int64{}},
		{target: "/api/users/search/age-range?min=25&max=30", message: "Found 4 user(s) aged between 25 and 30", ids: []int64{1, 2, 6, 7}},
		{target: "/api/users/active", message: "Found 5 active user(s)", ids: []int64{1, 2, 3, 5, 6}},
		{target: "/api/users/inactive", message: "Found 2 inactive user(s)", ids: []int64{4, 7}},
		{target: "/api/users/active?page=1&limit=2", message: "Found 2 active user(s)", ids: []int64{3, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, rec.Code)
			env := decode[usersEnvelope](t, rec)
			assert.True(t, env.Success)
			assert.Equal(t, tt.message, env.Message)
			ids := []int64{}
			for _, u := range env.Data {
				ids = append(ids, u.UserID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}

	rec := do(t, srv, http.MethodGet, "/api/users/search/age-range?min=25", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUsers_Writes(t *testing.T) {
	srv := testServer(t)

	rec := do(t, srv, http.MethodPost, "/api/users", `{"username":"li_wei","email":"li@example.com","fullName":"Li Wei","age":29,"country":"China","active":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/users/8", rec.Header().Get("Location"))
	env := decode[userEnvelope](t, rec)
	assert.Equal(t, "User profile created successfully", env.Message)
	require.NotNil(t, env.Data)
	assert.Equal(t, int64(8), env.Data.UserID)

	rec = do(t, srv, http.MethodPut, "/api/users/8", `{"userId":1,"username":"li_wei","country":"Singapore","age":30}`)
	require.Equal(t, http.StatusOK, rec.Code)
	env = decode[userEnvelope](t, rec)
	assert.Equal(t, "User profile updated successfully", env.Message)
	assert.Equal(t, int64(8), env.Data.UserID)
	assert.Equal(t, "Singapore", env.Data.Country)

	rec = do(t, srv, http.MethodPatch, "/api/users/4/activate", "")
	require.Equal(t, http.StatusOK, rec.Code)
	env = decode[userEnvelope](t, rec)
	assert.Equal(t, "User profile activated successfully", env.Message)
	assert.True(t, env.Data.Active)

	rec = do(t, srv, http.MethodPatch, "/api/users/1/deactivate", "")
	require.Equal(t, http.StatusOK, rec.Code)
	env = decode[userEnvelope](t, rec)
	assert.Equal(t, "User profile deactivated successfully", env.Message)
	assert.False(t, env.Data.Active)

	rec = do(t, srv, http.MethodPatch, "/api/users/99/activate", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User profile not found with ID: 99", decode[userEnvelope](t, rec).Message)
}

func TestUsers_Delete(t *testing.T) {
	srv := testServer(t)

	rec := do(t, srv, http.MethodDelete, "/api/users/7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"User profile deleted successfully","data":null}`, rec.Body.String())

	rec = do(t, srv, http.MethodDelete, "/api/users/7", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decode[userEnvelope](t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "User profile not found with ID: 7", env.Message)

	rec = do(t, srv, http.MethodGet, "/api/users/inactive", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Found 1 inactive user(s)", decode[usersEnvelope](t, rec).Message)
}
