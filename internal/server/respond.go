package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"git.cscs.ch/openchami/chamicore-catalog/internal/paginate"
)

// errBadParam marks a request whose path, query or body could not be bound.
// Handlers answer it with 400 and an empty body.
var errBadParam = errors.New("malformed request parameter")

// ---------------------------------------------------------------------------
// Responses
// ---------------------------------------------------------------------------

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

// respondEmpty writes a status line with no body.
func respondEmpty(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

// ---------------------------------------------------------------------------
// Binding
// ---------------------------------------------------------------------------

// pathID parses the {id} path parameter.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errBadParam
	}
	return id, nil
}

// pathText returns a decoded path parameter. chi matches on RawPath when the
// request carries one, and only then are its parameters still escaped.
func pathText(r *http.Request, key string) (string, error) {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v, nil
	}
	v, err := url.PathUnescape(v)
	if err != nil {
		return "", errBadParam
	}
	return v, nil
}

// queryText returns a required query parameter. A parameter that is present
// but empty is accepted.
func queryText(r *http.Request, key string) (string, error) {
	values, ok := r.URL.Query()[key]
	if !ok || len(values) == 0 {
		return "", errBadParam
	}
	return values[0], nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw, err := queryText(r, key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errBadParam
	}
	return v, nil
}

func queryFloat(r *http.Request, key string) (float64, error) {
	raw, err := queryText(r, key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errBadParam
	}
	return v, nil
}

func queryBool(r *http.Request, key string) (bool, error) {
	raw, err := queryText(r, key)
	if err != nil {
		return false, err
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errBadParam
	}
	return v, nil
}

// optionalInt parses an optional integer query parameter. Absent or empty
// values yield nil.
func optionalInt(r *http.Request, key string) (*int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errBadParam
	}
	return &v, nil
}

// parseWindow reads the optional page and limit (alias size) parameters.
func parseWindow(r *http.Request) (paginate.Window, error) {
	page, err := optionalInt(r, "page")
	if err != nil {
		return paginate.Window{}, err
	}
	size, err := optionalInt(r, "limit")
	if err != nil {
		return paginate.Window{}, err
	}
	if size == nil {
		if size, err = optionalInt(r, "size"); err != nil {
			return paginate.Window{}, err
		}
	}
	return paginate.Window{Page: page, Size: size}, nil
}

// decodeBody decodes a JSON request body. Unknown fields are ignored.
func decodeBody[T any](r *http.Request) (T, error) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, errors.Join(errBadParam, err)
	}
	return v, nil
}
