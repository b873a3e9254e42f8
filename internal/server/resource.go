package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"git.cscs.ch/openchami/chamicore-catalog/internal/audit"
	"git.cscs.ch/openchami/chamicore-catalog/internal/paginate"
	"git.cscs.ch/openchami/chamicore-catalog/internal/query"
	"git.cscs.ch/openchami/chamicore-catalog/internal/store"
)

// filter binds a request to a predicate for a search endpoint.
type filter[T any] func(r *http.Request) (query.Predicate[T], error)

// mutation is a single-record write applied through a Store.
type mutation[T store.Record[T]] func(ctx context.Context, s store.Store[T], id int64) (T, error)

// mutationBinder binds a request to a mutation.
type mutationBinder[T store.Record[T]] func(r *http.Request) (mutation[T], error)

// resource holds the bare-payload CRUD handlers shared by every service
// except user profiles. Not-found and malformed requests get empty bodies.
type resource[T store.Record[T]] struct {
	name  string
	base  string
	store store.Store[T]
	audit *audit.Logger
}

func newResource[T store.Record[T]](name string, st store.Store[T], auditLogger *audit.Logger) resource[T] {
	return resource[T]{
		name:  name,
		base:  apiPrefix + "/" + name,
		store: st,
		audit: auditLogger,
	}
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// list returns every record, optionally windowed by page and limit.
func (h resource[T]) list(w http.ResponseWriter, r *http.Request) {
	win, err := parseWindow(r)
	if err != nil {
		respondEmpty(w, http.StatusBadRequest)
		return
	}
	respondJSON(w, r, http.StatusOK, paginate.Slice(h.store.List(r.Context()), win))
}

func (h resource[T]) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondEmpty(w, http.StatusBadRequest)
		return
	}

	rec, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, "get", id, err)
		return
	}
	respondJSON(w, r, http.StatusOK, rec)
}

// search returns the records matching the bound predicate.
func (h resource[T]) search(bind filter[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pred, err := bind(r)
		if err != nil {
			respondEmpty(w, http.StatusBadRequest)
			return
		}
		win, err := parseWindow(r)
		if err != nil {
			respondEmpty(w, http.StatusBadRequest)
			return
		}
		respondJSON(w, r, http.StatusOK, paginate.Slice(h.store.Find(r.Context(), pred), win))
	}
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// create stores the decoded body under a new identity.
//
// Response: 201 with the stored record and a Location header.
func (h resource[T]) create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	rec, err := decodeBody[T](r)
	if err != nil {
		h.record(r, "create", 0, http.StatusBadRequest, err, start)
		respondEmpty(w, http.StatusBadRequest)
		return
	}

	created := h.store.Create(r.Context(), rec)
	h.record(r, "create", created.RecordID(), http.StatusCreated, nil, start)

	w.Header().Set("Location", fmt.Sprintf("%s/%d", h.base, created.RecordID()))
	respondJSON(w, r, http.StatusCreated, created)
}

// update replaces every attribute except the identity.
func (h resource[T]) update(w http.ResponseWriter, r *http.Request) {
	h.mutate("update", func(r *http.Request) (mutation[T], error) {
		rec, err := decodeBody[T](r)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, s store.Store[T], id int64) (T, error) {
			return s.Update(ctx, id, rec)
		}, nil
	})(w, r)
}

// mutate applies a bound single-record write and returns the result.
func (h resource[T]) mutate(action string, bind mutationBinder[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id, err := pathID(r)
		if err != nil {
			h.record(r, action, 0, http.StatusBadRequest, err, start)
			respondEmpty(w, http.StatusBadRequest)
			return
		}
		apply, err := bind(r)
		if err != nil {
			h.record(r, action, id, http.StatusBadRequest, err, start)
			respondEmpty(w, http.StatusBadRequest)
			return
		}

		rec, err := apply(r.Context(), h.store, id)
		if err != nil {
			h.record(r, action, id, statusFor(err), err, start)
			h.respondStoreError(w, r, action, id, err)
			return
		}
		h.record(r, action, id, http.StatusOK, nil, start)
		respondJSON(w, r, http.StatusOK, rec)
	}
}

// remove deletes a record.
//
// Response: 204 No Content on success, 404 if absent.
func (h resource[T]) remove(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := pathID(r)
	if err != nil {
		h.record(r, "delete", 0, http.StatusBadRequest, err, start)
		respondEmpty(w, http.StatusBadRequest)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.record(r, "delete", id, statusFor(err), err, start)
		h.respondStoreError(w, r, "delete", id, err)
		return
	}
	h.record(r, "delete", id, http.StatusNoContent, nil, start)
	respondEmpty(w, http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (h resource[T]) respondStoreError(w http.ResponseWriter, r *http.Request, op string, id int64, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(err).
			Str("resource", h.name).
			Str("operation", op).
			Int64("id", id).
			Msg("store operation failed")
	}
	respondEmpty(w, status)
}

func (h resource[T]) record(r *http.Request, action string, id int64, status int, err error, start time.Time) {
	event := audit.Mutation{
		RequestID:    middleware.GetReqID(r.Context()),
		Resource:     h.name,
		Action:       action,
		RecordID:     id,
		Result:       "success",
		Duration:     time.Since(start),
		ResponseCode: status,
	}
	if err != nil {
		event.Result = "error"
		event.ErrorDetail = err.Error()
	}
	h.audit.Mutation(event)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errBadParam):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// assign binds a mutation that sets one field to a fixed value.
func assign[T store.Record[T], V any](f store.Field[T, V], v V) mutation[T] {
	return func(ctx context.Context, s store.Store[T], id int64) (T, error) {
		return store.Patch(ctx, s, id, f, v)
	}
}

// toggle binds a mutation that negates a boolean field.
func toggle[T store.Record[T]](f store.Field[T, bool]) mutationBinder[T] {
	return func(*http.Request) (mutation[T], error) {
		return func(ctx context.Context, s store.Store[T], id int64) (T, error) {
			return store.Toggle(ctx, s, id, f)
		}, nil
	}
}

// set binds a mutation that sets a field to a constant.
func set[T store.Record[T], V any](f store.Field[T, V], v V) mutationBinder[T] {
	return func(*http.Request) (mutation[T], error) {
		return assign(f, v), nil
	}
}
