package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"git.cscs.ch/openchami/chamicore-catalog/internal/paginate"
	"git.cscs.ch/openchami/chamicore-catalog/internal/query"
	"git.cscs.ch/openchami/chamicore-catalog/internal/store"
	"git.cscs.ch/openchami/chamicore-catalog/pkg/types"
)

// users serves /api/users. Unlike the other resources every response,
// including not-found, is wrapped in an APIResponse envelope.
type users struct {
	resource[types.UserProfile]
}

func (s *Server) mountUsers(r chi.Router) {
	h := users{newResource(store.ResourceUsers, s.catalog.Users, s.audit)}

	r.Route("/"+store.ResourceUsers, func(r chi.Router) {
		r.Get("/", h.listUsers)
		r.Post("/", h.createUser)
		r.Get("/search/username/{username}", h.getByUsername)
		r.Get("/search/country/{country}", h.listBy(func(r *http.Request) (query.Predicate[types.UserProfile], string, error) {
			country, err := pathText(r, "country")
			if err != nil {
				return nil, "", err
			}
			return query.EqualFold(userCountry, country), "user(s) from " + country, nil
		}))
		r.Get("/search/age-range", h.listBy(func(r *http.Request) (query.Predicate[types.UserProfile], string, error) {
			lo, err := queryInt(r, "min")
			if err != nil {
				return nil, "", err
			}
			hi, err := queryInt(r, "max")
			if err != nil {
				return nil, "", err
			}
			return query.Between(userAge, lo, hi), fmt.Sprintf("user(s) aged between %d and %d", lo, hi), nil
		}))
		r.Get("/active", h.listBy(func(*http.Request) (query.Predicate[types.UserProfile], string, error) {
			return query.Is(userActive.Get, true), "active user(s)", nil
		}))
		r.Get("/inactive", h.listBy(func(*http.Request) (query.Predicate[types.UserProfile], string, error) {
			return query.Is(userActive.Get, false), "inactive user(s)", nil
		}))
		r.Get("/{id}", h.getUser)
		r.Put("/{id}", h.updateUser)
		r.Patch("/{id}/activate", h.setActive(true))
		r.Patch("/{id}/deactivate", h.setActive(false))
		r.Delete("/{id}", h.deleteUser)
	})
}

func notFoundMessage(id int64) string {
	return fmt.Sprintf("User profile not found with ID: %d", id)
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

func (h users) listUsers(w http.ResponseWriter, r *http.Request) {
	win, err := parseWindow(r)
	if err != nil {
		respondEmpty(w, http.StatusBadRequest)
		return
	}
	items := paginate.Slice(h.store.List(r.Context()), win)
	respondJSON(w, r, http.StatusOK, types.OK("User profiles retrieved successfully", items))
}

func (h users) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondEmpty(w, http.StatusBadRequest)
		return
	}

	rec, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.respondUserError(w, r, "get", id, err)
		return
	}
	respondJSON(w, r, http.StatusOK, types.OK("User profile found", &rec))
}

func (h users) getByUsername(w http.ResponseWriter, r *http.Request) {
	username, err := pathText(r, "username")
	if err != nil {
		respondEmpty(w, http.StatusBadRequest)
		return
	}

	rec, err := h.store.FindFirst(r.Context(), query.EqualFold(userUsername, username))
	if err != nil {
		respondJSON(w, r, http.StatusNotFound, types.Fail[*types.UserProfile]("No user found with username: "+username))
		return
	}
	respondJSON(w, r, http.StatusOK, types.OK("User found with username: "+username, &rec))
}

// listBy answers a filtered listing with a "Found N <noun>" message.
func (h users) listBy(bind func(r *http.Request) (query.Predicate[types.UserProfile], string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pred, noun, err := bind(r)
		if err != nil {
			respondEmpty(w, http.StatusBadRequest)
			return
		}
		win, err := parseWindow(r)
		if err != nil {
			respondEmpty(w, http.StatusBadRequest)
			return
		}

		items := paginate.Slice(h.store.Find(r.Context(), pred), win)
		respondJSON(w, r, http.StatusOK, types.OK(fmt.Sprintf("Found %d %s", len(items), noun), items))
	}
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

func (h users) createUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	rec, err := decodeBody[types.UserProfile](r)
	if err != nil {
		h.record(r, "create", 0, http.StatusBadRequest, err, start)
		respondEmpty(w, http.StatusBadRequest)
		return
	}

	created := h.store.Create(r.Context(), rec)
	h.record(r, "create", created.UserID, http.StatusCreated, nil, start)

	w.Header().Set("Location", fmt.Sprintf("%s/%d", h.base, created.UserID))
	respondJSON(w, r, http.StatusCreated, types.OK("User profile created successfully", &created))
}

func (h users) updateUser(w http.ResponseWriter, r *http.Request) {
	h.mutateUser("update", "User profile updated successfully", func(r *http.Request) (mutation[types.UserProfile], error) {
		rec, err := decodeBody[types.UserProfile](r)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, s store.Store[types.UserProfile], id int64) (types.UserProfile, error) {
			return s.Update(ctx, id, rec)
		}, nil
	})(w, r)
}

func (h users) setActive(active bool) http.HandlerFunc {
	if active {
		return h.mutateUser("activate", "User profile activated successfully", set(userActive, true))
	}
	return h.mutateUser("deactivate", "User profile deactivated successfully", set(userActive, false))
}

func (h users) mutateUser(action, message string, bind mutationBinder[types.UserProfile]) http.HandlerFunc {
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
			h.respondUserError(w, r, action, id, err)
			return
		}
		h.record(r, action, id, http.StatusOK, nil, start)
		respondJSON(w, r, http.StatusOK, types.OK(message, &rec))
	}
}

// deleteUser answers 200 with an envelope rather than 204.
func (h users) deleteUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := pathID(r)
	if err != nil {
		h.record(r, "delete", 0, http.StatusBadRequest, err, start)
		respondEmpty(w, http.StatusBadRequest)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.record(r, "delete", id, statusFor(err), err, start)
		h.respondUserError(w, r, "delete", id, err)
		return
	}
	h.record(r, "delete", id, http.StatusOK, nil, start)
	respondJSON(w, r, http.StatusOK, types.OK[*types.UserProfile]("User profile deleted successfully", nil))
}

func (h users) respondUserError(w http.ResponseWriter, r *http.Request, op string, id int64, err error) {
	if statusFor(err) != http.StatusNotFound {
		h.respondStoreError(w, r, op, id, err)
		return
	}
	respondJSON(w, r, http.StatusNotFound, types.Fail[*types.UserProfile](notFoundMessage(id)))
}
