// Package web serves the HTML login-check page, its static forms, and the
// search-term redirect.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"git.cscs.ch/openchami/chamicore-catalog/internal/audit"
)

//go:embed templates/*.html static/*.html
var files embed.FS

// FetchFallback is where /fetch sends requests without a search term.
const FetchFallback = "fetch.html"

var loginResult = template.Must(template.ParseFS(files, "templates/login_result.html"))

// LoginResult is the data rendered on the login result page.
type LoginResult struct {
	Username  string
	Strong    bool
	MinLength int
}

// Handler serves the presentation endpoints.
type Handler struct {
	minPasswordLength int
	searchURL         *url.URL
	audit             *audit.Logger
	index             []byte
	fetch             []byte
}

// New builds a Handler. searchURL must be absolute.
func New(searchURL string, minPasswordLength int, auditLogger *audit.Logger) (*Handler, error) {
	u, err := url.Parse(searchURL)
	if err != nil {
		return nil, fmt.Errorf("parsing search url: %w", err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("search url %q is not absolute", searchURL)
	}

	index, err := files.ReadFile("static/index.html")
	if err != nil {
		return nil, err
	}
	fetch, err := files.ReadFile("static/fetch.html")
	if err != nil {
		return nil, err
	}

	return &Handler{
		minPasswordLength: minPasswordLength,
		searchURL:         u,
		audit:             auditLogger,
		index:             index,
		fetch:             fetch,
	}, nil
}

// RegisterRoutes mounts the presentation endpoints on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.page(h.index))
	r.Get("/index.html", h.page(h.index))
	r.Get("/fetch.html", h.page(h.fetch))
	r.Post("/login", h.handleLogin)
	r.Get("/fetch", h.handleFetch)
	r.Post("/fetch", h.handleFetch)
}

func (h *Handler) page(body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(body)
	}
}

// handleLogin reports whether the submitted password is long enough. The
// password is only measured, never echoed or logged.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx).With().Str("handler", "Login").Logger()

	username := r.FormValue("username")
	password := r.FormValue("password")

	result := LoginResult{
		Username:  username,
		Strong:    IsStrong(password, h.minPasswordLength),
		MinLength: h.minPasswordLength,
	}

	var buf bytes.Buffer
	if err := Render(&buf, result); err != nil {
		logger.Error().Err(err).Msg("failed to render login result")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h.audit.Login(audit.LoginCheck{
		RequestID:      middleware.GetReqID(ctx),
		Username:       username,
		PasswordLength: utf8.RuneCountInString(password),
		Strong:         result.Strong,
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) handleFetch(w http.ResponseWriter, r *http.Request) {
	term := r.FormValue("searchTerm")
	if strings.TrimSpace(term) == "" {
		http.Redirect(w, r, FetchFallback, http.StatusFound)
		return
	}
	http.Redirect(w, r, SearchLocation(h.searchURL, term), http.StatusFound)
}

// IsStrong reports whether password has at least minLength characters.
func IsStrong(password string, minLength int) bool {
	return utf8.RuneCountInString(password) >= minLength
}

// SearchLocation returns base with its q parameter set to term. Spaces are
// encoded as '+'.
func SearchLocation(base *url.URL, term string) string {
	u := *base
	q := u.Query()
	q.Set("q", term)
	u.RawQuery = q.Encode()
	return u.String()
}

// Render writes the login result page. User-supplied text is HTML-escaped.
func Render(w io.Writer, result LoginResult) error {
	return loginResult.Execute(w, result)
}
