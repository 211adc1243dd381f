package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dkarwin/scour/pkg/output"
	"github.com/dkarwin/scour/pkg/repo/users"
)

// healthCheck handles GET /livez.
func (a *API) healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte("OK")); err != nil {
		slog.Error("Failed to write health response", "error", err)
	}
}

// homePage handles GET / - the search form plus index statistics.
func (a *API) homePage(w http.ResponseWriter, r *http.Request) {
	terms := a.stats.NumTerms()
	locations := len(a.stats.CountedLocations())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := a.views.RenderHome(w, terms, locations, a.currentUser(r)); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render home page", "error", err)
	}
}

// searchPage handles GET /search?q=...&exact=1 - ranked results.
func (a *API) searchPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	exact := r.URL.Query().Get("exact") != ""

	results := a.searcher.Search(q, exact)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := a.views.RenderSearch(w, q, exact, results, a.currentUser(r)); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render search page", "error", err, "query", q)
	}
}

// locationsPage handles GET /locations - the location word-count table.
func (a *API) locationsPage(w http.ResponseWriter, r *http.Request) {
	names := a.stats.CountedLocations()

	rows := make([]LocationCount, 0, len(names))
	for _, name := range names {
		rows = append(rows, LocationCount{Location: name, Count: a.stats.Count(name)})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := a.views.RenderLocations(w, rows, a.currentUser(r)); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render locations page", "error", err)
	}
}

// apiResult mirrors the serializer's result shape for the JSON endpoint.
type apiResult struct {
	Where string `json:"where"`
	Count int    `json:"count"`
	Score string `json:"score"`
}

// apiSearch handles GET /api/v1/search?q=...&exact=1 - results as JSON.
func (a *API) apiSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	exact := r.URL.Query().Get("exact") != ""

	results := a.searcher.Search(q, exact)

	body := make([]apiResult, 0, len(results))
	for _, res := range results {
		body = append(body, apiResult{
			Where: res.Where,
			Count: res.Count,
			Score: output.FormatScore(res.Score),
		})
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.ErrorContext(r.Context(), "Failed to encode search results", "error", err, "query", q)
	}
}

// loginPage handles GET /login.
func (a *API) loginPage(w http.ResponseWriter, r *http.Request) {
	if a.users == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := a.views.RenderLogin(w, ""); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render login page", "error", err)
	}
}

// login handles POST /login.
func (a *API) login(w http.ResponseWriter, r *http.Request) {
	if a.users == nil {
		http.NotFound(w, r)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	if err := a.users.Authenticate(username, password); err != nil {
		slog.InfoContext(r.Context(), "Login rejected", "username", username)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)

		if err := a.views.RenderLogin(w, "invalid username or password"); err != nil {
			slog.ErrorContext(r.Context(), "Failed to render login page", "error", err)
		}

		return
	}

	a.setSession(w, username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// registerPage handles GET /register.
func (a *API) registerPage(w http.ResponseWriter, r *http.Request) {
	if a.users == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := a.views.RenderRegister(w, ""); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render register page", "error", err)
	}
}

// register handles POST /register.
func (a *API) register(w http.ResponseWriter, r *http.Request) {
	if a.users == nil {
		http.NotFound(w, r)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	if err := a.users.Register(username, password); err != nil {
		message := "registration failed"
		if errors.Is(err, users.ErrExists) {
			message = "username already taken"
		}

		slog.InfoContext(r.Context(), "Registration rejected", "username", username, "error", err)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)

		if err := a.views.RenderRegister(w, message); err != nil {
			slog.ErrorContext(r.Context(), "Failed to render register page", "error", err)
		}

		return
	}

	a.setSession(w, username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// logout handles POST /logout.
func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	a.clearSession(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
