package api

import (
	"net/http"

	"github.com/dkarwin/scour/pkg/api/middleware"
)

// newMux creates and returns a new HTTP ServeMux with the API's routes registered.
func (a *API) newMux() *http.ServeMux {
	mux := http.NewServeMux()

	withReqID := middleware.NewReqID()

	// Health check.
	mux.Handle("GET /livez", middleware.Use(a.healthCheck, withReqID))

	// JSON API.
	mux.Handle("GET /api/v1/search", middleware.Use(a.apiSearch, withReqID))

	// Portal pages.
	mux.Handle("GET /search", middleware.Use(a.searchPage, withReqID))
	mux.Handle("GET /locations", middleware.Use(a.locationsPage, withReqID))
	mux.Handle("GET /login", middleware.Use(a.loginPage, withReqID))
	mux.Handle("POST /login", middleware.Use(a.login, withReqID))
	mux.Handle("GET /register", middleware.Use(a.registerPage, withReqID))
	mux.Handle("POST /register", middleware.Use(a.register, withReqID))
	mux.Handle("POST /logout", middleware.Use(a.logout, withReqID))
	mux.Handle("GET /{$}", middleware.Use(a.homePage, withReqID))

	return mux
}
