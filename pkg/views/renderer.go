// Package views provides HTML template rendering for the search portal.
package views

import (
	"html/template"
	"io"

	"github.com/dkarwin/scour/pkg/api"
	"github.com/dkarwin/scour/pkg/index"
	"github.com/dkarwin/scour/pkg/output"
)

// Renderer renders HTML views for the search portal.
type Renderer struct {
	home      *template.Template
	search    *template.Template
	locations *template.Template
	login     *template.Template
	register  *template.Template
}

// New creates a view Renderer with all templates parsed.
func New() *Renderer {
	funcMap := template.FuncMap{
		"score": output.FormatScore,
	}

	page := func(name, body string) *template.Template {
		return template.Must(template.New(name).Funcs(funcMap).Parse(layoutHeader + body + layoutFooter))
	}

	return &Renderer{
		home:      page("home", homeBody),
		search:    page("search", searchBody),
		locations: page("locations", locationsBody),
		login:     page("login", loginBody),
		register:  page("register", registerBody),
	}
}

// RenderHome renders the search form with index statistics.
func (r *Renderer) RenderHome(w io.Writer, terms, locations int, user string) error {
	return r.home.Execute(w, struct {
		User      string
		Terms     int
		Locations int
	}{user, terms, locations})
}

// RenderSearch renders a ranked result list.
func (r *Renderer) RenderSearch(w io.Writer, query string, exact bool, results []index.Result, user string) error {
	return r.search.Execute(w, struct {
		User    string
		Query   string
		Exact   bool
		Results []index.Result
	}{user, query, exact, results})
}

// RenderLocations renders the location word-count table.
func (r *Renderer) RenderLocations(w io.Writer, locations []api.LocationCount, user string) error {
	return r.locations.Execute(w, struct {
		User      string
		Locations []api.LocationCount
	}{user, locations})
}

// RenderLogin renders the login form, optionally with a failure message.
func (r *Renderer) RenderLogin(w io.Writer, message string) error {
	return r.login.Execute(w, struct {
		User    string
		Message string
	}{"", message})
}

// RenderRegister renders the registration form, optionally with a failure message.
func (r *Renderer) RenderRegister(w io.Writer, message string) error {
	return r.register.Execute(w, struct {
		User    string
		Message string
	}{"", message})
}
