package views

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkarwin/scour/pkg/api"
	"github.com/dkarwin/scour/pkg/index"
)

func TestRenderer_RenderHome(t *testing.T) {
	r := New()

	var sb strings.Builder

	require.NoError(t, r.RenderHome(&sb, 42, 7, ""))

	out := sb.String()

	assert.Contains(t, out, "42 terms across 7 locations")
	assert.Contains(t, out, `action="/search"`)
	assert.Contains(t, out, `href="/login"`)
}

func TestRenderer_RenderHomeLoggedIn(t *testing.T) {
	r := New()

	var sb strings.Builder

	require.NoError(t, r.RenderHome(&sb, 0, 0, "alice"))

	out := sb.String()

	assert.Contains(t, out, "alice")
	assert.Contains(t, out, `action="/logout"`)
	assert.NotContains(t, out, `href="/login"`)
}

func TestRenderer_RenderSearch(t *testing.T) {
	r := New()

	results := []index.Result{
		{Where: "https://example.com/a", Count: 2, Score: 0.5},
		{Where: "https://example.com/b", Count: 1, Score: 0.25},
	}

	var sb strings.Builder

	require.NoError(t, r.RenderSearch(&sb, "worlds", true, results, ""))

	out := sb.String()

	assert.Contains(t, out, "https://example.com/a")
	assert.Contains(t, out, "0.50000000")
	assert.Contains(t, out, "0.25000000")
	assert.Contains(t, out, "checked")
}

func TestRenderer_RenderSearchEscapes(t *testing.T) {
	r := New()

	var sb strings.Builder

	require.NoError(t, r.RenderSearch(&sb, `<script>alert(1)</script>`, false, nil, ""))

	out := sb.String()

	assert.NotContains(t, out, "<script>alert")
	assert.Contains(t, out, "No results")
}

func TestRenderer_RenderLocations(t *testing.T) {
	r := New()

	rows := []api.LocationCount{
		{Location: "/a.txt", Count: 4},
		{Location: "/b.txt", Count: 9},
	}

	var sb strings.Builder

	require.NoError(t, r.RenderLocations(&sb, rows, ""))

	out := sb.String()

	assert.Contains(t, out, "/a.txt")
	assert.Contains(t, out, ">9<")
}

func TestRenderer_RenderLoginAndRegister(t *testing.T) {
	r := New()

	var login strings.Builder

	require.NoError(t, r.RenderLogin(&login, "invalid username or password"))
	assert.Contains(t, login.String(), "invalid username or password")

	var register strings.Builder

	require.NoError(t, r.RenderRegister(&register, ""))
	assert.Contains(t, register.String(), `action="/register"`)
}
