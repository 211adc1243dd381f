package crawler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkarwin/scour/pkg/index"
	"github.com/dkarwin/scour/pkg/work"
)

// htmlPage writes an HTML handler whose body is the given markup.
func htmlPage(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<html><head><title>x</title></head><body>%s</body></html>", body)
	}
}

func TestCrawler_SinglePage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", htmlPage("Hello, hello! Worlds world."))

	srv := httptest.NewServer(mux)
	defer srv.Close()

	idx := index.NewSafe()
	queue := work.New(3)
	defer queue.Shutdown()

	c := New(idx, queue, 10)
	require.NoError(t, c.Crawl(srv.URL+"/"))

	loc := srv.URL + "/"

	assert.Equal(t, []int{1, 2}, idx.Positions("hello", loc))
	assert.Equal(t, []int{3, 4}, idx.Positions("world", loc))
	assert.Equal(t, 4, idx.Count(loc))
	assert.Equal(t, 1, c.Visited())
}

func TestCrawler_FollowsLinks(t *testing.T) {
	mux := http.NewServeMux()

	mux.HandleFunc("/", htmlPage(`seed words <a href="/one">one</a> <a href="/two#frag">two</a>`))
	mux.HandleFunc("/one", htmlPage("apple banana"))
	mux.HandleFunc("/two", htmlPage("cherry"))

	srv := httptest.NewServer(mux)
	defer srv.Close()

	idx := index.NewSafe()
	queue := work.New(3)
	defer queue.Shutdown()

	c := New(idx, queue, 10)
	require.NoError(t, c.Crawl(srv.URL+"/"))

	assert.Equal(t, 3, c.Visited())
	assert.True(t, idx.HasLocation("appl", srv.URL+"/one"))
	assert.True(t, idx.HasLocation("banana", srv.URL+"/one"))

	// The fragment is stripped before the page is fetched or indexed.
	assert.True(t, idx.HasLocation("cherri", srv.URL+"/two"))
	assert.False(t, idx.HasLocation("cherri", srv.URL+"/two#frag"))
}

func TestCrawler_RespectsLimit(t *testing.T) {
	mux := http.NewServeMux()

	var links string
	for i := 0; i < 100; i++ {
		links += fmt.Sprintf(`<a href="/p%d">link</a> `, i)
	}

	mux.HandleFunc("/", htmlPage(links))

	for i := 0; i < 100; i++ {
		mux.HandleFunc(fmt.Sprintf("/p%d", i), htmlPage(fmt.Sprintf("page number%d content", i)))
	}

	srv := httptest.NewServer(mux)
	defer srv.Close()

	idx := index.NewSafe()
	queue := work.New(5)
	defer queue.Shutdown()

	c := New(idx, queue, 10)
	require.NoError(t, c.Crawl(srv.URL+"/"))

	// The seed counts toward the limit.
	assert.Equal(t, 10, c.Visited())
	assert.LessOrEqual(t, len(idx.CountedLocations()), 10)
}

func TestCrawler_SkipsDuplicateLinks(t *testing.T) {
	mux := http.NewServeMux()

	mux.HandleFunc("/", htmlPage(`<a href="/same">a</a> <a href="/same">b</a> <a href="/same#x">c</a>`))
	mux.HandleFunc("/same", htmlPage("once only"))

	srv := httptest.NewServer(mux)
	defer srv.Close()

	idx := index.NewSafe()
	queue := work.New(3)
	defer queue.Shutdown()

	c := New(idx, queue, 10)
	require.NoError(t, c.Crawl(srv.URL+"/"))

	assert.Equal(t, 2, c.Visited())
	assert.Equal(t, []int{1}, idx.Positions("onc", srv.URL+"/same"))
}

func TestCrawler_IgnoresScriptLinks(t *testing.T) {
	mux := http.NewServeMux()

	mux.HandleFunc("/", htmlPage(`visible <script>document.write('<a href="/hidden">x</a>')</script>`))
	mux.HandleFunc("/hidden", htmlPage("should not be crawled"))

	srv := httptest.NewServer(mux)
	defer srv.Close()

	idx := index.NewSafe()
	queue := work.New(2)
	defer queue.Shutdown()

	c := New(idx, queue, 10)
	require.NoError(t, c.Crawl(srv.URL+"/"))

	assert.Equal(t, 1, c.Visited())
	assert.False(t, idx.HasTerm("crawl"))
}

func TestCrawler_UnreachableSeed(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	idx := index.NewSafe()
	queue := work.New(2)
	defer queue.Shutdown()

	c := New(idx, queue, 10)

	// The seed is claimed but nothing is indexed.
	require.NoError(t, c.Crawl(url+"/"))
	assert.Zero(t, idx.NumTerms())
}

func TestCrawler_InvalidSeed(t *testing.T) {
	idx := index.NewSafe()
	queue := work.New(2)
	defer queue.Shutdown()

	c := New(idx, queue, 10)

	assert.Error(t, c.Crawl("http://exa mple.com/"))
}

func TestCrawler_ZeroLimit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", htmlPage("words"))

	srv := httptest.NewServer(mux)
	defer srv.Close()

	idx := index.NewSafe()
	queue := work.New(2)
	defer queue.Shutdown()

	c := New(idx, queue, 0)
	require.NoError(t, c.Crawl(srv.URL+"/"))

	assert.Zero(t, c.Visited())
	assert.Zero(t, idx.NumTerms())
}
