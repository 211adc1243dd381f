// Package crawler expands a seed URL breadth-first through a worker pool,
// building one private index per page and merging each into the shared index
// in a single write-lock critical section.
package crawler

import (
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/dkarwin/scour/pkg/fetch"
	"github.com/dkarwin/scour/pkg/htmlutil"
	"github.com/dkarwin/scour/pkg/index"
	"github.com/dkarwin/scour/pkg/text"
	"github.com/dkarwin/scour/pkg/work"
)

// maxRedirects is the per-fetch redirect budget.
const maxRedirects = 3

// DefaultLimit bounds the number of locations a crawl may index when no
// explicit limit is given.
const DefaultLimit = 50

// Crawler coordinates a bounded crawl. The limit caps how many URLs are ever
// handed to the pool — and therefore how many locations can appear in the
// index — not how many links are examined per page.
type Crawler struct {
	idx     *index.SafeInvertedIndex
	queue   *work.Queue
	limit   int
	mu      sync.Mutex
	visited map[string]struct{}
}

// New creates a crawler over the shared index and pool. Limits below one
// leave the crawler unable to index anything.
func New(idx *index.SafeInvertedIndex, queue *work.Queue, limit int) *Crawler {
	return &Crawler{
		idx:     idx,
		queue:   queue,
		limit:   limit,
		visited: make(map[string]struct{}),
	}
}

// Crawl canonicalizes seed, submits it to the pool, and blocks until every
// transitively discovered page has been processed. Workers enqueue further
// workers, so the pool's finish barrier is the only correct termination
// signal. The seed counts toward the limit.
func (c *Crawler) Crawl(seed string) error {
	canon, err := htmlutil.Canonicalize(seed)
	if err != nil {
		return fmt.Errorf("crawl: %w", err)
	}

	if c.reserve(canon) {
		c.queue.Execute(func() { c.crawlPage(canon) })
	}

	c.queue.Finish()

	return nil
}

// reserve claims a crawl slot for a canonical URL. The size check and the
// insert are one critical section, so the visited set can never exceed the
// limit and duplicates are never enqueued twice.
func (c *Crawler) reserve(canon string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.visited) >= c.limit {
		return false
	}

	if _, ok := c.visited[canon]; ok {
		return false
	}

	c.visited[canon] = struct{}{}

	return true
}

// full reports whether the limit has been reached, letting workers stop
// examining links early.
func (c *Crawler) full() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.visited) >= c.limit
}

// crawlPage is the per-URL worker: fetch, discover links, tokenize, build a
// private index, and publish it. A failure at any step logs and returns
// without touching the shared index.
func (c *Crawler) crawlPage(canon string) {
	page, ok := fetch.Fetch(canon, maxRedirects)
	if !ok {
		slog.Debug("crawler: page skipped", "url", canon)
		return
	}

	base, err := url.Parse(canon)
	if err != nil {
		slog.Warn("crawler: canonical url failed to reparse", "url", canon, "error", err)
		return
	}

	// Block elements are stripped first so links inside scripts and heads are
	// never followed; the remaining markup still carries its anchors.
	stripped := htmlutil.StripBlocks(page)

	for _, link := range htmlutil.ExtractLinks(base, stripped) {
		if c.full() {
			break
		}

		if c.reserve(link) {
			target := link
			c.queue.Execute(func() { c.crawlPage(target) })
		}
	}

	words := text.ParseAndStem(htmlutil.StripEntities(htmlutil.StripTags(stripped)))

	local := index.New()
	local.AddWords(words, canon)

	c.idx.AddAll(local)

	slog.Debug("crawler: page indexed", "url", canon, "words", len(words))
}

// Visited returns how many URLs have been claimed so far.
func (c *Crawler) Visited() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.visited)
}
