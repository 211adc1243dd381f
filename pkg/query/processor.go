// Package query turns raw query lines into canonical term sets, runs them
// against the shared index, and caches result lists per canonical query.
package query

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/dkarwin/scour/pkg/index"
	"github.com/dkarwin/scour/pkg/text"
	"github.com/dkarwin/scour/pkg/work"
)

// Processor executes searches against the shared index. With a pool attached,
// each query line becomes one task; without one, queries run inline. The
// result cache is keyed by canonical query string, so restating a query in a
// different order or with duplicate words costs nothing.
type Processor struct {
	idx     *index.SafeInvertedIndex
	queue   *work.Queue // nil in single-threaded mode
	mu      sync.Mutex
	results map[string][]index.Result
}

// New creates a processor over the shared index. queue may be nil, in which
// case all queries execute on the calling goroutine.
func New(idx *index.SafeInvertedIndex, queue *work.Queue) *Processor {
	return &Processor{
		idx:     idx,
		queue:   queue,
		results: make(map[string][]index.Result),
	}
}

// Canonical parses and stems line, deduplicates the terms into a sorted set,
// and joins them with single spaces. An empty result means the line carries
// no searchable words.
func Canonical(line string) string {
	return strings.Join(text.UniqueStems(line), " ")
}

// ProcessQuery schedules one query line. Lines that collapse to an empty
// canonical query are dropped. With a pool, the work happens on a worker and
// a duplicated in-flight computation is tolerated: both tasks produce the
// same list and the second insert overwrites the first.
func (p *Processor) ProcessQuery(line string, exact bool) {
	canon := Canonical(line)
	if canon == "" {
		return
	}

	if p.queue == nil {
		p.execute(canon, exact)
		return
	}

	p.queue.Execute(func() { p.execute(canon, exact) })
}

// execute performs the search for a canonical query unless a cached result
// already exists.
func (p *Processor) execute(canon string, exact bool) {
	p.mu.Lock()
	_, done := p.results[canon]
	p.mu.Unlock()

	if done {
		return
	}

	results := p.idx.Search(strings.Split(canon, " "), exact)

	p.mu.Lock()
	p.results[canon] = results
	p.mu.Unlock()

	slog.Debug("query: executed", "query", canon, "exact", exact, "results", len(results))
}

// ProcessQueries reads path line by line, schedules every line as a query,
// and waits for the batch to finish when a pool is attached.
func (p *Processor) ProcessQueries(path string, exact bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("query: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		p.ProcessQuery(scanner.Text(), exact)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("query: read %s: %w", path, err)
	}

	if p.queue != nil {
		p.queue.Finish()
	}

	return nil
}

// Search answers a single query synchronously, through the cache. It is the
// entry point the HTTP portal uses.
func (p *Processor) Search(line string, exact bool) []index.Result {
	canon := Canonical(line)
	if canon == "" {
		return nil
	}

	p.execute(canon, exact)

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.results[canon]
}

// Results returns a copy of the cache, keyed by canonical query.
func (p *Processor) Results() map[string][]index.Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string][]index.Result, len(p.results))
	for canon, list := range p.results {
		cp := make([]index.Result, len(list))
		copy(cp, list)
		out[canon] = cp
	}

	return out
}

// Queries returns the canonical queries seen so far in sorted order.
func (p *Processor) Queries() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, 0, len(p.results))
	for canon := range p.results {
		out = append(out, canon)
	}

	sort.Strings(out)

	return out
}
