package index

import (
	"sort"
	"strings"
)

// Result is one ranked search hit: the location, the total number of matched
// positions there across all query terms, and that count divided by the
// location's word count.
type Result struct {
	Where string
	Count int
	Score float64
}

// Less orders results for ranking: score descending, then count descending,
// then location ascending ignoring case.
func (r Result) Less(other Result) bool {
	if r.Score != other.Score {
		return r.Score > other.Score
	}

	if r.Count != other.Count {
		return r.Count > other.Count
	}

	return strings.ToLower(r.Where) < strings.ToLower(other.Where)
}

// Search dispatches to ExactSearch or PartialSearch.
func (x *InvertedIndex) Search(queries []string, exact bool) []Result {
	if exact {
		return x.ExactSearch(queries)
	}

	return x.PartialSearch(queries)
}

// ExactSearch matches each query term against equal index terms only and
// returns the ranked results. Query terms absent from the index contribute
// nothing; a query matching nothing yields an empty list.
func (x *InvertedIndex) ExactSearch(queries []string) []Result {
	acc := newAccumulator()

	for _, q := range queries {
		if locs, ok := x.postings[q]; ok {
			acc.add(locs)
		}
	}

	return acc.ranked(x.counts)
}

// PartialSearch matches each query term against every index term that has it
// as a prefix. It starts the scan at the query term's insertion point in the
// sorted term list and stops as soon as the prefix no longer matches.
func (x *InvertedIndex) PartialSearch(queries []string) []Result {
	acc := newAccumulator()

	for _, q := range queries {
		start := sort.SearchStrings(x.terms, q)

		for i := start; i < len(x.terms) && strings.HasPrefix(x.terms[i], q); i++ {
			acc.add(x.postings[x.terms[i]])
		}
	}

	return acc.ranked(x.counts)
}

// accumulator gathers per-location match counts: a lookup map keyed by
// location next to an append-only list, so each location is sighted once and
// updated in place afterwards.
type accumulator struct {
	byLocation map[string]*Result
	order      []*Result
}

func newAccumulator() *accumulator {
	return &accumulator{byLocation: make(map[string]*Result)}
}

// add folds one term's location -> positions mapping into the accumulator.
func (a *accumulator) add(locs map[string]map[int]struct{}) {
	for location, positions := range locs {
		r, ok := a.byLocation[location]
		if !ok {
			r = &Result{Where: location}
			a.byLocation[location] = r
			a.order = append(a.order, r)
		}

		r.Count += len(positions)
	}
}

// ranked finalizes scores against the word counts and returns the sorted
// result list by value.
func (a *accumulator) ranked(counts map[string]int) []Result {
	out := make([]Result, 0, len(a.order))

	for _, r := range a.order {
		r.Score = float64(r.Count) / float64(counts[r.Where])
		out = append(out, *r)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })

	return out
}
