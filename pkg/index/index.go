// Package index implements the positional inverted index at the heart of the
// engine: a three-level sorted mapping of term -> location -> positions, the
// per-location word counts that drive scoring, and exact and prefix search
// over it. InvertedIndex is single-goroutine; SafeInvertedIndex wraps it for
// shared use.
package index

import (
	"errors"
	"sort"
)

// ErrPosition is returned when a position below one is added; positions are
// 1-based ordinals in document order.
var ErrPosition = errors.New("index: position must be at least 1")

// InvertedIndex maps each term to the locations it appears at and the set of
// positions within each location. It also tracks, per location, the highest
// position ever recorded there, which doubles as the location's word count.
//
// An InvertedIndex is not safe for concurrent use; see SafeInvertedIndex.
type InvertedIndex struct {
	postings map[string]map[string]map[int]struct{}
	counts   map[string]int
	terms    []string // sorted; mirrors the keys of postings
}

// New creates an empty InvertedIndex.
func New() *InvertedIndex {
	return &InvertedIndex{
		postings: make(map[string]map[string]map[int]struct{}),
		counts:   make(map[string]int),
	}
}

// Add records one occurrence of term at location and position. Intermediate
// structures are created as needed, and the location's word count is raised to
// position if it is higher than the current value. Positions below one are
// rejected.
func (x *InvertedIndex) Add(term, location string, position int) error {
	if position < 1 {
		return ErrPosition
	}

	locs, ok := x.postings[term]
	if !ok {
		locs = make(map[string]map[int]struct{})
		x.postings[term] = locs
		x.insertTerm(term)
	}

	positions, ok := locs[location]
	if !ok {
		positions = make(map[int]struct{})
		locs[location] = positions
	}

	positions[position] = struct{}{}

	if position > x.counts[location] {
		x.counts[location] = position
	}

	return nil
}

// AddWords records a full word sequence observed at location, assigning
// positions from 1 in order.
func (x *InvertedIndex) AddWords(words []string, location string) {
	for i, w := range words {
		// Positions start at 1, so the error path is unreachable here.
		_ = x.Add(w, location, i+1)
	}
}

// AddAll merges other into the receiver: position sets are unioned per
// (term, location), and word counts are merged by per-location maximum. The
// merge is commutative and associative over final index state.
func (x *InvertedIndex) AddAll(other *InvertedIndex) {
	for term, locs := range other.postings {
		dst, ok := x.postings[term]
		if !ok {
			dst = make(map[string]map[int]struct{}, len(locs))
			x.postings[term] = dst
			x.insertTerm(term)
		}

		for location, positions := range locs {
			set, ok := dst[location]
			if !ok {
				set = make(map[int]struct{}, len(positions))
				dst[location] = set
			}

			for p := range positions {
				set[p] = struct{}{}
			}
		}
	}

	for location, count := range other.counts {
		if count > x.counts[location] {
			x.counts[location] = count
		}
	}
}

// HasTerm reports whether term is present in the index.
func (x *InvertedIndex) HasTerm(term string) bool {
	_, ok := x.postings[term]
	return ok
}

// HasLocation reports whether term was observed at location.
func (x *InvertedIndex) HasLocation(term, location string) bool {
	_, ok := x.postings[term][location]
	return ok
}

// HasPosition reports whether term was observed at location and position.
func (x *InvertedIndex) HasPosition(term, location string, position int) bool {
	_, ok := x.postings[term][location][position]
	return ok
}

// NumTerms returns the number of distinct terms.
func (x *InvertedIndex) NumTerms() int {
	return len(x.postings)
}

// NumLocations returns the number of locations term was observed at.
func (x *InvertedIndex) NumLocations(term string) int {
	return len(x.postings[term])
}

// NumPositions returns the number of occurrences of term at location.
func (x *InvertedIndex) NumPositions(term, location string) int {
	return len(x.postings[term][location])
}

// Terms returns the terms in sorted order. The slice is a copy.
func (x *InvertedIndex) Terms() []string {
	out := make([]string, len(x.terms))
	copy(out, x.terms)

	return out
}

// Locations returns the locations term was observed at, sorted. The slice is
// a copy.
func (x *InvertedIndex) Locations(term string) []string {
	locs := x.postings[term]

	out := make([]string, 0, len(locs))
	for location := range locs {
		out = append(out, location)
	}

	sort.Strings(out)

	return out
}

// Positions returns the positions of term at location in ascending order.
// The slice is a copy.
func (x *InvertedIndex) Positions(term, location string) []int {
	set := x.postings[term][location]

	out := make([]int, 0, len(set))
	for p := range set {
		out = append(out, p)
	}

	sort.Ints(out)

	return out
}

// Count returns the word count of location, or zero when the location is
// unknown.
func (x *InvertedIndex) Count(location string) int {
	return x.counts[location]
}

// Counts returns a copy of the location -> word count mapping.
func (x *InvertedIndex) Counts() map[string]int {
	out := make(map[string]int, len(x.counts))
	for location, count := range x.counts {
		out[location] = count
	}

	return out
}

// CountedLocations returns every known location in sorted order.
func (x *InvertedIndex) CountedLocations() []string {
	out := make([]string, 0, len(x.counts))
	for location := range x.counts {
		out = append(out, location)
	}

	sort.Strings(out)

	return out
}

// insertTerm keeps the sorted term slice in step with the postings map.
func (x *InvertedIndex) insertTerm(term string) {
	i := sort.SearchStrings(x.terms, term)
	x.terms = append(x.terms, "")
	copy(x.terms[i+1:], x.terms[i:])
	x.terms[i] = term
}
