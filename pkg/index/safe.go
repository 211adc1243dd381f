package index

import "github.com/dkarwin/scour/pkg/rwlock"

// SafeInvertedIndex wraps an InvertedIndex with a reader/writer lock so one
// index can be shared between crawl workers and query tasks. Reads run under
// the read lock, mutations under the write lock, and every returned value is
// a copy, never an alias into the locked structure.
type SafeInvertedIndex struct {
	inner *InvertedIndex
	lock  *rwlock.Lock
}

// NewSafe creates an empty thread-safe index.
func NewSafe() *SafeInvertedIndex {
	return &SafeInvertedIndex{
		inner: New(),
		lock:  rwlock.New(),
	}
}

// Add records one occurrence under the write lock.
func (s *SafeInvertedIndex) Add(term, location string, position int) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.inner.Add(term, location, position)
}

// AddAll merges a privately built index in one write-lock critical section.
// This is how crawl workers publish a whole page at once.
func (s *SafeInvertedIndex) AddAll(other *InvertedIndex) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.inner.AddAll(other)
}

// HasTerm reports whether term is present.
func (s *SafeInvertedIndex) HasTerm(term string) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.inner.HasTerm(term)
}

// HasLocation reports whether term was observed at location.
func (s *SafeInvertedIndex) HasLocation(term, location string) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.inner.HasLocation(term, location)
}

// HasPosition reports whether term was observed at location and position.
func (s *SafeInvertedIndex) HasPosition(term, location string, position int) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.inner.HasPosition(term, location, position)
}

// NumTerms returns the number of distinct terms.
func (s *SafeInvertedIndex) NumTerms() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.inner.NumTerms()
}

// NumLocations returns the number of locations term was observed at.
func (s *SafeInvertedIndex) NumLocations(term string) int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.inner.NumLocations(term)
}

// NumPositions returns the number of occurrences of term at location.
func (s *SafeInvertedIndex) NumPositions(term, location string) int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.inner.NumPositions(term, location)
}

// Terms returns a sorted copy of the term list.
func (s *SafeInvertedIndex) Terms() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.inner.Terms()
}

// Locations returns a sorted copy of term's locations.
func (s *SafeInvertedIndex) Locations(term string) []string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.inner.Locations(term)
}

// Positions returns an ascending copy of term's positions at location.
func (s *SafeInvertedIndex) Positions(term, location string) []int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.inner.Positions(term, location)
}

// Count returns the word count of location.
func (s *SafeInvertedIndex) Count(location string) int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.inner.Count(location)
}

// Counts returns a copy of the location -> word count mapping.
func (s *SafeInvertedIndex) Counts() map[string]int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.inner.Counts()
}

// CountedLocations returns every known location in sorted order.
func (s *SafeInvertedIndex) CountedLocations() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.inner.CountedLocations()
}

// Search runs an exact or prefix search under the read lock. The returned
// results are owned by the caller.
func (s *SafeInvertedIndex) Search(queries []string, exact bool) []Result {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.inner.Search(queries, exact)
}

// ExactSearch runs an exact search under the read lock.
func (s *SafeInvertedIndex) ExactSearch(queries []string) []Result {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.inner.ExactSearch(queries)
}

// PartialSearch runs a prefix search under the read lock.
func (s *SafeInvertedIndex) PartialSearch(queries []string) []Result {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.inner.PartialSearch(queries)
}

// View runs fn with the read lock held for its full duration, for operations
// that need a consistent sweep over the whole index, like serialization. The
// index passed to fn must not be retained or mutated.
func (s *SafeInvertedIndex) View(fn func(*InvertedIndex)) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	fn(s.inner)
}
