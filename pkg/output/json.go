// Package output writes the engine's three JSON shapes — index, location
// counts, and ranked results — in a stable pretty form: tab indentation, one
// element per line, keys in the index's own lexicographic order, and scores
// fixed to eight fractional digits. encoding/json cannot be told to emit this
// layout, so the structure is written by hand and only string escaping is
// delegated to it.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/dkarwin/scour/pkg/index"
)

// WriteIndex writes the full term -> location -> positions structure.
func WriteIndex(w io.Writer, idx *index.InvertedIndex) error {
	terms := idx.Terms()

	if err := writeString(w, "{"); err != nil {
		return err
	}

	for i, term := range terms {
		if err := writeSeparator(w, i); err != nil {
			return err
		}

		if err := writeString(w, "\n\t"+quote(term)+": "); err != nil {
			return err
		}

		if err := writeLocations(w, idx, term); err != nil {
			return err
		}
	}

	return writeString(w, "\n}\n")
}

// writeLocations writes one term's location -> positions object at depth one.
func writeLocations(w io.Writer, idx *index.InvertedIndex, term string) error {
	if err := writeString(w, "{"); err != nil {
		return err
	}

	for i, location := range idx.Locations(term) {
		if err := writeSeparator(w, i); err != nil {
			return err
		}

		if err := writeString(w, "\n\t\t"+quote(location)+": ["); err != nil {
			return err
		}

		for j, position := range idx.Positions(term, location) {
			if err := writeSeparator(w, j); err != nil {
				return err
			}

			if err := writeString(w, "\n\t\t\t"+strconv.Itoa(position)); err != nil {
				return err
			}
		}

		if err := writeString(w, "\n\t\t]"); err != nil {
			return err
		}
	}

	return writeString(w, "\n\t}")
}

// WriteCounts writes the location -> word count object.
func WriteCounts(w io.Writer, idx *index.InvertedIndex) error {
	if err := writeString(w, "{"); err != nil {
		return err
	}

	for i, location := range idx.CountedLocations() {
		if err := writeSeparator(w, i); err != nil {
			return err
		}

		line := "\n\t" + quote(location) + ": " + strconv.Itoa(idx.Count(location))
		if err := writeString(w, line); err != nil {
			return err
		}
	}

	return writeString(w, "\n}\n")
}

// WriteResults writes the query -> ranked results object. Queries are emitted
// in sorted order; each result keeps its rank order from the search.
func WriteResults(w io.Writer, results map[string][]index.Result) error {
	queries := make([]string, 0, len(results))
	for q := range results {
		queries = append(queries, q)
	}

	sort.Strings(queries)

	if err := writeString(w, "{"); err != nil {
		return err
	}

	for i, query := range queries {
		if err := writeSeparator(w, i); err != nil {
			return err
		}

		if err := writeString(w, "\n\t"+quote(query)+": ["); err != nil {
			return err
		}

		for j, r := range results[query] {
			if err := writeSeparator(w, j); err != nil {
				return err
			}

			if err := writeResult(w, r); err != nil {
				return err
			}
		}

		if err := writeString(w, "\n\t]"); err != nil {
			return err
		}
	}

	return writeString(w, "\n}\n")
}

// writeResult writes one result object at depth two.
func writeResult(w io.Writer, r index.Result) error {
	lines := "\n\t\t{" +
		"\n\t\t\t\"where\": " + quote(r.Where) + "," +
		"\n\t\t\t\"count\": " + strconv.Itoa(r.Count) + "," +
		"\n\t\t\t\"score\": " + quote(FormatScore(r.Score)) +
		"\n\t\t}"

	return writeString(w, lines)
}

// FormatScore renders a score with exactly eight fractional digits.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 8, 64)
}

// quote JSON-escapes a string value, quotes included.
func quote(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		// Strings always marshal; keep the writer total anyway.
		return strconv.Quote(s)
	}

	return string(b)
}

func writeSeparator(w io.Writer, i int) error {
	if i == 0 {
		return nil
	}

	return writeString(w, ",")
}

func writeString(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("output: write failed: %w", err)
	}

	return nil
}
