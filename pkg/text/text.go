// Package text normalizes raw text into index terms: lowercase ASCII-letter
// tokens run through the Snowball English stemmer.
package text

import (
	"sort"
	"strings"

	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/english"
)

// Parse lowercases the input, treats every character that is not an ASCII
// letter as a separator, and returns the remaining tokens in document order.
// Input without any letters yields nil.
func Parse(text string) []string {
	normalized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return ' '
		}
	}, text)

	words := strings.Fields(normalized)
	if len(words) == 0 {
		return nil
	}

	return words
}

// Stem applies the Snowball English stemming algorithm to a single word.
// The word is expected to be lowercase, as produced by Parse.
func Stem(word string) string {
	env := snowballstem.NewEnv(word)
	english.Stem(env)

	return env.Current()
}

// ParseAndStem tokenizes text with Parse and stems each token, preserving
// document order. This is the exact term sequence the index stores.
func ParseAndStem(text string) []string {
	words := Parse(text)
	for i, w := range words {
		words[i] = Stem(w)
	}

	return words
}

// UniqueStems returns the sorted set of distinct stems in text. It is used to
// turn a query line into its canonical term set.
func UniqueStems(text string) []string {
	seen := make(map[string]struct{})

	var stems []string

	for _, w := range Parse(text) {
		s := Stem(w)
		if _, ok := seen[s]; ok {
			continue
		}

		seen[s] = struct{}{}

		stems = append(stems, s)
	}

	sort.Strings(stems)

	return stems
}
