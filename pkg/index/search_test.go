package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkarwin/scour/pkg/text"
)

func TestInvertedIndex_ExactSearch(t *testing.T) {
	x := New()
	x.AddWords(text.ParseAndStem("Hello, hello! Worlds world."), "/a.txt")

	// "worlds" stems to "world", which holds positions 3 and 4 of four words.
	results := x.ExactSearch(text.UniqueStems("worlds"))

	require.Len(t, results, 1)
	assert.Equal(t, Result{Where: "/a.txt", Count: 2, Score: 0.5}, results[0])
}

func TestInvertedIndex_ExactSearchAccumulatesTerms(t *testing.T) {
	x := New()
	x.AddWords([]string{"alpha", "beta", "alpha", "gamma"}, "doc")

	results := x.ExactSearch([]string{"alpha", "gamma"})

	require.Len(t, results, 1)
	assert.Equal(t, 3, results[0].Count)
	assert.InDelta(t, 0.75, results[0].Score, 1e-12)
}

func TestInvertedIndex_ExactSearchNoMatch(t *testing.T) {
	x := New()
	x.AddWords([]string{"alpha"}, "doc")

	assert.Empty(t, x.ExactSearch([]string{"omega"}))
}

func TestInvertedIndex_PartialSearch(t *testing.T) {
	x := New()

	require.NoError(t, x.Add("cap", "x", 1))
	require.NoError(t, x.Add("capable", "x", 2))
	require.NoError(t, x.Add("capital", "y", 1))
	require.NoError(t, x.Add("cat", "x", 3))

	// "cap" prefix-matches cap, capable, capital but not cat. x matches at
	// positions 1 and 2 of three words; y matches once out of one word.
	results := x.PartialSearch([]string{"cap"})

	require.Len(t, results, 2)
	assert.Equal(t, "y", results[0].Where)
	assert.Equal(t, 1, results[0].Count)
	assert.InDelta(t, 1.0, results[0].Score, 1e-12)
	assert.Equal(t, "x", results[1].Where)
	assert.Equal(t, 2, results[1].Count)
	assert.InDelta(t, 2.0/3.0, results[1].Score, 1e-12)
}

func TestInvertedIndex_PartialSearchTieOnScore(t *testing.T) {
	x := New()

	// Both locations score 1.0; the higher count wins.
	require.NoError(t, x.Add("cap", "x", 1))
	require.NoError(t, x.Add("capable", "x", 2))
	require.NoError(t, x.Add("capital", "y", 1))

	results := x.PartialSearch([]string{"cap"})

	require.Len(t, results, 2)
	assert.Equal(t, Result{Where: "x", Count: 2, Score: 1}, results[0])
	assert.Equal(t, Result{Where: "y", Count: 1, Score: 1}, results[1])
}

func TestInvertedIndex_PartialSearchExactPrefixBoundary(t *testing.T) {
	x := New()

	require.NoError(t, x.Add("can", "a", 1))
	require.NoError(t, x.Add("cap", "a", 2))
	require.NoError(t, x.Add("caq", "a", 3))

	results := x.PartialSearch([]string{"cap"})

	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Count)
}

func TestResult_Ordering(t *testing.T) {
	x := New()

	// loc-a: 1 of 2 words (0.5); loc-b: 2 of 4 words (0.5); Loc-c: 1 of 1 (1.0).
	require.NoError(t, x.Add("term", "loc-a", 1))
	require.NoError(t, x.Add("other", "loc-a", 2))
	require.NoError(t, x.Add("term", "loc-b", 1))
	require.NoError(t, x.Add("term", "loc-b", 2))
	require.NoError(t, x.Add("pad", "loc-b", 4))
	require.NoError(t, x.Add("term", "Loc-c", 1))

	results := x.ExactSearch([]string{"term"})

	require.Len(t, results, 3)
	// Score first, then count, then location ignoring case.
	assert.Equal(t, "Loc-c", results[0].Where)
	assert.Equal(t, "loc-b", results[1].Where)
	assert.Equal(t, "loc-a", results[2].Where)
}

func TestResult_OrderingCaseInsensitiveLocation(t *testing.T) {
	x := New()

	require.NoError(t, x.Add("term", "B", 1))
	require.NoError(t, x.Add("term", "a", 1))

	results := x.ExactSearch([]string{"term"})

	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Where)
	assert.Equal(t, "B", results[1].Where)
}

func TestInvertedIndex_SearchDispatch(t *testing.T) {
	x := New()

	require.NoError(t, x.Add("prefixed", "l", 1))

	assert.Empty(t, x.Search([]string{"prefix"}, true))
	assert.Len(t, x.Search([]string{"prefix"}, false), 1)
}
