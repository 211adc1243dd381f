// Package htmlutil reduces raw HTML to indexable text and extracts the links
// the crawler follows. Text cleanup is deliberately regex-level rather than a
// full parse; pages in the wild are too broken for anything stricter to matter.
// Link extraction walks anchor start tags with the x/net/html tokenizer.
package htmlutil

import (
	"html"
	"regexp"
)

// blockElements are elements whose entire content is discarded before
// tokenization. Their bodies never contribute terms to the index.
var blockElements = []string{"head", "style", "script", "noscript"}

var blockREs = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(blockElements))
	for _, name := range blockElements {
		res = append(res, regexp.MustCompile(`(?is)<`+name+`\b[^>]*>.*?</\s*`+name+`\s*>`))
	}

	return res
}()

var tagRE = regexp.MustCompile(`(?s)<[^>]*?>`)

// StripBlocks removes the content of every block element (script, style,
// head, noscript), case-insensitively and tolerant of attributes and
// whitespace inside the tags. Anchor tags outside those blocks survive, so the
// result is still suitable for link extraction.
func StripBlocks(page string) string {
	for _, re := range blockREs {
		page = re.ReplaceAllString(page, "")
	}

	return page
}

// StripTags removes every remaining tag, replacing each with a single space so
// that adjacent words do not fuse across element boundaries.
func StripTags(page string) string {
	return tagRE.ReplaceAllString(page, " ")
}

// StripEntities decodes named and numeric HTML entities into their characters.
func StripEntities(page string) string {
	return html.UnescapeString(page)
}

// Clean applies StripBlocks, StripTags, and StripEntities in order, producing
// plain text ready for tokenization.
func Clean(page string) string {
	return StripEntities(StripTags(StripBlocks(page)))
}
