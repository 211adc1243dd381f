package htmlutil

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Canonicalize parses a URL and returns its canonical string form: scheme,
// user info, host, port, path, and query preserved; fragment dropped; reserved
// characters percent-encoded where required. Case and trailing slashes are
// kept as-is. Canonicalization is idempotent.
func Canonicalize(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", raw, err)
	}

	return canonical(u), nil
}

func canonical(u *url.URL) string {
	c := *u
	c.Fragment = ""
	c.RawFragment = ""

	return c.String()
}

// ExtractLinks returns every anchor-href reference in page, resolved against
// base, fragment-free, in document order. Only http and https targets are
// returned; malformed references are skipped.
func ExtractLinks(base *url.URL, page string) []string {
	var links []string

	z := html.NewTokenizer(strings.NewReader(page))

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return links
		}

		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		tok := z.Token()
		if tok.DataAtom != atom.A {
			continue
		}

		for _, attr := range tok.Attr {
			if attr.Key != "href" {
				continue
			}

			ref, err := url.Parse(strings.TrimSpace(attr.Val))
			if err != nil {
				continue
			}

			resolved := base.ResolveReference(ref)
			if resolved.Scheme != "http" && resolved.Scheme != "https" {
				continue
			}

			links = append(links, canonical(resolved))

			break
		}
	}
}
