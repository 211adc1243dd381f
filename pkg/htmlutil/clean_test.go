package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripBlocks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "script content removed",
			in:   `before<script>var x = "<a href='nope'>";</script>after`,
			want: "beforeafter",
		},
		{
			name: "case insensitive with attributes",
			in:   `a<SCRIPT type="text/javascript" async>x</ScRiPt >b`,
			want: "ab",
		},
		{
			name: "style and head and noscript",
			in:   "<head><title>t</title></head><style>p{}</style><noscript>no</noscript>body",
			want: "body",
		},
		{
			name: "anchors survive",
			in:   `<head>gone</head><a href="/x">kept</a>`,
			want: `<a href="/x">kept</a>`,
		},
		{
			name: "multiline content",
			in:   "x<style>\n .a { color: red }\n</style>y",
			want: "xy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripBlocks(tt.in))
		})
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "<p>hi</p>", want: " hi "},
		{name: "attributes and whitespace", in: "<a\n href=\"x\"\n>link</a>", want: " link "},
		{name: "no tags", in: "plain", want: "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripTags(tt.in))
		})
	}
}

func TestStripEntities(t *testing.T) {
	assert.Equal(t, "a & b < c é", StripEntities("a &amp; b &lt; c &#233;"))
}

func TestClean(t *testing.T) {
	in := `<html><head><title>skip</title></head><body><p>Hello &amp; world</p><script>x()</script></body></html>`
	got := Clean(in)

	assert.Contains(t, got, "Hello & world")
	assert.NotContains(t, got, "skip")
	assert.NotContains(t, got, "x()")
	assert.NotContains(t, got, "<")
}
