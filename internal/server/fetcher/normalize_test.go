package fetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHTML(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"doctype", "<!DOCTYPE html><p>x</p>", true},
		{"html tag", "<html lang=\"en\"><body></body></html>", true},
		{"body only", "<body>\n<p>hi</p></body>", true},
		{"markdown", "# Title\n\nSome *text*", false},
		{"markdown with inline tag", "Price <b>9.99</b>", false},
		{"plain text", "not html at all", false},
		{"lookalike word", "<htmlish>", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHTML(tt.content))
		})
	}
}

func TestNormalize_StripsScriptsAndStyles(t *testing.T) {
	in := `<!doctype html><html><head><style>body{color:red}</style><script>alert(1)</script></head>` +
		`<body><h1>Widget</h1><noscript>enable js</noscript><p>Price: 9.99</p><script src="x.js"></script></body></html>`

	out := Normalize(in)

	assert.Contains(t, out, "<h1>Widget</h1>")
	assert.Contains(t, out, "<p>Price: 9.99</p>")
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "alert(1)")
	assert.NotContains(t, out, "<style")
	assert.NotContains(t, out, "noscript")
}

func TestNormalize_MarkdownPassesThrough(t *testing.T) {
	in := "Title: Widget\n\nMarkdown Content:\n# Widget\n\n<script>kept</script>"
	assert.Equal(t, in, Normalize(in))
}
