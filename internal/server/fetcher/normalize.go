package fetcher

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var documentMarkup = regexp.MustCompile(`(?i)<(!doctype\s+html|html|head|body)[\s>]`)

// IsHTML reports whether content looks like an HTML document rather than
// the markdown the proxy usually returns.
func IsHTML(content string) bool {
	return documentMarkup.MatchString(content)
}

// Normalize strips script, style and noscript elements from HTML documents
// and returns the re-serialized markup. Anything else is returned unchanged.
func Normalize(content string) string {
	if !IsHTML(content) {
		return content
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return content
	}
	doc.Find("script, style, noscript").Remove()

	html, err := doc.Html()
	if err != nil {
		return content
	}
	return html
}
