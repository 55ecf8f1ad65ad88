// Package extractor reduces interest text resources to a short snippet.
package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Snippet returns the inner HTML of the first closed <p> element in content,
// or the trimmed content itself when there is none. Only the first paragraph
// is kept; later paragraphs are dropped.
func Snippet(content string) string {
	lower := strings.ToLower(content)
	if !strings.Contains(lower, "<p") || !strings.Contains(lower, "</p>") {
		return strings.TrimSpace(content)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return strings.TrimSpace(content)
	}

	p := doc.Find("p").First()
	if p.Length() == 0 {
		return strings.TrimSpace(content)
	}
	inner, err := p.Html()
	if err != nil {
		return strings.TrimSpace(content)
	}
	return strings.TrimSpace(inner)
}
