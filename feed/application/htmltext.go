package application

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

const (
	// maxSnippetLength is the rune budget for list previews.
	maxSnippetLength = 200

	blockSelector = "p, h1, h2, h3, h4, h5, h6, li, blockquote, pre"
)

var textPolicy = newTextPolicy()

func newTextPolicy() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}

// PlainText converts WordPress rendered HTML into a single line of text.
func PlainText(rendered string) string {
	if rendered == "" {
		return ""
	}
	stripped := textPolicy.Sanitize(rendered)
	return collapseWhitespace(html.UnescapeString(stripped))
}

// Paragraphs extracts the text of each block element of an article body, in
// document order. Markup without block elements is returned as one paragraph.
func Paragraphs(rendered string) []string {
	paragraphs := make([]string, 0)
	if strings.TrimSpace(rendered) == "" {
		return paragraphs
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rendered))
	if err == nil {
		doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
			// Containers are skipped; their nested blocks are visited on their own.
			if s.Find(blockSelector).Length() > 0 {
				return
			}
			if text := collapseWhitespace(s.Text()); text != "" {
				paragraphs = append(paragraphs, text)
			}
		})
	}

	if len(paragraphs) == 0 {
		if text := PlainText(rendered); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	return paragraphs
}

// Snippet shortens text to maxSnippetLength runes on a word boundary.
func Snippet(text string) string {
	if utf8.RuneCountInString(text) <= maxSnippetLength {
		return text
	}

	runes := []rune(text)
	snippet := string(runes[:maxSnippetLength])
	if lastSpace := strings.LastIndexAny(snippet, " \t"); lastSpace > 0 {
		snippet = snippet[:lastSpace]
	}
	return strings.TrimRight(snippet, " \t") + "..."
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
