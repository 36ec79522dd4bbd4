package books

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Detail is the denormalized payload shown on the detail screen
type Detail struct {
	Title         string
	Authors       []string
	Publisher     string
	PublishedDate string
	Description   string
	Thumbnail     string
	Categories    []string
}

// NewDetail derives the detail payload for a selected book
func NewDetail(b Book) Detail {
	return Detail{
		Title:         b.Title,
		Authors:       b.Authors,
		Publisher:     b.Publisher,
		PublishedDate: b.PublishedDate,
		Description:   PlainText(b.Description),
		Thumbnail:     SecureURL(b.ThumbnailURL),
		Categories:    b.Categories,
	}
}

// SecureURL upgrades an http:// URL to https://
func SecureURL(u string) string {
	if strings.HasPrefix(u, "http://") {
		return "https://" + strings.TrimPrefix(u, "http://")
	}
	return u
}

var blankLines = regexp.MustCompile(`\n{3,}`)

// PlainText converts an HTML description fragment to plain text,
// keeping paragraph and line breaks.
func PlainText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.TrimSpace(fragment)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}

	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, li, div").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n\n")
	})

	text := doc.Text()
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = blankLines.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
