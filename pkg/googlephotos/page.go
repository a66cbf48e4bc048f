package googlephotos

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageMeta is the descriptive metadata a shared album page advertises.
type PageMeta struct {
	Title    string
	CoverURL string
}

// ParsePageMeta reads the Open Graph tags of an album page, falling back to
// the <title> element. Missing tags leave fields empty.
func ParsePageMeta(html string) PageMeta {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return PageMeta{}
	}

	meta := PageMeta{
		Title:    strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", "")),
		CoverURL: strings.TrimSpace(doc.Find(`meta[property="og:image"]`).AttrOr("content", "")),
	}
	if meta.Title == "" {
		meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	return meta
}
