package extraction

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageMeta is the page metadata attached to a report for context.
type PageMeta struct {
	Title       string
	Description string
}

// FromHTML pulls the title and meta description out of a rendered document.
func FromHTML(html string) (PageMeta, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return PageMeta{}, err
	}

	meta := PageMeta{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}
	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		meta.Description = strings.TrimSpace(desc)
	}
	return meta, nil
}
