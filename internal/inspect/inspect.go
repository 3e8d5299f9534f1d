package inspect

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Overview summarizes the table landscape of a document. It exists to
// answer what a page actually contains when the wanted table is missing,
// and never feeds back into extraction.
type Overview struct {
	Title    string
	Tables   int
	TableIDs []string
}

// Scan parses the document as a DOM and collects the page title, the number
// of table elements, and the id attributes they carry. Tables without an id
// are counted but contribute nothing to TableIDs.
func Scan(doc string) (Overview, error) {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return Overview{}, fmt.Errorf("parse document: %w", err)
	}

	ov := Overview{Title: strings.TrimSpace(d.Find("title").First().Text())}
	d.Find("table").Each(func(_ int, s *goquery.Selection) {
		ov.Tables++
		if id, ok := s.Attr("id"); ok && strings.TrimSpace(id) != "" {
			ov.TableIDs = append(ov.TableIDs, strings.TrimSpace(id))
		}
	})
	return ov, nil
}
