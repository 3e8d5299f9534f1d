package htmltable

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// ErrTableNotFound reports that no table start tag with the requested id
// exists in the document. It is the only fatal condition this package can
// signal; everything downstream of a located table degrades to empty slices.
var ErrTableNotFound = errors.New("table not found")

var (
	// openTagRe matches any table start tag; the id attribute is resolved
	// separately so that attribute order and quoting style do not matter.
	openTagRe = regexp.MustCompile(`(?i)<table\b[^>]*>`)
	// tableTagRe matches table open/close tags for the depth scan. The \b
	// keeps <tablex> and <tables> from counting.
	tableTagRe = regexp.MustCompile(`(?i)<(/?)table\b`)
	idAttrRe   = regexp.MustCompile(`(?i)\bid\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>]+))`)

	captionRe = regexp.MustCompile(`(?is)<caption\b[^>]*>.*?</caption>`)
	rowRe     = regexp.MustCompile(`(?is)<tr\b[^>]*>(.*?)</tr>`)
	cellRe    = regexp.MustCompile(`(?is)<td\b[^>]*>(.*?)</td>`)
	tagRe     = regexp.MustCompile(`<[^>]+>`)
)

// Locate returns the content of the table whose id attribute equals id,
// strictly between its start tag and the matching close tag. Tag and
// attribute matching is case-insensitive and the id comparison follows suit,
// mirroring how server-side grid controls emit their markup.
//
// The close tag is found by scanning forward and counting table nesting
// depth, so a nested inner table cannot terminate the fragment early and the
// target table does not need to be the last one in the document. If the
// document ends before the depth returns to zero, as in a truncated save,
// the remainder of the document is returned.
func Locate(doc, id string) (string, error) {
	for _, loc := range openTagRe.FindAllStringIndex(doc, -1) {
		tag := doc[loc[0]:loc[1]]
		if !strings.EqualFold(idAttr(tag), id) {
			continue
		}
		rest := doc[loc[1]:]
		depth := 1
		for _, m := range tableTagRe.FindAllStringSubmatchIndex(rest, -1) {
			if rest[m[2]:m[3]] == "/" {
				depth--
			} else {
				depth++
			}
			if depth == 0 {
				return rest[:m[0]], nil
			}
		}
		return rest, nil
	}
	return "", fmt.Errorf("%w: id %q", ErrTableNotFound, id)
}

// idAttr extracts the value of the id attribute from a single start tag.
// Double-quoted, single-quoted, and bare values are accepted.
func idAttr(tag string) string {
	m := idAttrRe.FindStringSubmatch(tag)
	if m == nil {
		return ""
	}
	for _, v := range m[1:] {
		if v != "" {
			return v
		}
	}
	return ""
}

// StripCaption removes every <caption>...</caption> block from a table
// fragment. The body match is non-greedy; a fragment without captions is
// returned unchanged.
func StripCaption(fragment string) string {
	return captionRe.ReplaceAllString(fragment, "")
}

// Rows returns the bodies between <tr> and </tr> pairs in document order.
// Row attributes are ignored. No rows is not an error: the result is simply
// empty and downstream stages yield zero records.
func Rows(fragment string) []string {
	matches := rowRe.FindAllStringSubmatch(fragment, -1)
	if matches == nil {
		return nil
	}
	rows := make([]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, m[1])
	}
	return rows
}

// Cells returns the plain text of each <td> body in a row fragment, in
// order. Inner markup is removed by deleting every substring from '<'
// through the next '>', then entities are decoded and surrounding
// whitespace (including non-breaking spaces) is trimmed. A row built from
// header cells has no <td> bodies and yields an empty result.
func Cells(row string) []string {
	matches := cellRe.FindAllStringSubmatch(row, -1)
	if matches == nil {
		return nil
	}
	cells := make([]string, 0, len(matches))
	for _, m := range matches {
		text := tagRe.ReplaceAllString(m[1], "")
		text = html.UnescapeString(text)
		cells = append(cells, strings.TrimSpace(text))
	}
	return cells
}
