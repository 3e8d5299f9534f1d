package source

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// Document is a saved HTML page loaded from disk and decoded to UTF-8. The
// HTML text is immutable input for the extraction pipeline; Charset and
// Bytes exist for the diagnostic report.
type Document struct {
	Path    string
	HTML    string
	Charset string
	Bytes   int
}

// Load reads the file at path and decodes it to UTF-8 using the charset
// sniffed from a BOM or a <meta charset> declaration. Saved pages from
// legacy servers are frequently windows-1252, which is also the sniffer's
// fallback; when the sniff is uncertain but the bytes are already valid
// UTF-8, the bytes win over the fallback.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read input: %w", err)
	}

	enc, name, certain := charset.DetermineEncoding(data, "")
	if name == "utf-8" || (!certain && utf8.Valid(data)) {
		text := strings.TrimPrefix(string(data), "\ufeff")
		return Document{Path: path, HTML: text, Charset: "utf-8", Bytes: len(data)}, nil
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return Document{}, fmt.Errorf("decode %s input: %w", name, err)
	}
	return Document{Path: path, HTML: string(decoded), Charset: name, Bytes: len(data)}, nil
}
