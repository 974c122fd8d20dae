package epub

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// IsXHTMLHref reports whether href names an (X)HTML document.
func IsXHTMLHref(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasSuffix(lower, ".xhtml") || strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm")
}

// FirstImage returns the archive path of the first image referenced by an
// XHTML page, either an <img src> or an SVG <image href>.
// docPath is the page's own archive path, used for relative resolution.
func FirstImage(docPath string, content []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse XHTML: %w", err)
	}

	baseDir := path.Dir(docPath)
	var found string
	doc.Find("img, image").EachWithBreak(func(i int, s *goquery.Selection) bool {
		ref, ok := s.Attr("src")
		if !ok || ref == "" {
			// xlink:href is stored under the key "href" by the HTML parser.
			ref, ok = s.Attr("href")
		}
		if !ok || ref == "" || strings.Contains(ref, ":") {
			return true
		}
		found = ResolveHref(baseDir, ref)
		return found == ""
	})

	if found == "" {
		return "", fmt.Errorf("no image referenced in %s", docPath)
	}
	return found, nil
}
