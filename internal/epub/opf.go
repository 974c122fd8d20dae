package epub

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html/charset"
)

// ParsePackage walks a package document and collects the cover meta and the
// items of the first manifest element. Elements are matched by local name
// wherever they appear, so nested or prefixed layouts still resolve.
// A cover meta with empty content is skipped and a later one may supply
// the cover id.
func ParsePackage(content []byte) (*Package, error) {
	pkg := &Package{}
	d := newDecoder(content)

	manifestDepth := 0 // >0 while inside the first manifest
	sawManifest := false

	for {
		tok, err := d.Token()
		if err != nil {
			if isEOF(err) {
				break
			}
			return nil, fmt.Errorf("failed to parse package document: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if manifestDepth > 0 {
				manifestDepth++
			}
			switch t.Name.Local {
			case "meta":
				if pkg.CoverID == "" && attr(t, "name") == "cover" {
					pkg.CoverID = attr(t, "content")
				}
			case "manifest":
				if !sawManifest {
					sawManifest = true
					manifestDepth = 1
				}
			case "item":
				if manifestDepth > 0 {
					pkg.Items = append(pkg.Items, ManifestItem{
						ID:         attr(t, "id"),
						Href:       attr(t, "href"),
						MediaType:  attr(t, "media-type"),
						Properties: attr(t, "properties"),
					})
				}
			}
		case xml.EndElement:
			if manifestDepth > 0 {
				manifestDepth--
			}
		}
	}

	if !sawManifest {
		return nil, ErrManifestNotFound
	}
	return pkg, nil
}

// ResolveHref resolves href against dir, both archive-internal and
// forward-slash separated. Percent-encoding and fragments are removed.
// It returns "" when the result would leave the archive root.
func ResolveHref(dir, href string) string {
	href = strings.TrimSpace(href)
	href, _, _ = strings.Cut(href, "#")
	if href == "" || strings.HasPrefix(href, "/") {
		return ""
	}
	if decoded, err := url.PathUnescape(href); err == nil {
		href = decoded
	}

	cleaned := path.Clean(path.Join(dir, href))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return ""
	}
	return cleaned
}

func newDecoder(content []byte) *xml.Decoder {
	d := xml.NewDecoder(bytes.NewReader(stripBOM(content)))
	d.CharsetReader = charset.NewReaderLabel
	d.Entity = xml.HTMLEntity
	return d
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}

func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
}

func trimLeadingSlash(p string) string {
	return strings.TrimPrefix(strings.TrimPrefix(p, "./"), "/")
}
