package epub

import "errors"

var (
	ErrRootfileNotFound = errors.New("rootfile full-path not found in container.xml")
	ErrManifestNotFound = errors.New("manifest element not found in package document")
)

// Package is the subset of the package document used for cover lookup.
type Package struct {
	CoverID string         // content of the first meta name="cover"
	Items   []ManifestItem // manifest items in document order
}

// ManifestItem is one item of the package manifest. Href is kept exactly
// as written in the package document.
type ManifestItem struct {
	ID         string
	Href       string
	MediaType  string
	Properties string
}
