package cover

import (
	"fmt"
	"strings"

	"github.com/yuanying/epub-thumbnailer/internal/archive"
	"github.com/yuanying/epub-thumbnailer/internal/epub"
)

// ManifestStrategy resolves the cover declared in the EPUB package document.
type ManifestStrategy struct{}

func (ManifestStrategy) Name() string { return "manifest" }

// Resolve reads container.xml and the package document it points at, then
// returns the first manifest item accepted by acceptItem.
func (ManifestStrategy) Resolve(a archive.Archive) (*Candidate, error) {
	book, err := epub.LoadPackage(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifestParse, err)
	}

	for _, item := range book.Package.Items {
		if !acceptItem(item, book.Package.CoverID) {
			continue
		}
		p := book.Resolve(item.Href)
		if p == "" {
			return nil, nil
		}
		if epub.IsXHTMLHref(p) {
			p = followCoverPage(a, p)
		}
		return &Candidate{Path: p, Stage: StageManifest}, nil
	}

	return nil, nil
}

// acceptItem reports whether a manifest item is the cover: its id or its
// properties either equal the cover id from the metadata, or contain
// "cover" while the href names an image.
func acceptItem(item epub.ManifestItem, coverID string) bool {
	image := isImageName(item.Href)
	idMatch := (coverID != "" && item.ID == coverID) ||
		(strings.Contains(item.ID, "cover") && image)
	propsMatch := (coverID != "" && item.Properties == coverID) ||
		(strings.Contains(item.Properties, "cover") && image)
	return idMatch || propsMatch
}

// followCoverPage returns the first image of an XHTML cover page, or the
// page itself when no image can be found.
func followCoverPage(a archive.Archive, pagePath string) string {
	data, err := a.ReadFile(pagePath)
	if err != nil {
		return pagePath
	}
	img, err := epub.FirstImage(pagePath, data)
	if err != nil {
		return pagePath
	}
	return img
}
