package epub

import (
	"encoding/xml"
	"fmt"
	"path"
)

// ContainerPath is the fixed location of the container descriptor.
const ContainerPath = "META-INF/container.xml"

// PackageReference points at the package document declared in container.xml.
type PackageReference struct {
	RootfilePath string
}

// Dir returns the directory that manifest hrefs are relative to.
func (r PackageReference) Dir() string {
	return path.Dir(r.RootfilePath)
}

// ParseContainer extracts the first rootfile full-path from container.xml.
func ParseContainer(content []byte) (PackageReference, error) {
	d := newDecoder(content)
	for {
		tok, err := d.Token()
		if err != nil {
			if isEOF(err) {
				return PackageReference{}, ErrRootfileNotFound
			}
			return PackageReference{}, fmt.Errorf("failed to parse container.xml: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "rootfile" {
			continue
		}

		// Only the first rootfile counts, even when its path is empty.
		fullPath := attr(se, "full-path")
		if fullPath == "" {
			return PackageReference{}, ErrRootfileNotFound
		}
		return PackageReference{RootfilePath: trimLeadingSlash(fullPath)}, nil
	}
}
