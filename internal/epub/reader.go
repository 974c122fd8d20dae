package epub

import (
	"errors"
	"fmt"
)

var ErrContainerNotFound = errors.New("META-INF/container.xml not found")

// FileReader reads entries of an EPUB archive by name.
type FileReader interface {
	ReadFile(name string) ([]byte, error)
}

// Book is a package document located through container.xml.
type Book struct {
	Ref     PackageReference
	Package *Package
}

// LoadPackage reads container.xml and parses the package document it
// points at. The mimetype entry is not checked.
func LoadPackage(r FileReader) (*Book, error) {
	content, err := r.ReadFile(ContainerPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContainerNotFound, err)
	}

	ref, err := ParseContainer(content)
	if err != nil {
		return nil, err
	}

	content, err = r.ReadFile(ref.RootfilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read package document %s: %w", ref.RootfilePath, err)
	}

	pkg, err := ParsePackage(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ref.RootfilePath, err)
	}

	return &Book{Ref: ref, Package: pkg}, nil
}

// Resolve returns the archive path of a manifest href, or "" when the href
// cannot name an entry inside the archive.
func (b *Book) Resolve(href string) string {
	return ResolveHref(b.Ref.Dir(), href)
}
