package cover

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/yuanying/epub-thumbnailer/internal/archive"
)

const testContainerXML = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

// packageDoc wraps metadata and manifest markup in a package document.
func packageDoc(metadata, manifest string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8"?>
<package version="2.0" xmlns="http://www.idpf.org/2007/opf">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>Test Book</dc:title>
    ` + metadata + `
  </metadata>
  <manifest>
    ` + manifest + `
  </manifest>
</package>`)
}

// newTestBook returns an archive with container.xml and OEBPS/content.opf.
func newTestBook(metadata, manifest string) *archive.Memory {
	return archive.NewMemory().
		Add("mimetype", []byte("application/epub+zip")).
		Add("META-INF/container.xml", []byte(testContainerXML)).
		Add("OEBPS/content.opf", packageDoc(metadata, manifest))
}

func sized(n int) []byte {
	return bytes.Repeat([]byte{0xAB}, n)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
