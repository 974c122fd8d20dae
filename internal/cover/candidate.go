// Package cover picks the cover image entry of an EPUB archive.
//
// Resolution runs a fixed chain of strategies: the package manifest first,
// then filename and size heuristics over the archive entries. The first
// candidate whose bytes can be read (and validated) wins.
package cover

import (
	"path"
	"strings"

	"github.com/yuanying/epub-thumbnailer/internal/archive"
)

// Stage identifies which strategy produced a candidate.
type Stage int

const (
	StageManifest Stage = iota + 1
	StageHeuristic
)

func (s Stage) String() string {
	switch s {
	case StageManifest:
		return "manifest"
	case StageHeuristic:
		return "heuristic"
	default:
		return "unknown"
	}
}

// Candidate is an entry believed to be the cover, not yet verified.
type Candidate struct {
	Path  string
	Stage Stage
	Size  int64 // heuristic candidates only
}

// Result is a verified candidate together with its bytes.
type Result struct {
	Candidate
	Data []byte
}

// Strategy resolves a cover candidate from an archive. A nil candidate with
// a nil error means the strategy found nothing.
type Strategy interface {
	Name() string
	Resolve(a archive.Archive) (*Candidate, error)
}

// isImageName reports whether name ends in .jpg, .jpeg or .png.
func isImageName(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}
