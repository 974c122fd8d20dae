package cover

import (
	"strings"

	"github.com/yuanying/epub-thumbnailer/internal/archive"
)

// HeuristicStrategy picks the cover from entry names alone: an image named
// like a cover wins outright, otherwise the largest image.
type HeuristicStrategy struct{}

func (HeuristicStrategy) Name() string { return "heuristic" }

func (HeuristicStrategy) Resolve(a archive.Archive) (*Candidate, error) {
	entries := a.Entries()
	best := -1
	for i, e := range entries {
		if e.IsDir() || !isImageName(e.Name) {
			continue
		}
		if strings.Contains(strings.ToLower(e.Name), "cover") {
			return &Candidate{Path: e.Name, Stage: StageHeuristic, Size: e.Size}, nil
		}
		// Strictly greater keeps the first of equal maxima.
		if best < 0 || e.Size > entries[best].Size {
			best = i
		}
	}

	if best < 0 {
		return nil, nil
	}
	return &Candidate{Path: entries[best].Name, Stage: StageHeuristic, Size: entries[best].Size}, nil
}
