package converter

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/yuanying/epub-thumbnailer/internal/archive"
	"github.com/yuanying/epub-thumbnailer/internal/cover"
	"github.com/yuanying/epub-thumbnailer/internal/thumbnail"
)

// ConvertOptions holds options for the conversion pipeline.
type ConvertOptions struct {
	InputPath  string
	OutputPath string
	Size       int
	Logger     *slog.Logger
}

// Pipeline orchestrates the EPUB to thumbnail conversion.
type Pipeline struct {
	Options  ConvertOptions
	selector *cover.Selector
	renderer *thumbnail.Renderer
}

// NewPipeline creates a new conversion pipeline.
func NewPipeline(opts ConvertOptions) *Pipeline {
	if opts.Size <= 0 {
		opts.Size = thumbnail.DefaultSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Pipeline{
		Options:  opts,
		selector: cover.NewSelector(opts.Logger),
		renderer: thumbnail.NewRenderer(),
	}
}

// Convert opens the EPUB, selects its cover and writes the thumbnail.
func (p *Pipeline) Convert() error {
	logger := p.Options.Logger.With("input", p.Options.InputPath)

	a, err := archive.Open(p.Options.InputPath)
	if err != nil {
		return err
	}
	defer a.Close()

	res, img, err := p.selectCover(a)
	if err != nil {
		return err
	}
	logger.Debug("cover resolved", "path", res.Path, "stage", res.Stage.String(), "bounds", img.Bounds().Size())

	thumb := p.renderer.Thumbnail(img, p.Options.Size)
	if err := p.renderer.WriteFile(p.Options.OutputPath, thumb); err != nil {
		return err
	}

	logger.Info("thumbnail written", "output", p.Options.OutputPath,
		"width", thumb.Bounds().Dx(), "height", thumb.Bounds().Dy())
	return nil
}

// selectCover runs the selector, decoding each candidate during
// verification so undecodable images fall through to the next strategy.
func (p *Pipeline) selectCover(a archive.Archive) (cover.Result, image.Image, error) {
	var img image.Image
	res, err := p.selector.Select(a, func(_ cover.Candidate, data []byte) error {
		decoded, err := p.renderer.Decode(data)
		if err != nil {
			return err
		}
		img = decoded
		return nil
	})
	if err != nil {
		return cover.Result{}, nil, fmt.Errorf("%s: %w", p.Options.InputPath, err)
	}
	return res, img, nil
}
