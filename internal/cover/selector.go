package cover

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/yuanying/epub-thumbnailer/internal/archive"
)

// Validator checks candidate bytes before they are accepted, typically by
// decoding them as an image.
type Validator func(c Candidate, data []byte) error

// Selector runs strategies in priority order and verifies their candidates.
type Selector struct {
	strategies []Strategy
	logger     *slog.Logger
}

// NewSelector creates a selector. With no strategies the manifest strategy
// runs first and the heuristic strategy second.
func NewSelector(logger *slog.Logger, strategies ...Strategy) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	if len(strategies) == 0 {
		strategies = []Strategy{ManifestStrategy{}, HeuristicStrategy{}}
	}
	return &Selector{strategies: strategies, logger: logger}
}

// Select returns the first candidate whose entry can be read and passes
// validate (which may be nil). A candidate failing verification moves on to
// the next strategy.
func (s *Selector) Select(a archive.Archive, validate Validator) (Result, error) {
	rejected := make(map[string]struct{})
	var lastErr error

	for _, strategy := range s.strategies {
		c := s.try(strategy, a)
		if c == nil {
			continue
		}
		if _, seen := rejected[c.Path]; seen {
			s.logger.Debug("candidate already rejected", "strategy", strategy.Name(), "path", c.Path)
			continue
		}

		data, err := s.verify(a, *c, validate)
		if err != nil {
			rejected[c.Path] = struct{}{}
			lastErr = &UnreadableError{Path: c.Path, Stage: c.Stage, Err: err}
			s.logger.Warn("cover candidate rejected", "strategy", strategy.Name(), "path", c.Path, "error", err)
			continue
		}

		s.logger.Debug("cover selected", "strategy", strategy.Name(), "path", c.Path, "size", len(data))
		return Result{Candidate: *c, Data: data}, nil
	}

	if lastErr != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrCoverNotFound, lastErr)
	}
	return Result{}, ErrCoverNotFound
}

// try runs one strategy, turning errors and panics into "no result".
func (s *Selector) try(strategy Strategy, a archive.Archive) (c *Candidate) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("cover strategy panicked", "strategy", strategy.Name(), "panic", r)
			c = nil
		}
	}()

	c, err := strategy.Resolve(a)
	if err != nil {
		s.logger.Warn("cover strategy failed", "strategy", strategy.Name(), "error", err)
		return nil
	}
	if c == nil || c.Path == "" {
		s.logger.Debug("cover strategy found nothing", "strategy", strategy.Name())
		return nil
	}
	return c
}

func (s *Selector) verify(a archive.Archive, c Candidate, validate Validator) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("validation panicked: %v", r)
		}
	}()

	data, err = a.ReadFile(c.Path)
	if err != nil {
		return nil, err
	}
	if validate != nil {
		if err := validate(c, data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// IsNotFound reports whether err means no usable cover exists.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCoverNotFound)
}
