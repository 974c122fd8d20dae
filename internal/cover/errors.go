package cover

import (
	"errors"
	"fmt"
)

var (
	// ErrManifestParse marks a missing or malformed container.xml or
	// package document. It only ever causes a fallback.
	ErrManifestParse = errors.New("cover: manifest parse failed")
	// ErrCoverNotFound means no strategy produced a usable candidate.
	ErrCoverNotFound = errors.New("cover: no cover image found")
	// ErrCoverUnreadable means a candidate entry could not be read or
	// validated.
	ErrCoverUnreadable = errors.New("cover: candidate unreadable")
)

// UnreadableError records why a candidate was rejected during verification.
type UnreadableError struct {
	Path  string
	Stage Stage
	Err   error
}

func (e *UnreadableError) Error() string {
	return fmt.Sprintf("cover: %s candidate %s unreadable: %v", e.Stage, e.Path, e.Err)
}

func (e *UnreadableError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrCoverUnreadable.
func (e *UnreadableError) Is(target error) bool {
	return target == ErrCoverUnreadable
}
