package texplore

import (
	"errors"
	"fmt"
)

// Sentinel errors. Operations wrap them with context; test with errors.Is.
var (
	// ErrInvalidArgument is returned for a formula index or channel
	// identifier outside its range, or a non-positive grid size.
	ErrInvalidArgument = errors.New("texplore: invalid argument")

	// ErrInvalidDomain is returned when coordinate bounds are malformed.
	ErrInvalidDomain = errors.New("texplore: invalid domain")

	// ErrExport is returned when a frame cannot be encoded or written.
	ErrExport = errors.New("texplore: export failed")
)

// ExportError describes a failed export. It unwraps to both ErrExport and
// the underlying cause.
type ExportError struct {
	Op   string // "snapshot", "create", "encode", "close"
	Path string // empty when encoding to a writer
	Err  error
}

func (e *ExportError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("texplore: export %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("texplore: export %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns ErrExport and the cause so errors.Is matches either.
func (e *ExportError) Unwrap() []error {
	return []error{ErrExport, e.Err}
}
