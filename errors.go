package sheetprobe

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by a Prober that was not built with New.
var ErrNotConfigured = errors.New("sheetprobe: prober has no capabilities configured")

// NotFoundError means the path is missing or is not a regular file. It is
// the only condition that aborts a probe.
type NotFoundError struct {
	Path   string
	Reason string
	Err    error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("file not found: %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("file not found: %s: %s", e.Path, e.Reason)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// CorruptArchiveError means the magic bytes matched but the container could
// not be read.
type CorruptArchiveError struct {
	Path string
	Kind FormatKind
	Op   string
	Err  error
}

func (e *CorruptArchiveError) Error() string {
	return fmt.Sprintf("corrupt %s archive %s: %s: %v", e.Kind, e.Path, e.Op, e.Err)
}

func (e *CorruptArchiveError) Unwrap() error { return e.Err }

// UnsupportedFormatError means no workbook parser is registered for Kind.
type UnsupportedFormatError struct {
	Kind FormatKind
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("no workbook parser available for %s format", e.Kind)
}

// PerSheetReadError is attached to one SheetPreview and never affects its
// siblings.
type PerSheetReadError struct {
	Sheet string
	Err   error
}

func (e *PerSheetReadError) Error() string {
	return fmt.Sprintf("failed to read sheet %q: %v", e.Sheet, e.Err)
}

func (e *PerSheetReadError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is, or wraps, a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
