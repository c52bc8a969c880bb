package readme

import (
	"errors"
	"fmt"
)

var (
	// ErrEntrypointNotFound indicates that a package has neither a library
	// nor an executable entry file.
	ErrEntrypointNotFound = errors.New("no entrypoint found")

	// ErrRenderFailure indicates that the renderer could not parse or
	// template the doc comments.
	ErrRenderFailure = errors.New("render failed")

	// ErrIO indicates a file read or write failure.
	ErrIO = errors.New("io failure")

	// ErrUpdateNeeded signals that an existing README differs from the
	// freshly generated candidate.
	ErrUpdateNeeded = errors.New(UpdateNeeded.String())

	// ErrReadmeMissing signals that a package has no README in check mode.
	ErrReadmeMissing = errors.New(Missing.String())
)

// PackageError attributes an error to the package being processed.
type PackageError struct {
	Package string
	Err     error
}

// Error implements the error interface
func (e *PackageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Package, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *PackageError) Unwrap() error {
	return e.Err
}

// RenderError wraps a failure reported by a Renderer.
type RenderError struct {
	Entrypoint string
	Err        error
}

// Error implements the error interface
func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering %s: %v", e.Entrypoint, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *RenderError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *RenderError) Is(target error) bool {
	return target == ErrRenderFailure
}

// IOError represents a file operation that failed.
type IOError struct {
	Operation string // "read", "write", "open", "stat"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

func wrapPackage(name string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PackageError
	if errors.As(err, &pe) && pe.Package == name {
		return err
	}
	return &PackageError{Package: name, Err: err}
}

// IsUpdateNeeded reports whether err signals a stale README.
func IsUpdateNeeded(err error) bool {
	return errors.Is(err, ErrUpdateNeeded)
}

// IsEntrypointNotFound reports whether err signals a missing entrypoint.
func IsEntrypointNotFound(err error) bool {
	return errors.Is(err, ErrEntrypointNotFound)
}
