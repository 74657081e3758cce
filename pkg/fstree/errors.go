package fstree

import "fmt"

// InvalidEncodingError is returned when a raw path segment is not valid
// percent-encoded UTF-8.
type InvalidEncodingError struct {
	Raw string
}

func (e InvalidEncodingError) Error() string {
	return "invalid path encoding"
}

// OutsideRootError is returned when a relative path would resolve outside
// the storage root.
type OutsideRootError struct {
	Relative string
}

func (e OutsideRootError) Error() string {
	return "path is outside the storage root"
}

// InvalidPathError is returned when a relative path cannot form a
// well-formed filesystem path.
type InvalidPathError struct {
	Relative string
}

func (e InvalidPathError) Error() string {
	return "invalid path"
}

// NotFoundError is returned when the target node does not exist.
type NotFoundError struct {
	Path string
}

func (e NotFoundError) Error() string {
	return "path not found"
}

// TypeMismatchError is returned when a node's type on disk no longer
// matches the category it was classified as. Nothing is removed when this
// happens.
type TypeMismatchError struct {
	Path     string
	Expected FileCategory
	Actual   FileCategory
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("node type changed: expected %s, found %s", e.Expected, e.Actual)
}

// DeleteFailedError is returned when the underlying removal fails. It
// carries the path only; the operating system error is logged, not
// returned.
type DeleteFailedError struct {
	Path string
}

func (e DeleteFailedError) Error() string {
	return "delete failed"
}
