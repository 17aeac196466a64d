// Package rootdir resolves the directory that numbered subdirectories are
// created under, and derives its seed counter from the directory's name.
package rootdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrNoName is wrapped by PathError when a path has no usable final component.
var ErrNoName = errors.New("path has no directory name")

// PathError reports a root path that could not be created, canonicalized or named.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("root %q: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// ParseError reports a directory name whose leading "_"-delimited segment is
// not a non-negative integer.
type ParseError struct {
	Name    string
	Segment string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("directory name %q: leading segment %q is not a counter: %v", e.Name, e.Segment, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Root is a resolved root directory.
type Root struct {
	Path    string // canonical absolute path
	Name    string // final path component, the storage key
	Initial int64  // counter parsed from Name
	Created bool   // true if Resolve had to create the directory
}

// Resolve creates path if it does not exist, canonicalizes it and parses the
// seed counter from its base name. An empty path means the current directory.
func Resolve(path string) (Root, error) {
	if path == "" {
		path = "."
	}

	var created bool
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if !info.IsDir() {
			return Root{}, &PathError{Path: path, Err: errors.New("not a directory")}
		}
	case os.IsNotExist(err):
		if err := os.MkdirAll(path, 0o755); err != nil {
			return Root{}, &PathError{Path: path, Err: err}
		}
		created = true
	default:
		return Root{}, &PathError{Path: path, Err: err}
	}

	abs, err := Canonicalize(path)
	if err != nil {
		return Root{}, err
	}

	name, err := BaseName(abs)
	if err != nil {
		return Root{}, err
	}

	initial, err := ParseLeadingNumber(name)
	if err != nil {
		return Root{}, err
	}

	return Root{Path: abs, Name: name, Initial: initial, Created: created}, nil
}

// Canonicalize returns the absolute path with symlinks resolved.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &PathError{Path: path, Err: err}
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", &PathError{Path: path, Err: err}
	}
	return resolved, nil
}

// BaseName returns the final component of an absolute path. The filesystem
// root has none.
func BaseName(abs string) (string, error) {
	base := filepath.Base(abs)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "", &PathError{Path: abs, Err: ErrNoName}
	}
	return base, nil
}

// ParseLeadingNumber splits name on "_" and parses the first segment as a
// non-negative integer, e.g. "00042_myproject" -> 42. A name without "_" is
// rejected.
func ParseLeadingNumber(name string) (int64, error) {
	segment, _, found := strings.Cut(name, "_")
	if !found {
		return 0, &ParseError{Name: name, Segment: segment, Err: errors.New(`missing "_" separator`)}
	}
	if segment == "" {
		return 0, &ParseError{Name: name, Segment: segment, Err: errors.New("empty segment")}
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return 0, &ParseError{Name: name, Segment: segment, Err: errors.New("not all digits")}
		}
	}
	n, err := strconv.ParseInt(segment, 10, 64)
	if err != nil {
		return 0, &ParseError{Name: name, Segment: segment, Err: err}
	}
	return n, nil
}
