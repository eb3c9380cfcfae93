package pathutils

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	directoryRequiredMessageConstant       = "directory must be provided"
	absoluteDirectoryErrorTemplateConstant = "resolve directory %s: %w"
)

// ErrDirectoryRequired indicates that an empty directory was supplied.
var ErrDirectoryRequired = errors.New(directoryRequiredMessageConstant)

// AbsolutePathResolver converts a path into an absolute path.
type AbsolutePathResolver func(path string) (string, error)

// DirectoryResolver turns user-supplied checkout directories into clean absolute paths.
type DirectoryResolver struct {
	homeExpander     *HomeExpander
	absoluteResolver AbsolutePathResolver
}

// NewDirectoryResolver constructs a DirectoryResolver. Nil collaborators fall back to the
// operating system lookups.
func NewDirectoryResolver(homeExpander *HomeExpander, absoluteResolver AbsolutePathResolver) *DirectoryResolver {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	if absoluteResolver == nil {
		absoluteResolver = filepath.Abs
	}
	return &DirectoryResolver{homeExpander: homeExpander, absoluteResolver: absoluteResolver}
}

// Resolve trims candidate, expands a leading tilde and makes the result absolute.
func (resolver *DirectoryResolver) Resolve(candidate string) (string, error) {
	trimmedCandidate := strings.TrimSpace(candidate)
	if len(trimmedCandidate) == 0 {
		return "", ErrDirectoryRequired
	}

	expandedPath := resolver.homeExpander.Expand(trimmedCandidate)
	absolutePath, absoluteError := resolver.absoluteResolver(filepath.Clean(expandedPath))
	if absoluteError != nil {
		return "", fmt.Errorf(absoluteDirectoryErrorTemplateConstant, trimmedCandidate, absoluteError)
	}
	return absolutePath, nil
}
