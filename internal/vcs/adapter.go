package vcs

import (
	"context"
	"sort"
	"strings"

	"github.com/niels-nijens/chrono/internal/execshell"
)

const (
	// MasterVersionConstant is the version name under which trunk is exposed.
	MasterVersionConstant = "master"
	// DefaultTrunkPathConstant is the conventional trunk location.
	DefaultTrunkPathConstant = "trunk"
	// DefaultBranchesPathConstant is the conventional branches location.
	DefaultBranchesPathConstant = "branches"
	// DefaultTagsPathConstant is the conventional tags location.
	DefaultTagsPathConstant = "tags"

	urlPathSeparatorConstant = "/"
)

// Adapter is implemented by each supported version-control system.
type Adapter interface {
	// SupportsRepository reports whether this adapter can operate on the configured repository.
	SupportsRepository(executionContext context.Context) bool
	// GetBranches lists the branches of the repository, keyed by revision.
	GetBranches(executionContext context.Context) Versions
	// GetTags lists the tags of the repository, keyed by revision.
	GetTags(executionContext context.Context) Versions
	// Checkout materializes version in the configured repository directory.
	Checkout(executionContext context.Context, version string) bool
}

// ProcessExecutor runs external tools on behalf of an Adapter.
type ProcessExecutor interface {
	Execute(executionContext context.Context, command execshell.ShellCommand) execshell.ProcessResult
	IsDirectory(path string) bool
}

// Versions maps a revision identifier to a branch or tag name.
type Versions map[string]string

// Contains reports whether name is one of the mapped names.
func (versions Versions) Contains(name string) bool {
	for _, versionName := range versions {
		if versionName == name {
			return true
		}
	}
	return false
}

// Names returns the distinct mapped names in lexical order.
func (versions Versions) Names() []string {
	seenNames := make(map[string]struct{}, len(versions))
	names := make([]string, 0, len(versions))
	for _, versionName := range versions {
		if _, seen := seenNames[versionName]; seen {
			continue
		}
		seenNames[versionName] = struct{}{}
		names = append(names, versionName)
	}
	sort.Strings(names)
	return names
}

// Configuration locates a repository and the local directory it is checked out into.
type Configuration struct {
	RepositoryURL       string
	RepositoryDirectory string
	TrunkPath           string
	BranchesPath        string
	TagsPath            string
}

// WithDefaults returns a copy with empty layout paths replaced by the conventional layout and
// surrounding slashes removed from every path segment.
func (configuration Configuration) WithDefaults() Configuration {
	configuration.RepositoryURL = strings.TrimRight(strings.TrimSpace(configuration.RepositoryURL), urlPathSeparatorConstant)
	configuration.RepositoryDirectory = strings.TrimSpace(configuration.RepositoryDirectory)
	configuration.TrunkPath = layoutSegment(configuration.TrunkPath, DefaultTrunkPathConstant)
	configuration.BranchesPath = layoutSegment(configuration.BranchesPath, DefaultBranchesPathConstant)
	configuration.TagsPath = layoutSegment(configuration.TagsPath, DefaultTagsPathConstant)
	return configuration
}

// RepositoryPath joins the repository URL with the given path segments.
func (configuration Configuration) RepositoryPath(segments ...string) string {
	joined := configuration.RepositoryURL
	for _, segment := range segments {
		joined += urlPathSeparatorConstant + segment
	}
	return joined
}

func layoutSegment(value string, fallback string) string {
	trimmed := strings.Trim(strings.TrimSpace(value), urlPathSeparatorConstant)
	if len(trimmed) == 0 {
		return fallback
	}
	return trimmed
}
