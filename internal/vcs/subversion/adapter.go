// Package subversion implements the vcs.Adapter contract on top of the svn command-line client.
//
// Repositories are expected to follow the trunk/branches/tags layout; each of
// the three locations can be overridden through vcs.Configuration.
package subversion

import (
	"context"
	"errors"
	"regexp"

	"go.uber.org/zap"

	"github.com/niels-nijens/chrono/internal/execshell"
	"github.com/niels-nijens/chrono/internal/vcs"
)

// NameConstant identifies this adapter in configuration and logs.
const NameConstant = "subversion"

// RepositoryURLPatternConstant matches URLs that can only refer to a Subversion repository.
const RepositoryURLPatternConstant = `(?i)(^svn://|^svn\+ssh://|svn\.)`

const (
	repositoryURLRequiredMessageConstant  = "subversion adapter requires a repository URL"
	processExecutorMissingMessageConstant = "subversion adapter requires a process executor"
	subversionVersionFlagConstant         = "--version"
	subversionInfoSubcommandConstant      = "info"
	subversionListSubcommandConstant      = "ls"
	subversionSwitchSubcommandConstant    = "switch"
	subversionCheckoutSubcommandConstant  = "checkout"
	subversionNonInteractiveFlagConstant  = "--non-interactive"
	subversionVerboseFlagConstant         = "--verbose"
	clientUnavailableLogMessageConstant   = "subversion client unavailable"
	listingFailedLogMessageConstant       = "subversion listing failed"
	listingParsedLogMessageConstant       = "subversion listing parsed"
	versionUnresolvedLogMessageConstant   = "version not found in trunk, branches or tags"
	directoryMissingLogMessageConstant    = "repository directory not configured"
	logFieldRepositoryURLConstant         = "repository_url"
	logFieldListingURLConstant            = "listing_url"
	logFieldEntryCountConstant            = "entries"
	logFieldVersionConstant               = "version"
	logFieldAdapterConstant               = "adapter"
)

// ErrRepositoryURLRequired indicates that the configuration lacked a repository URL.
var ErrRepositoryURLRequired = errors.New(repositoryURLRequiredMessageConstant)

// ErrProcessExecutorNotConfigured indicates that NewAdapter received a nil executor.
var ErrProcessExecutorNotConfigured = errors.New(processExecutorMissingMessageConstant)

var repositoryURLPattern = regexp.MustCompile(RepositoryURLPatternConstant)

// Adapter drives the svn client for one repository.
type Adapter struct {
	configuration   vcs.Configuration
	processExecutor vcs.ProcessExecutor
	logger          *zap.Logger
}

// NewAdapter constructs an Adapter. Empty layout paths fall back to trunk, branches and tags.
func NewAdapter(configuration vcs.Configuration, processExecutor vcs.ProcessExecutor, logger *zap.Logger) (*Adapter, error) {
	normalizedConfiguration := configuration.WithDefaults()
	if len(normalizedConfiguration.RepositoryURL) == 0 {
		return nil, ErrRepositoryURLRequired
	}
	if processExecutor == nil {
		return nil, ErrProcessExecutorNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Adapter{
		configuration:   normalizedConfiguration,
		processExecutor: processExecutor,
		logger:          logger.With(zap.String(logFieldAdapterConstant, NameConstant), zap.String(logFieldRepositoryURLConstant, normalizedConfiguration.RepositoryURL)),
	}, nil
}

// SupportsRepository requires a working svn client, then accepts Subversion-specific URLs
// outright and probes every other URL with `svn info`.
func (adapter *Adapter) SupportsRepository(executionContext context.Context) bool {
	versionResult := adapter.run(executionContext, execshell.CommandDetails{
		Arguments: []string{subversionVersionFlagConstant},
	})
	if !versionResult.Successful {
		adapter.logger.Debug(clientUnavailableLogMessageConstant)
		return false
	}

	if repositoryURLPattern.MatchString(adapter.configuration.RepositoryURL) {
		return true
	}

	infoResult := adapter.run(executionContext, execshell.CommandDetails{
		Arguments: []string{subversionInfoSubcommandConstant, subversionNonInteractiveFlagConstant, adapter.configuration.RepositoryURL},
	})
	return infoResult.Successful
}

// GetBranches lists trunk, exposed as master, followed by every directory under the branches
// location. A later entry replaces an earlier one with the same revision.
func (adapter *Adapter) GetBranches(executionContext context.Context) vcs.Versions {
	branches := vcs.Versions{}

	for _, entry := range adapter.list(executionContext, adapter.configuration.TrunkPath) {
		if entry.IsSelfEntry() {
			branches[entry.RevisionKey()] = vcs.MasterVersionConstant
		}
	}

	for _, entry := range adapter.list(executionContext, adapter.configuration.BranchesPath) {
		branches[entry.RevisionKey()] = entry.Name
	}

	return branches
}

// GetTags lists every directory under the tags location.
func (adapter *Adapter) GetTags(executionContext context.Context) vcs.Versions {
	tags := vcs.Versions{}
	for _, entry := range adapter.list(executionContext, adapter.configuration.TagsPath) {
		tags[entry.RevisionKey()] = entry.Name
	}
	return tags
}

// Checkout switches an existing working copy to version, or checks version out into the
// repository directory when it is absent or not a working copy.
func (adapter *Adapter) Checkout(executionContext context.Context, version string) bool {
	repositoryDirectory := adapter.configuration.RepositoryDirectory
	if len(repositoryDirectory) == 0 {
		adapter.logger.Warn(directoryMissingLogMessageConstant, zap.String(logFieldVersionConstant, version))
		return false
	}

	versionURL, resolved := adapter.ResolveVersionURL(executionContext, version)
	if !resolved {
		adapter.logger.Debug(versionUnresolvedLogMessageConstant, zap.String(logFieldVersionConstant, version))
		return false
	}

	if adapter.isWorkingCopy(executionContext, repositoryDirectory) {
		return adapter.run(executionContext, execshell.CommandDetails{
			Arguments:        []string{subversionSwitchSubcommandConstant, subversionNonInteractiveFlagConstant, versionURL},
			WorkingDirectory: repositoryDirectory,
		}).Successful
	}

	return adapter.run(executionContext, execshell.CommandDetails{
		Arguments: []string{subversionCheckoutSubcommandConstant, subversionNonInteractiveFlagConstant, versionURL, repositoryDirectory},
	}).Successful
}

// ResolveVersionURL maps version to its remote location. master and the trunk path win over
// branches, which win over tags.
func (adapter *Adapter) ResolveVersionURL(executionContext context.Context, version string) (string, bool) {
	configuration := adapter.configuration
	switch {
	case version == vcs.MasterVersionConstant || version == configuration.TrunkPath:
		return configuration.RepositoryPath(configuration.TrunkPath), true
	case adapter.GetBranches(executionContext).Contains(version):
		return configuration.RepositoryPath(configuration.BranchesPath, version), true
	case adapter.GetTags(executionContext).Contains(version):
		return configuration.RepositoryPath(configuration.TagsPath, version), true
	default:
		return "", false
	}
}

func (adapter *Adapter) isWorkingCopy(executionContext context.Context, directory string) bool {
	if !adapter.processExecutor.IsDirectory(directory) {
		return false
	}
	return adapter.run(executionContext, execshell.CommandDetails{
		Arguments:        []string{subversionInfoSubcommandConstant, subversionNonInteractiveFlagConstant},
		WorkingDirectory: directory,
	}).Successful
}

func (adapter *Adapter) list(executionContext context.Context, layoutPath string) []ListingEntry {
	listingURL := adapter.configuration.RepositoryPath(layoutPath)
	listingResult := adapter.run(executionContext, execshell.CommandDetails{
		Arguments: []string{subversionListSubcommandConstant, subversionNonInteractiveFlagConstant, subversionVerboseFlagConstant, listingURL},
	})
	if !listingResult.Successful {
		adapter.logger.Debug(listingFailedLogMessageConstant, zap.String(logFieldListingURLConstant, listingURL))
		return nil
	}

	entries := make([]ListingEntry, 0)
	for _, outputLine := range listingResult.OutputLines() {
		entry, matched := ParseListingLine(outputLine)
		if !matched {
			continue
		}
		entries = append(entries, entry)
	}

	adapter.logger.Debug(listingParsedLogMessageConstant, zap.String(logFieldListingURLConstant, listingURL), zap.Int(logFieldEntryCountConstant, len(entries)))
	return entries
}

func (adapter *Adapter) run(executionContext context.Context, details execshell.CommandDetails) execshell.ProcessResult {
	return adapter.processExecutor.Execute(executionContext, execshell.ShellCommand{Name: execshell.CommandSubversion, Details: details})
}
