// Package git implements the vcs.Adapter contract on top of the git command-line client.
package git

import (
	"context"
	"errors"
	"regexp"

	"go.uber.org/zap"

	"github.com/niels-nijens/chrono/internal/execshell"
	"github.com/niels-nijens/chrono/internal/vcs"
)

// NameConstant identifies this adapter in configuration and logs.
const NameConstant = "git"

// RepositoryURLPatternConstant matches URLs that can only refer to a Git repository.
const RepositoryURLPatternConstant = `(?i)(^git://|\.git$|^git@|github\.com|gitlab\.com|bitbucket\.org)`

const (
	repositoryURLRequiredMessageConstant  = "git adapter requires a repository URL"
	processExecutorMissingMessageConstant = "git adapter requires a process executor"
	gitVersionFlagConstant                = "--version"
	gitLsRemoteSubcommandConstant         = "ls-remote"
	gitHeadsFlagConstant                  = "--heads"
	gitTagsFlagConstant                   = "--tags"
	gitRevParseSubcommandConstant         = "rev-parse"
	gitInsideWorkTreeFlagConstant         = "--is-inside-work-tree"
	gitFetchSubcommandConstant            = "fetch"
	gitCloneSubcommandConstant            = "clone"
	gitCheckoutSubcommandConstant         = "checkout"
	gitOriginRemoteConstant               = "origin"
	gitTerminalPromptEnvironmentConstant  = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptDisabledConstant     = "0"
	clientUnavailableLogMessageConstant   = "git client unavailable"
	listingFailedLogMessageConstant       = "git reference listing failed"
	versionUnresolvedLogMessageConstant   = "version is neither a branch nor a tag"
	directoryMissingLogMessageConstant    = "repository directory not configured"
	logFieldRepositoryURLConstant         = "repository_url"
	logFieldReferencePrefixConstant       = "reference_prefix"
	logFieldVersionConstant               = "version"
	logFieldAdapterConstant               = "adapter"
)

// ErrRepositoryURLRequired indicates that the configuration lacked a repository URL.
var ErrRepositoryURLRequired = errors.New(repositoryURLRequiredMessageConstant)

// ErrProcessExecutorNotConfigured indicates that NewAdapter received a nil executor.
var ErrProcessExecutorNotConfigured = errors.New(processExecutorMissingMessageConstant)

var repositoryURLPattern = regexp.MustCompile(RepositoryURLPatternConstant)

// Adapter drives the git client for one repository.
type Adapter struct {
	configuration   vcs.Configuration
	processExecutor vcs.ProcessExecutor
	logger          *zap.Logger
}

// NewAdapter constructs an Adapter. The layout paths of configuration are ignored.
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

// SupportsRepository requires a working git client, then accepts Git-specific URLs outright and
// probes every other URL with `git ls-remote`.
func (adapter *Adapter) SupportsRepository(executionContext context.Context) bool {
	if !adapter.run(executionContext, execshell.CommandDetails{Arguments: []string{gitVersionFlagConstant}}).Successful {
		adapter.logger.Debug(clientUnavailableLogMessageConstant)
		return false
	}

	if repositoryURLPattern.MatchString(adapter.configuration.RepositoryURL) {
		return true
	}

	return adapter.run(executionContext, execshell.CommandDetails{
		Arguments: []string{gitLsRemoteSubcommandConstant, gitHeadsFlagConstant, adapter.configuration.RepositoryURL},
	}).Successful
}

// GetBranches lists the remote heads keyed by commit.
func (adapter *Adapter) GetBranches(executionContext context.Context) vcs.Versions {
	return adapter.listReferences(executionContext, gitHeadsFlagConstant, headsReferencePrefixConstant)
}

// GetTags lists the remote tags keyed by the object they point at.
func (adapter *Adapter) GetTags(executionContext context.Context) vcs.Versions {
	return adapter.listReferences(executionContext, gitTagsFlagConstant, tagsReferencePrefixConstant)
}

// Checkout fetches into an existing work tree or clones a fresh one, then checks out version.
// Only known branch and tag names are accepted.
func (adapter *Adapter) Checkout(executionContext context.Context, version string) bool {
	repositoryDirectory := adapter.configuration.RepositoryDirectory
	if len(repositoryDirectory) == 0 {
		adapter.logger.Warn(directoryMissingLogMessageConstant, zap.String(logFieldVersionConstant, version))
		return false
	}

	if !adapter.hasReference(executionContext, gitHeadsFlagConstant, headsReferencePrefixConstant, version) &&
		!adapter.hasReference(executionContext, gitTagsFlagConstant, tagsReferencePrefixConstant, version) {
		adapter.logger.Debug(versionUnresolvedLogMessageConstant, zap.String(logFieldVersionConstant, version))
		return false
	}

	var prepared bool
	if adapter.isWorkTree(executionContext, repositoryDirectory) {
		prepared = adapter.run(executionContext, execshell.CommandDetails{
			Arguments:        []string{gitFetchSubcommandConstant, gitTagsFlagConstant, gitOriginRemoteConstant},
			WorkingDirectory: repositoryDirectory,
		}).Successful
	} else {
		prepared = adapter.run(executionContext, execshell.CommandDetails{
			Arguments: []string{gitCloneSubcommandConstant, adapter.configuration.RepositoryURL, repositoryDirectory},
		}).Successful
	}
	if !prepared {
		return false
	}

	return adapter.run(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitCheckoutSubcommandConstant, version},
		WorkingDirectory: repositoryDirectory,
	}).Successful
}

func (adapter *Adapter) isWorkTree(executionContext context.Context, directory string) bool {
	if !adapter.processExecutor.IsDirectory(directory) {
		return false
	}
	return adapter.run(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitInsideWorkTreeFlagConstant},
		WorkingDirectory: directory,
	}).Successful
}

// listReferences keys names by object, so names sharing a commit keep only the last one listed.
func (adapter *Adapter) listReferences(executionContext context.Context, flag string, prefix string) vcs.Versions {
	versions := vcs.Versions{}
	for _, reference := range adapter.references(executionContext, flag, prefix) {
		versions[reference.ObjectName] = reference.Name
	}
	return versions
}

func (adapter *Adapter) hasReference(executionContext context.Context, flag string, prefix string, name string) bool {
	for _, reference := range adapter.references(executionContext, flag, prefix) {
		if reference.Name == name {
			return true
		}
	}
	return false
}

func (adapter *Adapter) references(executionContext context.Context, flag string, prefix string) []Reference {
	listingResult := adapter.run(executionContext, execshell.CommandDetails{
		Arguments: []string{gitLsRemoteSubcommandConstant, flag, adapter.configuration.RepositoryURL},
	})
	if !listingResult.Successful {
		adapter.logger.Debug(listingFailedLogMessageConstant, zap.String(logFieldReferencePrefixConstant, prefix))
		return nil
	}

	references := make([]Reference, 0, len(listingResult.OutputLines()))
	for _, outputLine := range listingResult.OutputLines() {
		reference, matched := ParseReferenceLine(outputLine, prefix)
		if !matched {
			continue
		}
		references = append(references, reference)
	}
	return references
}

func (adapter *Adapter) run(executionContext context.Context, details execshell.CommandDetails) execshell.ProcessResult {
	details.EnvironmentVariables = map[string]string{gitTerminalPromptEnvironmentConstant: gitTerminalPromptDisabledConstant}
	return adapter.processExecutor.Execute(executionContext, execshell.ShellCommand{Name: execshell.CommandGit, Details: details})
}
