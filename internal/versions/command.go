// Package versions provides the commands that inspect and check out repository versions.
package versions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/niels-nijens/chrono/internal/filesystem"
	"github.com/niels-nijens/chrono/internal/repository"
	"github.com/niels-nijens/chrono/internal/utils"
	flagutils "github.com/niels-nijens/chrono/internal/utils/flags"
	pathutils "github.com/niels-nijens/chrono/internal/utils/path"
	"github.com/niels-nijens/chrono/internal/vcs"
)

const (
	supportsCommandUseConstant              = "supports <repository-url>"
	supportsCommandShortDescriptionConstant = "Report which adapter handles a repository"
	supportsCommandLongDescriptionConstant  = "supports probes the repository URL with every available adapter, Git first and Subversion second, and prints the first one that accepts it."
	supportsCommandExampleConstant          = "chrono supports svn://svn.example.org/project"
	branchesCommandUseConstant              = "branches <repository-url>"
	branchesCommandShortDescriptionConstant = "List repository branches"
	branchesCommandLongDescriptionConstant  = "branches prints every branch of the repository with the revision it was last changed in. Subversion trunk is listed as master."
	branchesCommandExampleConstant          = "chrono branches https://svn.example.org/project --output yaml"
	tagsCommandUseConstant                  = "tags <repository-url>"
	tagsCommandShortDescriptionConstant     = "List repository tags"
	tagsCommandLongDescriptionConstant      = "tags prints every tag of the repository with the revision it was created in."
	tagsCommandExampleConstant              = "chrono tags git@github.com:example/project.git"
	checkoutCommandUseConstant              = "checkout <repository-url> <version>"
	checkoutCommandShortDescriptionConstant = "Check out a branch or tag"
	checkoutCommandLongDescriptionConstant  = "checkout materializes a branch or tag in the target directory. An existing working copy is switched in place; anything else receives a fresh checkout."
	checkoutCommandExampleConstant          = "chrono checkout svn://svn.example.org/project release-1.2 --directory ~/src/project"

	adapterFlagNameConstant       = "adapter"
	adapterFlagDescription        = "Adapter used for the repository."
	trunkPathFlagNameConstant     = "trunk-path"
	trunkPathFlagUsageConstant    = "Subversion trunk location relative to the repository URL."
	branchesPathFlagNameConstant  = "branches-path"
	branchesPathFlagUsageConstant = "Subversion branches location relative to the repository URL."
	tagsPathFlagNameConstant      = "tags-path"
	tagsPathFlagUsageConstant     = "Subversion tags location relative to the repository URL."
	outputFlagNameConstant        = "output"
	outputFlagDescription         = "Listing format."
	directoryFlagNameConstant     = "directory"
	directoryFlagUsageConstant    = "Directory the version is checked out into."

	supportedMessageTemplateConstant   = "SUPPORTED: %s (%s)"
	checkedOutMessageTemplateConstant  = "CHECKED OUT: %s@%s -> %s"
	suggestionsErrorTemplateConstant   = "%w; did you mean: %s"
	suggestionSeparatorConstant        = ", "
	repositoryURLRequiredMessage       = "repository URL must be provided"
	versionRequiredMessage             = "version must be provided"
	commandStartedLogMessageConstant   = "repository command started"
	logFieldCommandConstant            = "command"
	logFieldRepositoryURLConstant      = "repository_url"
	logFieldConfigurationFileConstant  = "config_file"
	maximumSuggestionCountConstant     = 5
	singleArgumentCountConstant        = 1
	checkoutArgumentCountConstant      = 2
	versionArgumentIndexConstant       = 1
	repositoryURLArgumentIndexConstant = 0
)

// ErrRepositoryURLRequired indicates an empty repository URL argument.
var ErrRepositoryURLRequired = errors.New(repositoryURLRequiredMessage)

// ErrVersionRequired indicates an empty version argument.
var ErrVersionRequired = errors.New(versionRequiredMessage)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the supports, branches, tags and checkout commands.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	ProcessExecutor              vcs.ProcessExecutor
	AdapterFactories             []repository.AdapterFactory
	DirectoryResolver            *pathutils.DirectoryResolver
}

// Build constructs every version command.
func (builder *CommandBuilder) Build() ([]*cobra.Command, error) {
	return []*cobra.Command{
		builder.BuildSupportsCommand(),
		builder.BuildBranchesCommand(),
		builder.BuildTagsCommand(),
		builder.BuildCheckoutCommand(),
	}, nil
}

// BuildSupportsCommand constructs the supports command.
func (builder *CommandBuilder) BuildSupportsCommand() *cobra.Command {
	command := &cobra.Command{
		Use:     supportsCommandUseConstant,
		Short:   supportsCommandShortDescriptionConstant,
		Long:    supportsCommandLongDescriptionConstant,
		Example: supportsCommandExampleConstant,
		Args:    cobra.ExactArgs(singleArgumentCountConstant),
		RunE:    builder.runSupports,
	}
	builder.bindRepositoryFlags(command)
	return command
}

// BuildBranchesCommand constructs the branches command.
func (builder *CommandBuilder) BuildBranchesCommand() *cobra.Command {
	command := &cobra.Command{
		Use:     branchesCommandUseConstant,
		Short:   branchesCommandShortDescriptionConstant,
		Long:    branchesCommandLongDescriptionConstant,
		Example: branchesCommandExampleConstant,
		Args:    cobra.ExactArgs(singleArgumentCountConstant),
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.runListing(command, arguments, (*repository.Repository).GetBranches)
		},
	}
	builder.bindRepositoryFlags(command)
	builder.bindOutputFlag(command)
	return command
}

// BuildTagsCommand constructs the tags command.
func (builder *CommandBuilder) BuildTagsCommand() *cobra.Command {
	command := &cobra.Command{
		Use:     tagsCommandUseConstant,
		Short:   tagsCommandShortDescriptionConstant,
		Long:    tagsCommandLongDescriptionConstant,
		Example: tagsCommandExampleConstant,
		Args:    cobra.ExactArgs(singleArgumentCountConstant),
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.runListing(command, arguments, (*repository.Repository).GetTags)
		},
	}
	builder.bindRepositoryFlags(command)
	builder.bindOutputFlag(command)
	return command
}

// BuildCheckoutCommand constructs the checkout command.
func (builder *CommandBuilder) BuildCheckoutCommand() *cobra.Command {
	command := &cobra.Command{
		Use:     checkoutCommandUseConstant,
		Short:   checkoutCommandShortDescriptionConstant,
		Long:    checkoutCommandLongDescriptionConstant,
		Example: checkoutCommandExampleConstant,
		Args:    cobra.ExactArgs(checkoutArgumentCountConstant),
		RunE:    builder.runCheckout,
	}
	builder.bindRepositoryFlags(command)
	command.Flags().String(directoryFlagNameConstant, "", directoryFlagUsageConstant)
	return command
}

func (builder *CommandBuilder) runSupports(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration(command)
	repositoryURL, urlError := repositoryURLArgument(arguments)
	if urlError != nil {
		return urlError
	}

	repositoryInstance, repositoryError := builder.newRepository(command, configuration, repositoryURL, "")
	if repositoryError != nil {
		return repositoryError
	}

	adapterName, selectionError := repositoryInstance.AdapterName(command.Context())
	if selectionError != nil {
		return selectionError
	}

	fmt.Fprintln(command.OutOrStdout(), fmt.Sprintf(supportedMessageTemplateConstant, repositoryInstance.Configuration().RepositoryURL, adapterName))
	return nil
}

type listingOperation func(repositoryInstance *repository.Repository, executionContext context.Context) (vcs.Versions, error)

func (builder *CommandBuilder) runListing(command *cobra.Command, arguments []string, operation listingOperation) error {
	configuration := builder.resolveConfiguration(command)
	outputFormat, formatError := ParseOutputFormat(configuration.Output)
	if formatError != nil {
		return formatError
	}

	repositoryURL, urlError := repositoryURLArgument(arguments)
	if urlError != nil {
		return urlError
	}

	repositoryInstance, repositoryError := builder.newRepository(command, configuration, repositoryURL, "")
	if repositoryError != nil {
		return repositoryError
	}

	listing, listingError := operation(repositoryInstance, command.Context())
	if listingError != nil {
		return listingError
	}

	return WriteListing(command.OutOrStdout(), listing, outputFormat)
}

func (builder *CommandBuilder) runCheckout(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration(command)
	repositoryURL, urlError := repositoryURLArgument(arguments)
	if urlError != nil {
		return urlError
	}

	version := strings.TrimSpace(arguments[versionArgumentIndexConstant])
	if len(version) == 0 {
		return ErrVersionRequired
	}

	directory, directoryError := builder.resolveDirectoryResolver().Resolve(configuration.Directory)
	if directoryError != nil {
		return directoryError
	}

	repositoryInstance, repositoryError := builder.newRepository(command, configuration, repositoryURL, directory)
	if repositoryError != nil {
		return repositoryError
	}

	checkoutError := repositoryInstance.Checkout(command.Context(), version)
	if checkoutError != nil {
		if errors.Is(checkoutError, repository.ErrCheckoutFailed) {
			return withSuggestions(command, repositoryInstance, version, checkoutError)
		}
		return checkoutError
	}

	fmt.Fprintln(command.OutOrStdout(), fmt.Sprintf(checkedOutMessageTemplateConstant, repositoryInstance.Configuration().RepositoryURL, version, directory))
	return nil
}

func withSuggestions(command *cobra.Command, repositoryInstance *repository.Repository, version string, checkoutError error) error {
	branches, branchesError := repositoryInstance.GetBranches(command.Context())
	if branchesError != nil {
		return checkoutError
	}
	tags, tagsError := repositoryInstance.GetTags(command.Context())
	if tagsError != nil {
		return checkoutError
	}

	suggestions := vcs.SuggestVersions(version, maximumSuggestionCountConstant, branches, tags)
	if len(suggestions) == 0 {
		return checkoutError
	}
	return fmt.Errorf(suggestionsErrorTemplateConstant, checkoutError, strings.Join(suggestions, suggestionSeparatorConstant))
}

func (builder *CommandBuilder) newRepository(command *cobra.Command, configuration CommandConfiguration, repositoryURL string, directory string) (*repository.Repository, error) {
	logger := builder.resolveLogger()

	configurationFile, _ := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context())
	logger.Debug(
		commandStartedLogMessageConstant,
		zap.String(logFieldCommandConstant, command.Name()),
		zap.String(logFieldRepositoryURLConstant, repositoryURL),
		zap.String(logFieldConfigurationFileConstant, configurationFile),
	)

	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	processExecutor, executorError := ResolveProcessExecutor(builder.ProcessExecutor, logger, humanReadableLogging, configuration.CommandTimeout)
	if executorError != nil {
		return nil, executorError
	}

	return repository.NewRepository(
		repository.Dependencies{
			ProcessExecutor:  processExecutor,
			Logger:           logger,
			AdapterFactories: builder.AdapterFactories,
		},
		repository.Options{
			Configuration: configuration.RepositoryConfiguration(repositoryURL, directory),
			AdapterName:   configuration.Adapter,
		},
	)
}

func (builder *CommandBuilder) bindRepositoryFlags(command *cobra.Command) {
	adapterChoices := flagutils.NewChoiceSet(repository.AutomaticAdapterNameConstant, append([]string{repository.AutomaticAdapterNameConstant}, repository.AdapterNames(builder.resolveAdapterFactories())...)...)
	command.Flags().String(adapterFlagNameConstant, "", adapterChoices.Usage(adapterFlagDescription))
	command.Flags().String(trunkPathFlagNameConstant, "", trunkPathFlagUsageConstant)
	command.Flags().String(branchesPathFlagNameConstant, "", branchesPathFlagUsageConstant)
	command.Flags().String(tagsPathFlagNameConstant, "", tagsPathFlagUsageConstant)
}

func (builder *CommandBuilder) bindOutputFlag(command *cobra.Command) {
	command.Flags().String(outputFlagNameConstant, "", outputFormatChoices.Usage(outputFlagDescription))
}

func (builder *CommandBuilder) resolveConfiguration(command *cobra.Command) CommandConfiguration {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	overrides := map[string]*string{
		adapterFlagNameConstant:      &configuration.Adapter,
		trunkPathFlagNameConstant:    &configuration.TrunkPath,
		branchesPathFlagNameConstant: &configuration.BranchesPath,
		tagsPathFlagNameConstant:     &configuration.TagsPath,
		outputFlagNameConstant:       &configuration.Output,
		directoryFlagNameConstant:    &configuration.Directory,
	}
	for flagName, target := range overrides {
		flag := command.Flags().Lookup(flagName)
		if flag == nil || !flag.Changed {
			continue
		}
		*target = flag.Value.String()
	}

	return configuration.Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveAdapterFactories() []repository.AdapterFactory {
	if len(builder.AdapterFactories) == 0 {
		return repository.DefaultAdapterFactories()
	}
	return builder.AdapterFactories
}

func (builder *CommandBuilder) resolveDirectoryResolver() *pathutils.DirectoryResolver {
	if builder.DirectoryResolver != nil {
		return builder.DirectoryResolver
	}
	return pathutils.NewDirectoryResolver(nil, filesystem.OSFileSystem{}.Abs)
}

func repositoryURLArgument(arguments []string) (string, error) {
	if len(arguments) <= repositoryURLArgumentIndexConstant {
		return "", ErrRepositoryURLRequired
	}
	repositoryURL := strings.TrimSpace(arguments[repositoryURLArgumentIndexConstant])
	if len(repositoryURL) == 0 {
		return "", ErrRepositoryURLRequired
	}
	return repositoryURL, nil
}
