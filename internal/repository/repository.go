// Package repository selects the version-control adapter that supports a repository URL and
// forwards listing and checkout requests to it.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/niels-nijens/chrono/internal/vcs"
	"github.com/niels-nijens/chrono/internal/vcs/git"
	"github.com/niels-nijens/chrono/internal/vcs/subversion"
)

// AutomaticAdapterNameConstant selects the first supporting adapter.
const AutomaticAdapterNameConstant = "auto"

const (
	processExecutorMissingMessageConstant = "repository requires a process executor"
	noSupportingAdapterMessageConstant    = "no adapter supports repository"
	unknownAdapterMessageConstant         = "unknown adapter"
	checkoutFailedMessageConstant         = "checkout failed"
	noSupportingAdapterTemplateConstant   = "%w: %s"
	unknownAdapterTemplateConstant        = "%w %q"
	adapterCreationTemplateConstant       = "create %s adapter: %w"
	checkoutFailedTemplateConstant        = "%w: %s@%s"
	adapterSelectedLogMessageConstant     = "adapter selected"
	adapterRejectedLogMessageConstant     = "adapter does not support repository"
	logFieldAdapterConstant               = "adapter"
	logFieldRepositoryURLConstant         = "repository_url"
)

// ErrProcessExecutorNotConfigured indicates that NewRepository received no process executor.
var ErrProcessExecutorNotConfigured = errors.New(processExecutorMissingMessageConstant)

// ErrNoSupportingAdapter indicates that every candidate adapter rejected the repository.
var ErrNoSupportingAdapter = errors.New(noSupportingAdapterMessageConstant)

// ErrUnknownAdapter indicates that the requested adapter name is not registered.
var ErrUnknownAdapter = errors.New(unknownAdapterMessageConstant)

// ErrCheckoutFailed indicates that the selected adapter could not check out the version.
var ErrCheckoutFailed = errors.New(checkoutFailedMessageConstant)

// AdapterBuilder constructs an adapter for a configuration.
type AdapterBuilder func(configuration vcs.Configuration, processExecutor vcs.ProcessExecutor, logger *zap.Logger) (vcs.Adapter, error)

// AdapterFactory names an AdapterBuilder.
type AdapterFactory struct {
	Name  string
	Build AdapterBuilder
}

// DefaultAdapterFactories returns the built-in adapters in probing order.
func DefaultAdapterFactories() []AdapterFactory {
	return []AdapterFactory{
		{
			Name: git.NameConstant,
			Build: func(configuration vcs.Configuration, processExecutor vcs.ProcessExecutor, logger *zap.Logger) (vcs.Adapter, error) {
				return git.NewAdapter(configuration, processExecutor, logger)
			},
		},
		{
			Name: subversion.NameConstant,
			Build: func(configuration vcs.Configuration, processExecutor vcs.ProcessExecutor, logger *zap.Logger) (vcs.Adapter, error) {
				return subversion.NewAdapter(configuration, processExecutor, logger)
			},
		},
	}
}

// AdapterNames lists the names of factories in order.
func AdapterNames(factories []AdapterFactory) []string {
	names := make([]string, 0, len(factories))
	for _, factory := range factories {
		names = append(names, factory.Name)
	}
	return names
}

// Dependencies enumerates collaborators required by a Repository.
type Dependencies struct {
	ProcessExecutor  vcs.ProcessExecutor
	Logger           *zap.Logger
	AdapterFactories []AdapterFactory
}

// Options configure a Repository.
type Options struct {
	Configuration vcs.Configuration
	AdapterName   string
}

// Repository resolves and memoizes the adapter for one repository.
type Repository struct {
	configuration   vcs.Configuration
	processExecutor vcs.ProcessExecutor
	logger          *zap.Logger
	candidates      []AdapterFactory

	selectionMutex  sync.Mutex
	selectedAdapter vcs.Adapter
	selectedName    string
}

// NewRepository constructs a Repository. An empty or automatic adapter name probes every
// factory in order; any other name restricts probing to that factory.
func NewRepository(dependencies Dependencies, options Options) (*Repository, error) {
	if dependencies.ProcessExecutor == nil {
		return nil, ErrProcessExecutorNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	factories := dependencies.AdapterFactories
	if len(factories) == 0 {
		factories = DefaultAdapterFactories()
	}

	candidates, candidateError := selectCandidates(factories, options.AdapterName)
	if candidateError != nil {
		return nil, candidateError
	}

	configuration := options.Configuration.WithDefaults()
	return &Repository{
		configuration:   configuration,
		processExecutor: dependencies.ProcessExecutor,
		logger:          logger.With(zap.String(logFieldRepositoryURLConstant, configuration.RepositoryURL)),
		candidates:      candidates,
	}, nil
}

// Configuration returns the normalized configuration the adapters are built with.
func (repository *Repository) Configuration() vcs.Configuration {
	return repository.configuration
}

// Adapter returns the first candidate adapter that supports the repository.
func (repository *Repository) Adapter(executionContext context.Context) (vcs.Adapter, error) {
	repository.selectionMutex.Lock()
	defer repository.selectionMutex.Unlock()

	if repository.selectedAdapter != nil {
		return repository.selectedAdapter, nil
	}

	for _, factory := range repository.candidates {
		adapter, buildError := factory.Build(repository.configuration, repository.processExecutor, repository.logger)
		if buildError != nil {
			return nil, fmt.Errorf(adapterCreationTemplateConstant, factory.Name, buildError)
		}
		if !adapter.SupportsRepository(executionContext) {
			repository.logger.Debug(adapterRejectedLogMessageConstant, zap.String(logFieldAdapterConstant, factory.Name))
			continue
		}

		repository.logger.Debug(adapterSelectedLogMessageConstant, zap.String(logFieldAdapterConstant, factory.Name))
		repository.selectedAdapter = adapter
		repository.selectedName = factory.Name
		return adapter, nil
	}

	return nil, fmt.Errorf(noSupportingAdapterTemplateConstant, ErrNoSupportingAdapter, repository.configuration.RepositoryURL)
}

// AdapterName returns the name of the selected adapter.
func (repository *Repository) AdapterName(executionContext context.Context) (string, error) {
	if _, selectionError := repository.Adapter(executionContext); selectionError != nil {
		return "", selectionError
	}
	repository.selectionMutex.Lock()
	defer repository.selectionMutex.Unlock()
	return repository.selectedName, nil
}

// GetBranches lists branches through the selected adapter.
func (repository *Repository) GetBranches(executionContext context.Context) (vcs.Versions, error) {
	adapter, selectionError := repository.Adapter(executionContext)
	if selectionError != nil {
		return nil, selectionError
	}
	return adapter.GetBranches(executionContext), nil
}

// GetTags lists tags through the selected adapter.
func (repository *Repository) GetTags(executionContext context.Context) (vcs.Versions, error) {
	adapter, selectionError := repository.Adapter(executionContext)
	if selectionError != nil {
		return nil, selectionError
	}
	return adapter.GetTags(executionContext), nil
}

// Checkout checks out version through the selected adapter.
func (repository *Repository) Checkout(executionContext context.Context, version string) error {
	adapter, selectionError := repository.Adapter(executionContext)
	if selectionError != nil {
		return selectionError
	}
	if !adapter.Checkout(executionContext, version) {
		return fmt.Errorf(checkoutFailedTemplateConstant, ErrCheckoutFailed, repository.configuration.RepositoryURL, version)
	}
	return nil
}

func selectCandidates(factories []AdapterFactory, adapterName string) ([]AdapterFactory, error) {
	normalizedName := strings.ToLower(strings.TrimSpace(adapterName))
	if len(normalizedName) == 0 || normalizedName == AutomaticAdapterNameConstant {
		return factories, nil
	}

	for _, factory := range factories {
		if factory.Name == normalizedName {
			return []AdapterFactory{factory}, nil
		}
	}
	return nil, fmt.Errorf(unknownAdapterTemplateConstant, ErrUnknownAdapter, adapterName)
}
