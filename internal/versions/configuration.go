package versions

import (
	"strings"
	"time"

	"github.com/niels-nijens/chrono/internal/repository"
	"github.com/niels-nijens/chrono/internal/vcs"
)

const (
	adapterConfigurationKeyConstant      = "adapter"
	directoryConfigurationKeyConstant    = "directory"
	trunkPathConfigurationKeyConstant    = "trunk_path"
	branchesPathConfigurationKeyConstant = "branches_path"
	tagsPathConfigurationKeyConstant     = "tags_path"
	outputConfigurationKeyConstant       = "output"
	configurationKeySeparatorConstant    = "."
)

// CommandConfiguration captures the repository settings shared by every version command.
type CommandConfiguration struct {
	Adapter        string        `mapstructure:"adapter"`
	Directory      string        `mapstructure:"directory"`
	TrunkPath      string        `mapstructure:"trunk_path"`
	BranchesPath   string        `mapstructure:"branches_path"`
	TagsPath       string        `mapstructure:"tags_path"`
	Output         string        `mapstructure:"output"`
	CommandTimeout time.Duration `mapstructure:"-"`
}

// DefaultCommandConfiguration provides the conventional repository layout with automatic adapter selection.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Adapter:      repository.AutomaticAdapterNameConstant,
		TrunkPath:    vcs.DefaultTrunkPathConstant,
		BranchesPath: vcs.DefaultBranchesPathConstant,
		TagsPath:     vcs.DefaultTagsPathConstant,
		Output:       string(OutputFormatText),
	}
}

// DefaultConfigurationValues returns the defaults keyed under prefix for the configuration loader.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefixedKey(prefix, adapterConfigurationKeyConstant):      defaults.Adapter,
		prefixedKey(prefix, directoryConfigurationKeyConstant):    defaults.Directory,
		prefixedKey(prefix, trunkPathConfigurationKeyConstant):    defaults.TrunkPath,
		prefixedKey(prefix, branchesPathConfigurationKeyConstant): defaults.BranchesPath,
		prefixedKey(prefix, tagsPathConfigurationKeyConstant):     defaults.TagsPath,
		prefixedKey(prefix, outputConfigurationKeyConstant):       defaults.Output,
	}
}

// Sanitize trims every value and lowercases the adapter and output selectors.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Adapter = strings.ToLower(strings.TrimSpace(configuration.Adapter))
	sanitized.Directory = strings.TrimSpace(configuration.Directory)
	sanitized.TrunkPath = strings.TrimSpace(configuration.TrunkPath)
	sanitized.BranchesPath = strings.TrimSpace(configuration.BranchesPath)
	sanitized.TagsPath = strings.TrimSpace(configuration.TagsPath)
	sanitized.Output = strings.ToLower(strings.TrimSpace(configuration.Output))
	if configuration.CommandTimeout < 0 {
		sanitized.CommandTimeout = 0
	}
	return sanitized
}

// RepositoryConfiguration builds the adapter configuration for repositoryURL.
func (configuration CommandConfiguration) RepositoryConfiguration(repositoryURL string, directory string) vcs.Configuration {
	return vcs.Configuration{
		RepositoryURL:       repositoryURL,
		RepositoryDirectory: directory,
		TrunkPath:           configuration.TrunkPath,
		BranchesPath:        configuration.BranchesPath,
		TagsPath:            configuration.TagsPath,
	}
}

func prefixedKey(prefix string, key string) string {
	trimmedPrefix := strings.TrimSpace(prefix)
	if len(trimmedPrefix) == 0 {
		return key
	}
	return trimmedPrefix + configurationKeySeparatorConstant + key
}
