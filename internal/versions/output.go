package versions

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	flagutils "github.com/niels-nijens/chrono/internal/utils/flags"
	"github.com/niels-nijens/chrono/internal/vcs"
)

// OutputFormat selects how listings are printed.
type OutputFormat string

// Supported output formats.
const (
	OutputFormatText OutputFormat = "text"
	OutputFormatYAML OutputFormat = "yaml"
)

const (
	unsupportedOutputFormatTemplateConstant = "unsupported output format %q"
	textListingLineTemplateConstant         = "%s %s\n"
	yamlEncodeErrorTemplateConstant         = "encode listing: %w"
	yamlIndentConstant                      = 2
)

var outputFormatChoices = flagutils.NewChoiceSet(string(OutputFormatText), string(OutputFormatText), string(OutputFormatYAML))

// ListingEntry is one revision and the branch or tag name it carries.
type ListingEntry struct {
	Revision string `yaml:"revision"`
	Name     string `yaml:"name"`
}

// SortedEntries orders a listing by name, then by revision.
func SortedEntries(listing vcs.Versions) []ListingEntry {
	entries := make([]ListingEntry, 0, len(listing))
	for revision, name := range listing {
		entries = append(entries, ListingEntry{Revision: revision, Name: name})
	}
	sort.Slice(entries, func(first int, second int) bool {
		if entries[first].Name == entries[second].Name {
			return entries[first].Revision < entries[second].Revision
		}
		return entries[first].Name < entries[second].Name
	})
	return entries
}

// ParseOutputFormat validates a configured or flag-provided output format.
func ParseOutputFormat(value string) (OutputFormat, error) {
	format, supported := outputFormatChoices.Resolve(value)
	if !supported {
		return "", fmt.Errorf(unsupportedOutputFormatTemplateConstant, value)
	}
	return OutputFormat(format), nil
}

// WriteListing prints listing to writer in the requested format.
func WriteListing(writer io.Writer, listing vcs.Versions, format OutputFormat) error {
	entries := SortedEntries(listing)

	if format == OutputFormatYAML {
		encoder := yaml.NewEncoder(writer)
		encoder.SetIndent(yamlIndentConstant)
		if encodeError := encoder.Encode(entries); encodeError != nil {
			return fmt.Errorf(yamlEncodeErrorTemplateConstant, encodeError)
		}
		return encoder.Close()
	}

	for _, entry := range entries {
		if _, writeError := fmt.Fprintf(writer, textListingLineTemplateConstant, entry.Revision, entry.Name); writeError != nil {
			return writeError
		}
	}
	return nil
}
