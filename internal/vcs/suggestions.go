package vcs

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// SuggestVersions ranks the names known to the given listings against query and returns at most
// limit of them, best match first. A non-positive limit returns every match.
func SuggestVersions(query string, limit int, listings ...Versions) []string {
	trimmedQuery := strings.TrimSpace(query)
	if len(trimmedQuery) == 0 {
		return nil
	}

	merged := Versions{}
	for _, listing := range listings {
		for revision, versionName := range listing {
			merged[revision+urlPathSeparatorConstant+versionName] = versionName
		}
	}
	candidates := merged.Names()

	matches := fuzzy.Find(trimmedQuery, candidates)
	suggestions := make([]string, 0, len(matches))
	for _, match := range matches {
		if match.Str == trimmedQuery {
			continue
		}
		suggestions = append(suggestions, match.Str)
		if limit > 0 && len(suggestions) == limit {
			break
		}
	}
	return suggestions
}
