package subversion

import (
	"regexp"
	"strconv"
)

// ListingEntryPatternConstant matches a directory entry of `svn ls --verbose` output and captures
// its revision number and name. File entries lack the trailing slash and never match.
const ListingEntryPatternConstant = `^(?:\s+)?(\d+).*\s(\S+)/$`

const (
	listingRevisionGroupIndexConstant = 1
	listingNameGroupIndexConstant     = 2
	listingSelfEntryNameConstant      = "."
	revisionNumberBaseConstant        = 10
	revisionNumberBitSizeConstant     = 64
)

var listingEntryPattern = regexp.MustCompile(ListingEntryPatternConstant)

// ListingEntry is a directory found in a verbose listing.
type ListingEntry struct {
	Revision uint64
	Name     string
}

// RevisionKey renders the revision as the key used in vcs.Versions.
func (entry ListingEntry) RevisionKey() string {
	return strconv.FormatUint(entry.Revision, revisionNumberBaseConstant)
}

// IsSelfEntry reports whether the entry is the listed directory itself.
func (entry ListingEntry) IsSelfEntry() bool {
	return entry.Name == listingSelfEntryNameConstant
}

// ParseListingLine extracts the revision and directory name from one line of `svn ls --verbose`
// output. The second return value is false when the line does not describe a directory.
func ParseListingLine(line string) (ListingEntry, bool) {
	matches := listingEntryPattern.FindStringSubmatch(line)
	if matches == nil {
		return ListingEntry{}, false
	}

	revision, parseError := strconv.ParseUint(matches[listingRevisionGroupIndexConstant], revisionNumberBaseConstant, revisionNumberBitSizeConstant)
	if parseError != nil {
		return ListingEntry{}, false
	}

	return ListingEntry{Revision: revision, Name: matches[listingNameGroupIndexConstant]}, true
}
