package git

import (
	"strings"
)

const (
	referenceFieldSeparatorConstant = "\t"
	headsReferencePrefixConstant    = "refs/heads/"
	tagsReferencePrefixConstant     = "refs/tags/"
	peeledReferenceSuffixConstant   = "^{}"
)

// Reference is a single line of `git ls-remote` output.
type Reference struct {
	ObjectName string
	Name       string
}

// ParseReferenceLine extracts the short name of a reference under prefix. Peeled tag entries and
// references outside prefix do not match.
func ParseReferenceLine(line string, prefix string) (Reference, bool) {
	objectName, referenceName, separated := strings.Cut(strings.TrimSpace(line), referenceFieldSeparatorConstant)
	if !separated {
		return Reference{}, false
	}

	objectName = strings.TrimSpace(objectName)
	referenceName = strings.TrimSpace(referenceName)
	if len(objectName) == 0 || strings.HasSuffix(referenceName, peeledReferenceSuffixConstant) {
		return Reference{}, false
	}

	shortName, hasPrefix := strings.CutPrefix(referenceName, prefix)
	if !hasPrefix || len(shortName) == 0 {
		return Reference{}, false
	}

	return Reference{ObjectName: objectName, Name: shortName}, true
}
