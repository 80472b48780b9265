// Package docname parses the numeric prefix convention used for source
// documents ("01_title.pdf", "12-title.pdf").
package docname

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var prefixPattern = regexp.MustCompile(`^(\d+)[_\-]`)

// NumberPrefix returns the literal leading digit run of a filename when it
// is followed by "_" or "-". The prefix is the document's bucket-local
// index and is reported verbatim, zero padding included; it is never
// validated for uniqueness. Returns "" when the filename has no prefix.
func NumberPrefix(name string) string {
	match := prefixPattern.FindStringSubmatch(name)
	if match == nil {
		return ""
	}
	return match[1]
}

// PrefixValue returns the numeric value of the filename prefix, or 0 when
// the filename is unprefixed.
func PrefixValue(name string) int {
	prefix := NumberPrefix(name)
	if prefix == "" {
		return 0
	}
	value, err := strconv.Atoi(prefix)
	if err != nil {
		return 0
	}
	return value
}

// Stem returns the filename without its extension.
func Stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
