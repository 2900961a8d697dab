package internal

import (
	"regexp"
	"strings"
)

var colonSpaces = regexp.MustCompile(": +")

// TrimLines collapses a multi-line JSON literal into the compact form
// produced by json.Marshal. Used to write readable expectations in tests.
func TrimLines(s string) string {
	trimmed := colonSpaces.ReplaceAllString(s, ":")
	trimmed = strings.ReplaceAll(trimmed, "\n", "")
	trimmed = strings.ReplaceAll(trimmed, "\t", "")
	trimmed = strings.TrimSpace(trimmed)
	return trimmed
}

func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
