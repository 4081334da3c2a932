// Package format holds display-only transforms. Formatted values are never
// used for lookups; stripping whitespace must recover the stored value.
package format

import (
	"regexp"
	"strings"
)

var idGroups = regexp.MustCompile(`(\d{4})`)

// UniqueID inserts a space after every 4th digit of a numeric patient ID
// for readability, e.g. "1234567891234" -> "1234 5678 9123 4".
func UniqueID(id string) string {
	return strings.TrimSpace(idGroups.ReplaceAllString(id, "$1 "))
}

// StripUniqueID reverses UniqueID by removing all spaces.
func StripUniqueID(id string) string {
	return strings.ReplaceAll(id, " ", "")
}
