package utils

import (
	"strconv"
	"strings"
)

func SanitizeString(s string) string {
	return strings.TrimSpace(s)
}

// ParseOptionalID returns nil for an empty or non-numeric value.
func ParseOptionalID(s string) *int64 {
	id, err := strconv.ParseInt(SanitizeString(s), 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

// ParseSearchID reads the free-text group filter as a number. Anything that is
// not an integer becomes 0, which no row carries.
func ParseSearchID(s string) int64 {
	if id := ParseOptionalID(s); id != nil {
		return *id
	}
	return 0
}

// IsChecked reports whether an HTML checkbox value means "on".
func IsChecked(v string) bool {
	switch strings.ToLower(SanitizeString(v)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
