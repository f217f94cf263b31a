package utils

import (
	"strings"
)

func AssertInvariant(condition bool, message string) {
	if !condition {
		panic("invariant violated - " + message)
	}
}

// ContainsFold reports whether substr is within s, ignoring case.
// An empty substr matches every s.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// ContainsAnyFold reports whether substr is within any of the given values, ignoring case
func ContainsAnyFold(substr string, values ...string) bool {
	for _, value := range values {
		if ContainsFold(value, substr) {
			return true
		}
	}
	return false
}
