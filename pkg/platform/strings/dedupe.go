// Package strings holds small string-slice helpers shared by models and
// configuration.
package strings

import (
	"strings"
)

// DedupeAndTrim trims every element and drops blanks and repeats, keeping
// first-seen order. A nil or empty input is returned as is.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := values[:0:0]
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
