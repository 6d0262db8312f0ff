package keys

import "strings"

// Normalize produces the canonical form of a catalog identifier: trimmed,
// lower-cased, with inner spaces replaced by underscores. "Deathly
// Affliction" and "deathly_affliction" resolve to the same key.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.ToLower(strings.Join(strings.Fields(s), "_"))
}
