package scoring

import "strings"

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func normalizeNames(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[normalizeName(n)] = struct{}{}
	}
	return set
}
