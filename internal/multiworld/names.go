package multiworld

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns the candidate closest to name, or "" when nothing is close
// enough to be worth offering.
func Suggest(name string, candidates []string) string {
	in := normaliseName(name)
	if in == "" {
		return ""
	}

	type scored struct {
		name string
		dist int
	}
	hits := make([]scored, 0, 4)
	for _, c := range candidates {
		n := normaliseName(c)
		if n == in {
			return c
		}
		if strings.HasPrefix(n, in) && len(in) >= 3 {
			hits = append(hits, scored{name: c, dist: 0})
			continue
		}
		dist := levenshtein.ComputeDistance(in, n)
		if dist > suggestLimit(len(n)) {
			continue
		}
		hits = append(hits, scored{name: c, dist: dist})
	}
	if len(hits) == 0 {
		return ""
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].dist == hits[j].dist {
			return hits[i].name < hits[j].name
		}
		return hits[i].dist < hits[j].dist
	})
	return hits[0].name
}

func suggestLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	case length <= 16:
		return 3
	default:
		return 4
	}
}

func normaliseName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
	return s
}

// unknownName wraps kind with the offending name and a suggestion if one exists.
func unknownName(kind error, name string, candidates []string) error {
	if s := Suggest(name, candidates); s != "" {
		return fmt.Errorf("%w: %q (did you mean %q?)", kind, name, s)
	}
	return fmt.Errorf("%w: %q", kind, name)
}

// UnknownItem builds the error a world returns from CreateItem for a name
// missing from its table.
func UnknownItem(name string, table map[string]int64) error {
	return unknownName(ErrUnknownItem, name, keys(table))
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
