// Package util contains small generic collection helpers shared across the
// AGDL front end, linker, and scheduler.
package util

import (
	"fmt"
	"sort"
	"strings"
)

// StringSet is a map[string]bool with methods added for set-membership
// diagnostics. Trimmed from the teacher's fuller generic set hierarchy
// (Union/Intersection/KeySet/SVSet and friends) down to the surface AGDL's
// registry and linker diagnostics actually exercise.
type StringSet map[string]bool

// NewStringSet returns an empty StringSet, optionally seeded from the keys
// of any maps passed in.
func NewStringSet(of ...map[string]bool) StringSet {
	s := StringSet{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

// Add adds value to the set. No effect if it's already present.
func (s StringSet) Add(value string) {
	s[value] = true
}

// Has returns whether value is in the set.
func (s StringSet) Has(value string) bool {
	_, has := s[value]
	return has
}

// StringOrdered renders the set's contents alphabetized and brace-wrapped,
// e.g. "{a, b, c}".
func (s StringSet) StringOrdered() string {
	convs := make([]string, 0, len(s))
	for k := range s {
		convs = append(convs, fmt.Sprintf("%v", k))
	}
	sort.Strings(convs)

	var sb strings.Builder
	sb.WriteRune('{')
	for i := range convs {
		sb.WriteString(convs[i])
		if i+1 < len(convs) {
			sb.WriteRune(',')
			sb.WriteRune(' ')
		}
	}
	sb.WriteRune('}')
	return sb.String()
}
