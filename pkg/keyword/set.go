package keyword

import (
	"sort"
	"strings"
)

// Set is an immutable, case-insensitive set of reserved words.
type Set struct {
	words map[string]string // upper-case -> canonical
}

// NewSet builds a set from the given word lists. Duplicates are ignored.
func NewSet(lists ...[]string) *Set {
	s := &Set{words: make(map[string]string)}
	for _, list := range lists {
		for _, w := range list {
			upper := strings.ToUpper(w)
			s.words[upper] = upper
		}
	}
	return s
}

// Lookup returns the canonical spelling of word if it is reserved.
func (s *Set) Lookup(word string) (string, bool) {
	if s == nil {
		return "", false
	}
	canonical, ok := s.words[strings.ToUpper(word)]
	return canonical, ok
}

// Contains reports whether word is reserved.
func (s *Set) Contains(word string) bool {
	_, ok := s.Lookup(word)
	return ok
}

// Len returns the number of reserved words.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}

// Words returns the reserved words, sorted.
func (s *Set) Words() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.words))
	for _, w := range s.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
