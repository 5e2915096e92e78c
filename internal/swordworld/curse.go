package swordworld

import "strings"

// FindAbyssCurses returns every curse tag contained in text, in
// vocabulary order.
func FindAbyssCurses(text string) []string {
	var found []string
	if text == "" {
		return found
	}
	for _, curse := range AbyssCurses {
		if strings.Contains(text, curse) {
			found = append(found, curse)
		}
	}
	return found
}

// CurseSet is a de-duplicated collection of curse tags.
type CurseSet struct {
	seen  map[string]struct{}
	order []string
}

// Add merges tags into the set.
func (s *CurseSet) Add(tags ...string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	for _, tag := range tags {
		if _, ok := s.seen[tag]; ok {
			continue
		}
		s.seen[tag] = struct{}{}
		s.order = append(s.order, tag)
	}
}

// Tags returns the collected tags in first-seen order.
func (s *CurseSet) Tags() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
