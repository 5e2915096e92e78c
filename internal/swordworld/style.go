package swordworld

import (
	"regexp"
	"strings"
)

// Style is a martial or magic school a character can enroll in.
// Two styles with the same name are the same style.
type Style struct {
	Name            string
	Keywords        []string
	IsModernEdition bool

	pattern *regexp.Regexp
}

func modernStyle(name string, keywords ...string) Style {
	return newStyle(name, true, keywords)
}

// legacyStyle builds a style carried over from the 2.0 rules.
func legacyStyle(name string, keywords ...string) Style {
	return newStyle(name, false, keywords)
}

func newStyle(name string, modern bool, keywords []string) Style {
	quoted := make([]string, len(keywords))
	for i, k := range keywords {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return Style{
		Name:            name,
		Keywords:        keywords,
		IsModernEdition: modern,
		pattern:         regexp.MustCompile(strings.Join(quoted, "|")),
	}
}

// Equal reports whether both styles name the same school.
func (s Style) Equal(other Style) bool {
	return s.Name == other.Name
}

// Matches reports whether text mentions any of the style's keywords.
func (s Style) Matches(text string) bool {
	if s.pattern == nil {
		return false
	}
	return s.pattern.MatchString(text)
}

// FindStyle returns the first catalog style mentioned in text.
func FindStyle(text string) (Style, bool) {
	if text == "" {
		return Style{}, false
	}
	for _, style := range Styles {
		if style.Matches(text) {
			return style, true
		}
	}
	return Style{}, false
}

// StyleSet collects styles by name, keeping first-seen order.
type StyleSet struct {
	styles []Style
}

// Add inserts style unless a style with the same name is present.
func (s *StyleSet) Add(style Style) bool {
	if s.Contains(style) {
		return false
	}
	s.styles = append(s.styles, style)
	return true
}

// Contains reports whether a style with the same name is present.
func (s *StyleSet) Contains(style Style) bool {
	for _, existing := range s.styles {
		if existing.Equal(style) {
			return true
		}
	}
	return false
}

// Styles returns the collected styles in insertion order.
func (s *StyleSet) Styles() []Style {
	out := make([]Style, len(s.styles))
	copy(out, s.styles)
	return out
}
