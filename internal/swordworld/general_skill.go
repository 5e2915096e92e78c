package swordworld

import (
	"fmt"
	"regexp"
	"strings"
)

// GeneralSkill is a non-combat profession.
type GeneralSkill struct {
	SkillName  string
	Job        string
	Level      int
	IsOriginal bool
}

// Formatted returns "Name(Job)", or just the name when the job is empty.
func (g GeneralSkill) Formatted() string {
	if g.Job == "" {
		return g.SkillName
	}
	return fmt.Sprintf("%s(%s)", g.SkillName, g.Job)
}

// FormattedWithLevel returns "Name(Job) : Level".
func (g GeneralSkill) FormattedWithLevel() string {
	return fmt.Sprintf("%s : %d", g.Formatted(), g.Level)
}

// SameSkill reports whether both values name the same catalog entry.
func (g GeneralSkill) SameSkill(other GeneralSkill) bool {
	return g.SkillName == other.SkillName && g.Job == other.Job
}

func (g GeneralSkill) mentions(fragment string) bool {
	return strings.Contains(g.SkillName, fragment) || strings.Contains(g.Job, fragment)
}

var generalSkillFragment = regexp.MustCompile(`[^(（《/]+`)

// ClassifyGeneralSkill resolves one raw profession field. The second
// result is false when the field is blank.
//
// Fragments are tried in order. For each fragment the prostitute entry is
// checked first, then an exact skill-name match, then the first catalog
// entry whose name or job contains the fragment. A field with no matching
// fragment is an original skill named by the whole field.
func ClassifyGeneralSkill(raw string, level int) (GeneralSkill, bool) {
	name := strings.TrimPrefix(raw, "|")
	if name == "" {
		return GeneralSkill{}, false
	}

	trimmed := strings.TrimSuffix(name, ")")
	trimmed = strings.TrimSuffix(trimmed, "）")
	trimmed = strings.TrimSuffix(trimmed, "》")

	for _, fragment := range generalSkillFragment.FindAllString(trimmed, -1) {
		if official, ok := lookupOfficialGeneralSkill(fragment); ok {
			official.Level = level
			return official, true
		}
	}

	return GeneralSkill{SkillName: name, Level: level, IsOriginal: true}, true
}

func lookupOfficialGeneralSkill(fragment string) (GeneralSkill, bool) {
	if ProstituteGeneralSkill.mentions(fragment) {
		return ProstituteGeneralSkill, true
	}
	for _, skill := range OfficialGeneralSkills {
		if skill.SkillName == fragment {
			return skill, true
		}
	}
	for _, skill := range OfficialGeneralSkills {
		if skill.mentions(fragment) {
			return skill, true
		}
	}
	return GeneralSkill{}, false
}
