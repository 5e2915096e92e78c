package character

import (
	"regexp"
	"strings"

	"github.com/pon3939/SummarizeCharacterSheets/internal/swordworld"
)

var (
	rubyPattern       = regexp.MustCompile(`\|([^《]*)《[^》]*》`)
	minorRacePattern  = regexp.MustCompile(`（(.+)）`)
	raceSuffixPattern = regexp.MustCompile(`（.+）`)

	heightPatterns = []*regexp.Regexp{
		bodySizePattern("身長"),
		bodySizePattern("背丈"),
	}
	weightPattern = bodySizePattern("体重")
)

// racesKeepingBrackets are reported with their bracketed variant intact.
var racesKeepingBrackets = []string{"ナイトメア", "ウィークリング"}

// freeNoteLineBreak is the escaped <br> used by the sheet source.
const freeNoteLineBreak = "&lt;br&gt;"

func bodySizePattern(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`.*` + keyword + `[^\p{Nd}\.\|]*\|*[^\p{Nd}\.\|]*([\p{Nd}\.]+).*`)
}

func characterName(doc Document) string {
	name := rubyPattern.ReplaceAllString(doc.String("characterName", ""), "$1")
	if name == "" {
		return doc.String("aka", "")
	}
	return name
}

// MinorRace returns the race variant: the bracketed part of the race when
// present, otherwise the whole race.
func (c *Character) MinorRace() string {
	for _, keep := range racesKeepingBrackets {
		if strings.Contains(c.Race, keep) {
			return c.Race
		}
	}
	m := minorRacePattern.FindStringSubmatch(c.Race)
	if m == nil {
		return c.Race
	}
	return m[1]
}

// MajorRace returns the race with any bracketed variant removed.
func (c *Character) MajorRace() string {
	return raceSuffixPattern.ReplaceAllString(c.Race, "")
}

// IsVagrants reports whether any reachable feat slot holds a vagrants feat.
// Slots are checked in level order and higher slots are only consulted once
// the character has reached that level.
func (c *Character) IsVagrants() bool {
	if c.SkillLevel(swordworld.BattleDancerCode) > 0 && isVagrantsFeat(c.BattleDancerFeat) {
		return true
	}
	for i, level := range swordworld.CombatFeatLevels {
		if i > 0 && c.Level < level {
			return false
		}
		if isVagrantsFeat(c.CombatFeats[level]) {
			return true
		}
	}
	return false
}

func isVagrantsFeat(feat string) bool {
	for _, prefix := range swordworld.VagrantsCombatFeats {
		if strings.HasPrefix(feat, prefix) {
			return true
		}
	}
	return false
}

// parseBodySize extracts height and weight from the free note. Each line is
// checked for 身長, 背丈 then 体重, and a later hit overwrites an earlier one.
func parseBodySize(freeNote string) (height, weight string) {
	for _, line := range strings.Split(freeNote, freeNoteLineBreak) {
		for i, keyword := range []string{"身長", "背丈"} {
			if !strings.Contains(line, keyword) {
				continue
			}
			if v := heightPatterns[i].ReplaceAllString(line, "$1"); v != line {
				height = v
			}
		}
		if strings.Contains(line, "体重") {
			if v := weightPattern.ReplaceAllString(line, "$1"); v != line {
				weight = v
			}
		}
	}
	return height, weight
}
