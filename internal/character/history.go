package character

import (
	"fmt"
	"regexp"
	"strings"
)

// selfGameMasterNames are GM entries meaning "myself".
var selfGameMasterNames = []string{"俺", "私", "自分"}

var diedPattern = regexp.MustCompile("死亡")

type sessionHistory struct {
	playerTimes    int
	diedTimes      int
	gameMasterKeys []string
}

// parseHistory tallies the session log. Entries without a GM are ignored.
// A GM credit is keyed "{date}_{n}" where n counts earlier credits whose
// key starts with the same date, so repeated same-day credits stay distinct.
func parseHistory(doc Document, playerName string) sessionHistory {
	var h sessionHistory
	for i := 1; i <= doc.Int("historyNum"); i++ {
		gm := doc.String(fmt.Sprintf("history%dGm", i), "")
		if gm == "" {
			continue
		}

		if gm == playerName || isSelfGameMaster(gm) {
			date := doc.String(fmt.Sprintf("history%dDate", i), "")
			n := 0
			for _, key := range h.gameMasterKeys {
				if strings.HasPrefix(key, date) {
					n++
				}
			}
			h.gameMasterKeys = append(h.gameMasterKeys, fmt.Sprintf("%s_%d", date, n))
		} else {
			h.playerTimes++
		}

		if diedPattern.MatchString(doc.String(fmt.Sprintf("history%dNote", i), "")) {
			h.diedTimes++
		}
	}
	return h
}

func isSelfGameMaster(name string) bool {
	for _, self := range selfGameMasterNames {
		if name == self {
			return true
		}
	}
	return false
}
