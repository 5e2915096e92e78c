package swordworld

// RaceBaseStatus is the creation roll of one ability: DiceCount d6 plus FixedValue.
type RaceBaseStatus struct {
	DiceCount  int
	FixedValue int
}

// AllocationPoint returns the point-buy cost equivalent of a rolled value.
func (r RaceBaseStatus) AllocationPoint(rolled int) int {
	return AllocationPoint(r.DiceCount, r.FixedValue, rolled)
}

// AllocationPoint maps the dice pips of a roll to its point-buy cost.
func AllocationPoint(diceCount, fixedValue, rolled int) int {
	pip := rolled - fixedValue
	if diceCount == 1 {
		switch pip {
		case 1:
			return -15
		case 2:
			return -10
		case 3:
			return -5
		case 4:
			return 5
		case 5:
			return 10
		default:
			return 20
		}
	}

	switch pip {
	case 2:
		return -25
	case 3:
		return -20
	case 4:
		return -15
	case 5:
		return -10
	case 6:
		return -5
	case 7:
		return 0
	case 8:
		return 5
	case 9:
		return 10
	case 10:
		return 20
	case 11:
		return 40
	default:
		return 70
	}
}

// Race holds the creation rolls for each ability.
type Race struct {
	Name         string
	Dexterity    RaceBaseStatus
	Agility      RaceBaseStatus
	Strength     RaceBaseStatus
	Vitality     RaceBaseStatus
	Intelligence RaceBaseStatus
	Mental       RaceBaseStatus
}

// TotalBaseStatus sums dice and fixed values over all six abilities.
func (r Race) TotalBaseStatus() RaceBaseStatus {
	var total RaceBaseStatus
	for _, s := range r.abilities() {
		total.DiceCount += s.DiceCount
		total.FixedValue += s.FixedValue
	}
	return total
}

// AllocationPoints sums the point-buy cost of six rolled Base values given
// in Dexterity..Mental order.
func (r Race) AllocationPoints(bases [6]int) int {
	total := 0
	for i, s := range r.abilities() {
		total += s.AllocationPoint(bases[i])
	}
	return total
}

func (r Race) abilities() [6]RaceBaseStatus {
	return [6]RaceBaseStatus{r.Dexterity, r.Agility, r.Strength, r.Vitality, r.Intelligence, r.Mental}
}

// LookupRace finds a race by its major name.
func LookupRace(name string) (Race, bool) {
	for _, race := range Races {
		if race.Name == name {
			return race, true
		}
	}
	return Race{}, false
}

func d(dice int) RaceBaseStatus { return RaceBaseStatus{DiceCount: dice} }
func dp(dice, fixed int) RaceBaseStatus { return RaceBaseStatus{DiceCount: dice, FixedValue: fixed} }

func race(name string, dex, agi, str, vit, intl, mnd RaceBaseStatus) Race {
	return Race{
		Name:         name,
		Dexterity:    dex,
		Agility:      agi,
		Strength:     str,
		Vitality:     vit,
		Intelligence: intl,
		Mental:       mnd,
	}
}

// Races lists playable races with their creation rolls.
var Races = []Race{
	race("人間", d(2), d(2), d(2), d(2), d(2), d(2)),
	race("エルフ", d(2), d(2), d(1), d(2), d(2), d(2)),
	race("ドワーフ", dp(2, 6), d(1), d(2), dp(2, 6), d(1), d(2)),
	race("タビット", d(1), d(1), d(1), d(2), dp(2, 6), d(2)),
	race("ルーンフォーク", d(2), d(1), d(2), d(2), d(2), d(1)),
	race("ナイトメア", d(2), d(2), d(1), d(1), d(2), d(2)),
	race("リカント", d(1), dp(1, 3), d(2), d(2), dp(1, 6), d(1)),
	race("リルドラケン", d(1), d(2), d(2), dp(2, 6), d(1), d(2)),
	race("グラスランナー", d(2), d(2), d(1), dp(2, 6), d(1), dp(2, 6)),
	race("メリア", d(1), d(1), d(1), dp(2, 6), d(1), d(1)),
	race("ティエンス", d(2), d(2), d(1), dp(1, 3), d(2), dp(2, 3)),
	race("レプラカーン", d(2), d(1), d(2), d(2), d(2), d(2)),
	race("ウィークリング", d(2), d(2), d(2), dp(2, 3), d(2), d(2)),
	race("ソレイユ", d(2), d(1), dp(2, 6), d(2), d(1), d(1)),
	race("アルヴ", dp(2, 6), dp(2, 6), d(1), d(1), d(1), d(1)),
	race("シャドウ", d(2), d(2), d(1), d(2), d(1), d(2)),
	race("スプリガン", d(1), d(1), d(2), d(2), d(1), d(1)),
	race("アビスボーン", d(2), d(2), d(1), d(1), dp(2, 6), d(1)),
	race("ハイマン", d(1), d(1), d(1), d(1), d(2), d(2)),
	race("フロウライト", d(2), d(1), dp(2, 6), d(2), d(2), dp(2, 6)),
	race("ダークドワーフ", dp(2, 6), d(1), d(2), dp(2, 6), d(1), d(1)),
	race("ディアボロ", d(2), d(2), dp(2, 6), d(2), dp(1, 6), d(1)),
	race("ドレイク", d(2), d(2), dp(2, 6), d(2), d(1), d(1)),
	race("バジリスク", d(2), d(1), d(1), dp(2, 6), d(2), d(1)),
	race("ダークトロール", d(1), d(1), dp(2, 6), d(2), d(2), d(2)),
	race("アルボル", d(2), d(1), d(2), dp(2, 3), d(1), d(2)),
	race("バーバヤガー", d(1), d(1), d(1), d(2), dp(2, 6), d(1)),
	race("ケンタウロス", d(2), dp(2, 6), d(2), d(2), d(1), d(1)),
	race("シザースコーピオン", d(2), d(1), dp(2, 6), d(2), d(1), d(2)),
	race("ドーン", d(2), d(1), d(2), dp(2, 6), d(1), d(2)),
	race("コボルド", d(2), d(2), d(1), d(2), d(2), d(1)),
	race("ドレイクブロークン", d(2), d(2), dp(2, 6), d(2), d(1), d(1)),
	race("ラミア", d(2), d(2), d(1), d(1), d(2), d(2)),
	race("ラルヴァ", d(2), d(2), d(1), d(1), dp(2, 6), d(1)),
}
