// Package spreadsheet lays out players and characters as worksheet tables.
//
// Builders are pure: they only produce a Table. Writing it is done by a
// SheetWriter implementation.
package spreadsheet

import (
	"time"

	"github.com/pon3939/SummarizeCharacterSheets/internal/character"
	"github.com/pon3939/SummarizeCharacterSheets/internal/swordworld"
)

// Header texts shared between worksheets.
const (
	HeaderNo              = "No."
	HeaderPlayerName      = "PL名"
	HeaderActive          = "ｱｸﾃｨﾌﾞ"
	HeaderPlayerTimes     = "PL"
	HeaderGameMasterTimes = "GM"
	HeaderTotalGames      = "総卓数"
	HeaderUpdatedAt       = "更新日時"
	HeaderCharacterName   = "PC名"
	HeaderFaith           = "信仰"
	HeaderVagrants        = "ｳﾞｧｸﾞﾗﾝﾂ"
	HeaderDiedTimes       = "死亡"
	HeaderExp             = "経験点"
	HeaderRace            = "種族"
	HeaderLevel           = "Lv."
	HeaderDiceAverage     = "ダイス平均"
	HeaderAllocation      = "割り振り"
	HeaderAdventurerBirth = "冒険者生まれ"
	HeaderBattleDancer    = "バトルダンサー"

	TotalLabel = "合計"
)

// DateTimeLayout is the display format of update timestamps.
const DateTimeLayout = "2006/01/02 15:04:05"

// Worksheet titles.
const (
	TitleUsage        = "使い方"
	TitleGraph        = "グラフ"
	TitlePlayer       = "PL"
	TitleBasic        = "基本"
	TitleAbility      = "技能"
	TitleStatus       = "能力値"
	TitleCombatFeat   = "戦闘特技"
	TitleHonor        = "名誉点・流派"
	TitleAbyssCurse   = "アビスカース"
	TitleGeneralSkill = "一般技能"
)

// WorksheetOrder is the tab order applied by a reorder run.
var WorksheetOrder = []string{
	TitleUsage,
	TitleGraph,
	TitlePlayer,
	TitleBasic,
	TitleAbility,
	TitleStatus,
	TitleCombatFeat,
	TitleHonor,
	TitleAbyssCurse,
	TitleGeneralSkill,
}

// Options carries rendering settings that are not part of the data.
type Options struct {
	SheetBaseURL string
	Location     *time.Location
}

func (o Options) sheetBaseURL() string {
	if o.SheetBaseURL == "" {
		return character.DefaultSheetBaseURL
	}
	return o.SheetBaseURL
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return DefaultLocation()
	}
	return o.Location
}

// DefaultLocation returns Asia/Tokyo, or a fixed +09:00 zone when the
// tz database is unavailable.
func DefaultLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}

// Builder renders one worksheet.
type Builder func(players []*character.Player, opts Options) *Table

// Sheet binds an API slug to a worksheet builder.
type Sheet struct {
	Slug  string
	Title string
	Build Builder
}

// Sheets lists every worksheet in update order.
var Sheets = []Sheet{
	{Slug: "player", Title: TitlePlayer, Build: BuildPlayerTable},
	{Slug: "basic", Title: TitleBasic, Build: BuildBasicTable},
	{Slug: "ability", Title: TitleAbility, Build: BuildAbilityTable},
	{Slug: "status", Title: TitleStatus, Build: BuildStatusTable},
	{Slug: "combat-feat", Title: TitleCombatFeat, Build: BuildCombatFeatTable},
	{Slug: "honor", Title: TitleHonor, Build: BuildHonorTable},
	{Slug: "abyss-curse", Title: TitleAbyssCurse, Build: BuildAbyssCurseTable},
	{Slug: "general-skill", Title: TitleGeneralSkill, Build: BuildGeneralSkillTable},
}

// LookupSheet finds a worksheet by slug.
func LookupSheet(slug string) (Sheet, bool) {
	for _, s := range Sheets {
		if s.Slug == slug {
			return s, true
		}
	}
	return Sheet{}, false
}

type characterRow struct {
	no        int
	row       int
	player    *character.Player
	character *character.Character
}

// characterRows numbers every character of every player. Data rows start at
// sheet row 2.
func characterRows(players []*character.Player) []characterRow {
	var rows []characterRow
	for _, p := range players {
		for _, c := range p.Characters {
			no := len(rows) + 1
			rows = append(rows, characterRow{no: no, row: no + 1, player: p, character: c})
		}
	}
	return rows
}

func blankRow(width int) []any {
	return make([]any, width)
}

func mark(b bool) string {
	if b {
		return swordworld.TrueMark
	}
	return ""
}
