package swordworld

import (
	"slices"
	"testing"
)

func TestClassifyExp(t *testing.T) {
	tests := []struct {
		name string
		exp  int
		want ExpStatus
	}{
		{name: "below minimum", exp: 19, want: ExpInactive},
		{name: "at minimum", exp: 20, want: ExpActive},
		{name: "between", exp: 99, want: ExpActive},
		{name: "at max", exp: 100, want: ExpMax},
		{name: "above max", exp: 150, want: ExpMax},
		{name: "zero", exp: 0, want: ExpInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyExp(tt.exp, 100, 20); got != tt.want {
				t.Fatalf("ClassifyExp(%d) = %v, want %v", tt.exp, got, tt.want)
			}
		})
	}
}

func TestClassifyExpExhaustive(t *testing.T) {
	for minimum := 0; minimum <= 30; minimum += 5 {
		for max := minimum; max <= 40; max += 5 {
			for exp := -5; exp <= 45; exp++ {
				got := ClassifyExp(exp, max, minimum)
				switch {
				case exp >= max && got != ExpMax:
					t.Fatalf("exp=%d max=%d: got %v, want max", exp, max, got)
				case exp < max && exp >= minimum && got != ExpActive:
					t.Fatalf("exp=%d min=%d max=%d: got %v, want active", exp, minimum, max, got)
				case exp < minimum && exp < max && got != ExpInactive:
					t.Fatalf("exp=%d min=%d: got %v, want inactive", exp, minimum, got)
				}
			}
		}
	}
}

func TestExpStatusMark(t *testing.T) {
	if ExpInactive.Mark() != "" {
		t.Fatalf("inactive mark = %q", ExpInactive.Mark())
	}
	if ExpActive.Mark() != TrueMark || ExpMax.Mark() != TrueMark {
		t.Fatal("active statuses must be marked")
	}
	if !(ExpInactive < ExpActive && ExpActive < ExpMax) {
		t.Fatal("statuses must be ordered")
	}
}

func TestStatusTotal(t *testing.T) {
	s := NewStatus(7, 3, 2, -1)
	if got := s.Total(); got != 11 {
		t.Fatalf("Total() = %d, want 11", got)
	}
}

func TestFindStyle(t *testing.T) {
	tests := []struct {
		text   string
		want   string
		wantOK bool
	}{
		{text: "《イーヴァル狂闘術》入門", want: "イーヴァル狂闘術", wantOK: true},
		{text: "バタス派の秘伝", want: "カスロット豪砂拳・バタス派", wantOK: true},
		{text: "七色のマナ:魔法", want: "七色のマナ：魔法行使法学派", wantOK: true},
		{text: "ダルボン流", want: "ダルポン流下克戦闘術", wantOK: true},
		{text: "ただの剣", wantOK: false},
		{text: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := FindStyle(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("FindStyle(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if ok && got.Name != tt.want {
				t.Fatalf("FindStyle(%q) = %q, want %q", tt.text, got.Name, tt.want)
			}
		})
	}
}

func TestFindStyleCatalogOrderBreaksTies(t *testing.T) {
	// 奈落 also appears inside ガムベイ奈落技術討究派; the earlier entry wins.
	got, ok := FindStyle("ガムベイ奈落技術討究派")
	if !ok {
		t.Fatal("expected a style")
	}
	if got.Name != "対奈落教会議・奈落反転神術" {
		t.Fatalf("got %q", got.Name)
	}
}

func TestStyleEditions(t *testing.T) {
	modern := 0
	for _, s := range Styles {
		if s.IsModernEdition {
			modern++
		}
	}
	if modern != 37 || len(Styles)-modern != 40 {
		t.Fatalf("modern=%d legacy=%d", modern, len(Styles)-modern)
	}
}

func TestStyleSetDedupesByName(t *testing.T) {
	var set StyleSet
	a, _ := FindStyle("イーヴァル")
	b, _ := FindStyle("ミハウ")
	set.Add(a)
	set.Add(b)
	if set.Add(a) {
		t.Fatal("duplicate add should report false")
	}
	got := set.Styles()
	if len(got) != 2 || got[0].Name != a.Name || got[1].Name != b.Name {
		t.Fatalf("unexpected set %+v", got)
	}
}

func TestFindAbyssCurses(t *testing.T) {
	if got := FindAbyssCurses("自傷の剣"); !slices.Equal(got, []string{"自傷の"}) {
		t.Fatalf("got %v", got)
	}
	got := FindAbyssCurses("嘆きの重い鎧")
	if !slices.Equal(got, []string{"嘆きの", "重い"}) {
		t.Fatalf("got %v", got)
	}
	if got := FindAbyssCurses(""); len(got) != 0 {
		t.Fatalf("got %v", got)
	}
}

func TestFindAbyssCursesUnionUnderConcatenation(t *testing.T) {
	pairs := [][2]string{
		{"自傷の剣", "重い盾"},
		{"陽気な指輪", "まばゆいマント"},
		{"空腹の腕輪", "ただの棒"},
	}
	for _, p := range pairs {
		combined := FindAbyssCurses(p[0] + " " + p[1])
		for _, tag := range append(FindAbyssCurses(p[0]), FindAbyssCurses(p[1])...) {
			if !slices.Contains(combined, tag) {
				t.Fatalf("%q missing from %v", tag, combined)
			}
		}
	}
}

func TestCurseSet(t *testing.T) {
	var set CurseSet
	set.Add("自傷の", "重い")
	set.Add("重い", "嘆きの")
	if got := set.Tags(); !slices.Equal(got, []string{"自傷の", "重い", "嘆きの"}) {
		t.Fatalf("got %v", got)
	}
}

func TestClassifyGeneralSkill(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     GeneralSkill
		wantSkip bool
	}{
		{name: "blank", raw: "", wantSkip: true},
		{name: "separator only", raw: "|", wantSkip: true},
		{name: "official name", raw: "コック", want: GeneralSkill{SkillName: "コック", Job: "料理人", Level: 3}},
		{name: "leading separator", raw: "|ノーブル", want: GeneralSkill{SkillName: "ノーブル", Job: "貴族", Level: 3}},
		{name: "job only", raw: "漁師", want: GeneralSkill{SkillName: "フィッシャーマン", Job: "漁師", Level: 3}},
		{name: "name with job", raw: "セイラー（船乗り）", want: GeneralSkill{SkillName: "セイラー", Job: "水夫/船乗り", Level: 3}},
		{name: "ruby style", raw: "料理人《コック》", want: GeneralSkill{SkillName: "コック", Job: "料理人", Level: 3}},
		{name: "prostitute before courtesan", raw: "男娼", want: GeneralSkill{SkillName: "プロスティチュート", Job: "娼婦/男娼", Level: 3}},
		{name: "courtesan", raw: "コーティザン", want: GeneralSkill{SkillName: "コーティザン", Job: "高級娼婦/男娼", Level: 3}},
		{name: "exact name beats containment", raw: "ドクター", want: GeneralSkill{SkillName: "ドクター", Job: "医者", Level: 3}},
		{name: "formatted doctor", raw: "ドクター(医者)", want: GeneralSkill{SkillName: "ドクター", Job: "医者", Level: 3}},
		{name: "original", raw: "冒険者ギルド職員", want: GeneralSkill{SkillName: "冒険者ギルド職員", Level: 3, IsOriginal: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifyGeneralSkill(tt.raw, 3)
			if ok == tt.wantSkip {
				t.Fatalf("ok = %v, wantSkip %v", ok, tt.wantSkip)
			}
			if !ok {
				return
			}
			if got != tt.want {
				t.Fatalf("ClassifyGeneralSkill(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestClassifyGeneralSkillIsIdempotent(t *testing.T) {
	for _, official := range OfficialGeneralSkills {
		for _, raw := range []string{official.SkillName, official.Formatted()} {
			got, ok := ClassifyGeneralSkill(raw, 1)
			if !ok {
				t.Fatalf("%q skipped", raw)
			}
			if got.IsOriginal || !got.SameSkill(official) {
				t.Fatalf("ClassifyGeneralSkill(%q) = %+v, want %+v", raw, got, official)
			}
		}
	}
}

func TestGeneralSkillFormatting(t *testing.T) {
	g := GeneralSkill{SkillName: "コック", Job: "料理人", Level: 2}
	if g.Formatted() != "コック(料理人)" {
		t.Fatalf("Formatted() = %q", g.Formatted())
	}
	if g.FormattedWithLevel() != "コック(料理人) : 2" {
		t.Fatalf("FormattedWithLevel() = %q", g.FormattedWithLevel())
	}
	o := GeneralSkill{SkillName: "吟遊詩人", Level: 1, IsOriginal: true}
	if o.FormattedWithLevel() != "吟遊詩人 : 1" {
		t.Fatalf("FormattedWithLevel() = %q", o.FormattedWithLevel())
	}
}

func TestAllocationPoint(t *testing.T) {
	tests := []struct {
		dice, fixed, rolled, want int
	}{
		{2, 0, 7, 0},
		{1, 0, 6, 20},
		{1, 0, 1, -15},
		{1, 3, 7, 5},
		{2, 6, 8, -25},
		{2, 0, 11, 40},
		{2, 0, 12, 70},
		{2, 0, 10, 20},
	}
	for _, tt := range tests {
		if got := AllocationPoint(tt.dice, tt.fixed, tt.rolled); got != tt.want {
			t.Fatalf("AllocationPoint(%d, %d, %d) = %d, want %d", tt.dice, tt.fixed, tt.rolled, got, tt.want)
		}
	}
}

func TestRaceTotals(t *testing.T) {
	tests := []struct {
		name  string
		dice  int
		fixed int
	}{
		{"人間", 12, 0},
		{"ドワーフ", 10, 12},
		{"リカント", 8, 9},
		{"ティエンス", 10, 6},
		{"ラルヴァ", 9, 6},
	}
	for _, tt := range tests {
		r, ok := LookupRace(tt.name)
		if !ok {
			t.Fatalf("%s not found", tt.name)
		}
		total := r.TotalBaseStatus()
		if total.DiceCount != tt.dice || total.FixedValue != tt.fixed {
			t.Fatalf("%s total = %+v, want %d/%d", tt.name, total, tt.dice, tt.fixed)
		}
	}
	if _, ok := LookupRace("ゴブリン"); ok {
		t.Fatal("unknown race must not resolve")
	}
}

func TestRaceAllocationPoints(t *testing.T) {
	human, _ := LookupRace("人間")
	if got := human.AllocationPoints([6]int{7, 7, 7, 7, 7, 7}); got != 0 {
		t.Fatalf("got %d", got)
	}
	dwarf, _ := LookupRace("ドワーフ")
	// 2d+6 rolled 13 (pip 7), 1d rolled 6 (else bucket).
	if got := dwarf.AllocationPoints([6]int{13, 6, 7, 13, 6, 7}); got != 40 {
		t.Fatalf("got %d", got)
	}
}
