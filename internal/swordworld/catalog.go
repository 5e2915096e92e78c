package swordworld

// CombatSkill is an adventurer class as keyed in the sheet source.
type CombatSkill struct {
	Code string
	Name string
}

// BattleDancerCode is the sheet key of the battle dancer class.
const BattleDancerCode = "lvBat"

// CombatSkills lists adventurer classes in display order.
var CombatSkills = []CombatSkill{
	{Code: "lvFig", Name: "ファイター"},
	{Code: "lvGra", Name: "グラップラー"},
	{Code: BattleDancerCode, Name: "バトルダンサー"},
	{Code: "lvFen", Name: "フェンサー"},
	{Code: "lvSho", Name: "シューター"},
	{Code: "lvSor", Name: "ソーサラー"},
	{Code: "lvCon", Name: "コンジャラー"},
	{Code: "lvPri", Name: "プリースト"},
	{Code: "lvMag", Name: "マギテック"},
	{Code: "lvFai", Name: "フェアリーテイマー"},
	{Code: "lvDru", Name: "ドルイド"},
	{Code: "lvDem", Name: "デーモンルーラー"},
	{Code: "lvAby", Name: "アビスゲイザー"},
	{Code: "lvSco", Name: "スカウト"},
	{Code: "lvRan", Name: "レンジャー"},
	{Code: "lvSag", Name: "セージ"},
	{Code: "lvEnh", Name: "エンハンサー"},
	{Code: "lvBar", Name: "バード"},
	{Code: "lvRid", Name: "ライダー"},
	{Code: "lvAlc", Name: "アルケミスト"},
	{Code: "lvGeo", Name: "ジオマンサー"},
	{Code: "lvWar", Name: "ウォーリーダー"},
	{Code: "lvDar", Name: "ダークハンター"},
}

// CombatFeatLevels are the character levels that grant a combat feat slot.
var CombatFeatLevels = []int{1, 3, 5, 7, 9, 11, 13}

// MaxCombatFeatLevel is the last level granting a combat feat slot.
const MaxCombatFeatLevel = 13

// VagrantsCombatFeats are feats only available to vagrants. A feat slot
// matches when its text starts with one of these names.
var VagrantsCombatFeats = []string{
	"追い打ち",
	"抵抗強化",
	"カニングキャスト",
	"クイックキャスト",
	"シールドバッシュ",
	"シャドウステップ",
	"捨て身攻撃",
	"露払い",
	"乱撃",
	"クルードテイク",
	"掠め取り",
}

// Styles is the ordered style catalog. Order breaks ties between
// overlapping keywords, so entries must not be reordered.
var Styles = []Style{
	modernStyle("イーヴァル狂闘術", "イーヴァル"),
	modernStyle("ミハウ式流円闘技", "ミハウ"),
	modernStyle("カスロット豪砂拳・バタス派", "カスロット", "バタス"),
	modernStyle("マカジャハット・プロ・グラップリング", "マカジャハット"),
	modernStyle("ナルザラント柔盾活用術", "ナルザラント"),
	modernStyle("アースト強射術", "アースト"),
	modernStyle("ヒアデム魔力流転操撃", "ヒアデム"),
	modernStyle("古モルガナンシン王国式戦域魔導術", "モルガナンシン"),
	modernStyle("ダイケホーン双霊氷法", "ダイケホーン"),
	modernStyle("スホルテン騎乗戦技", "スホルテン"),
	modernStyle("アードリアン流古武道・メルキアノ道場", "アードリアン", "メルキアノ"),
	modernStyle("エルエレナ惑乱操布術", "エルエレナ"),
	modernStyle("ファイラステン古流ヴィンド派(双剣の型)", "ファイラステン"),
	modernStyle("クウェラン闇弓術改式", "クウェラン"),
	modernStyle("ヴァルト式戦場剣殺法", "ヴァルト"),
	modernStyle("ガオン無双獣投術", "ガオン"),
	modernStyle("聖戦士ローガン鉄壁の型", "ローガン"),
	modernStyle("クーハイケン強竜乗法", "クーハイケン"),
	modernStyle("七色のマナ：魔法行使法学派", "七色のマナ：", "七色のマナ:", "魔法行使"),
	modernStyle("キルガリー双刃戦舞闘技", "キルガリー"),
	modernStyle("エステル式ポール舞闘術", "エステル", "ポール"),
	modernStyle("銛王ナイネルガの伝承", "ナイネルガ"),
	modernStyle("死骸銃遊戯", "死骸銃"),
	modernStyle("対奈落教会議・奈落反転神術", "奈落"),
	modernStyle("「七色のマナ」式召異魔法術・魔使影光学理論", "式召異", "魔使影"),
	modernStyle("アルショニ軽身跳闘法", "アルショニ"),
	modernStyle("ノーザンファング鉱士削岩闘法", "ノーザンファング"),
	modernStyle("キングスレイ式近接銃撃術", "キングスレイ"),
	modernStyle("ネルネアニン騎獣調香術", "ネルネアニン"),
	modernStyle("オルフィード式蒸発妖精術", "オルフィード"),
	modernStyle("フィノア派森羅導術", "フィノア"),
	modernStyle("ソムバートル制圧弓騎兵団", "ソムバートル"),
	modernStyle("ハールーン魔精解放術式", "ハールーン"),
	modernStyle("ウル・ディ・ガウル秘薬刀術", "ガウル"),
	modernStyle("アヴァル口伝・森択演奏術", "アヴァル"),
	modernStyle("オークファルト念闘術", "オークファルト"),
	modernStyle("ガムベイ奈落技術討究派", "ガムベイ"),
	// 2.0 styles
	legacyStyle("アゴウ重槌破闘術", "アゴウ"),
	legacyStyle("岩流斧闘術アズラック派", "アズラック"),
	legacyStyle("リシバル集団運槍術", "リシバル"),
	legacyStyle("イーリー流幻闘道化術", "イーリー"),
	legacyStyle("ギルヴァン流愚人剣", "ギルヴァン"),
	legacyStyle("ネレホーサ舞剣術", "ネレホーサ"),
	legacyStyle("ドーザコット潜弓道", "ドーザコット"),
	legacyStyle("マルガ＝ハーリ天地銃剣術", "マルガ", "ハーリ"),
	legacyStyle("ライロック魔刃術", "ライロック"),
	legacyStyle("ルシェロイネ魔導術", "ルシェロイネ"),
	legacyStyle("クラウゼ流一刀魔王剣", "クラウゼ"),
	legacyStyle("ベネディクト流紳士杖道", "ベネディクト"),
	legacyStyle("ハーデン鷹爪流投擲術", "ハーデン"),
	legacyStyle("エイントゥク十字弓道場", "エイントゥク"),
	legacyStyle("ジアンブリック攻盾法", "ジアンブリック"),
	legacyStyle("ルキスラ銀鱗隊護衛術", "ルキスラ"),
	legacyStyle("ティルダンカル古代光魔党", "ティルダンカル"),
	legacyStyle("カサドリス戦奏術", "カサドリス"),
	legacyStyle("ファルネアス重装馬闘技", "ファルネアス"),
	legacyStyle("タマフ＝ダツエ流浪戦瞳", "タマフ", "ダツエ"),
	legacyStyle("ドバルス螺旋運手", "ドバルス"),
	legacyStyle("ニルデスト流実戦殺法", "ニルデスト"),
	legacyStyle("オーロンセシーレ中隊軽装突撃術", "オーロンセシーレ"),
	legacyStyle("ラステンルフト双盾護身術", "ラステンルフト"),
	legacyStyle("ホプレッテン機動重弩弓法", "ホプレッテン"),
	legacyStyle("エイスンアデアル召喚術", "エイスンアデアル"),
	legacyStyle("眠り猫流擬態術", "眠り猫"),
	legacyStyle("カンフォーラ博物学派", "カンフォーラ"),
	legacyStyle("不死者討滅武技バニシングデス", "バニシングデス"),
	legacyStyle("ダルポン流下克戦闘術", "ダルボン", "ダルポン"),
	legacyStyle("ヴェルクンスト砦建築一党", "ヴェルクンスト"),
	legacyStyle("神速確勝ボルンの精髄", "ボルン"),
	legacyStyle("バルナッド英雄庭流派・封神舞踏剣", "バルナッド"),
	legacyStyle("森の吹き矢使いたち", "吹き矢"),
	legacyStyle("ウォーディアル流竜騎神槍", "ウォーディアル"),
	legacyStyle("ギルツ屠竜輝剛拳", "ギルツ"),
	legacyStyle("ガドハイ狩猟術", "ガドハイ"),
	legacyStyle("ソソ破皇戦槌術", "ソソ"),
	legacyStyle("バルカン流召精術", "バルカン"),
	legacyStyle("ジーズドルフ騎竜術", "ジーズドルフ"),
}

// AbyssCurses is the curse tag vocabulary in display order.
var AbyssCurses = []string{
	"自傷の",
	"嘆きの",
	"優しき",
	"差別の",
	"脆弱な",
	"無謀な",
	"重い",
	"難しい",
	"軟弱な",
	"病弱な",
	"過敏な",
	"陽気な",
	"たどたどしい",
	"代弁する",
	"施しは受けない",
	"死に近い",
	"おしゃれな",
	"マナを吸う",
	"鈍重な",
	"定まらない",
	"錯乱の",
	"足絡みの",
	"滑り落ちる",
	"悪臭放つ",
	"醜悪な",
	"唸る",
	"ふやけた",
	"古傷の",
	"まばゆい",
	"栄光なき",
	"正直者の",
	"乗り物酔いの",
	"碧を厭う",
	"我慢できない",
	"つきまとう",
	"のろまな",
	"衰退の",
	"怠惰の",
	"慌てる",
	"喉が詰まる",
	"無駄遣いの",
	"空腹の",
	"疲れが取れない",
	"薬物が効きにくい",
	"死体漁りの",
	"従わない",
	"一服を取る",
	"余裕を見せる",
	"息が荒い",
	"音痴の",
	"信頼しきれない",
	"手から零れる",
	"天地荒ぶる",
	"失敗を嘲る",
	"学ばない",
	"完璧主義な",
	"華美を嫌う",
	"昏睡の",
	"烙印を受ける",
	"散漫な",
	"命を削る",
	"マナを削る",
	"誇示する",
	"踏ん張りがきかない",
	"身を晒す",
	"いたぶる",
	"残心の",
	"マナが漏れやすい",
	"退けたがる",
	"手加減する",
	"調子が悪い",
}

// ProstituteGeneralSkill is matched before the catalog scan because its
// job text is a substring of the courtesan entry.
var ProstituteGeneralSkill = GeneralSkill{SkillName: "プロスティチュート", Job: "娼婦/男娼"}

// OfficialGeneralSkills is the official general skill catalog in display order.
var OfficialGeneralSkills = []GeneralSkill{
	{SkillName: "アーマラー", Job: "防具職人"},
	{SkillName: "インベンター", Job: "発明家"},
	{SkillName: "ウィーバー", Job: "織り子"},
	{SkillName: "ウィッチドクター", Job: "祈祷師"},
	{SkillName: "ウェイター/ウェイトレス", Job: "給仕"},
	{SkillName: "ウェザーマン", Job: "天候予報士"},
	{SkillName: "ウェポンスミス", Job: "武器職人"},
	{SkillName: "ウッドクラフトマン", Job: "木工職人"},
	{SkillName: "エンジニア", Job: "機関士"},
	{SkillName: "オーサー", Job: "作家"},
	{SkillName: "オフィシャル", Job: "役人"},
	{SkillName: "ガーデナー", Job: "庭師"},
	{SkillName: "カーペンター", Job: "大工"},
	{SkillName: "カラーマン", Job: "絵具師"},
	{SkillName: "キースミス", Job: "鍵屋"},
	{SkillName: "クレリック", Job: "聖職者"},
	{SkillName: "グレイブキーパー", Job: "墓守"},
	{SkillName: "コーチマン", Job: "御者"},
	{SkillName: "コーティザン", Job: "高級娼婦/男娼"},
	{SkillName: "コック", Job: "料理人"},
	{SkillName: "コンポーザー", Job: "作曲家"},
	{SkillName: "サージョン", Job: "外科医"},
	{SkillName: "シグナルマン", Job: "信号士"},
	{SkillName: "シューメイカー", Job: "靴職人"},
	{SkillName: "ジュエラー", Job: "宝飾師"},
	{SkillName: "シンガー", Job: "歌手"},
	{SkillName: "スカラー", Job: "学生/学者"},
	{SkillName: "スカルプター", Job: "彫刻家"},
	{SkillName: "スクライブ", Job: "筆写人"},
	{SkillName: "セイラー", Job: "水夫/船乗り"},
	{SkillName: "ソルジャー", Job: "兵士"},
	{SkillName: "タワーマン", Job: "高所作業員"},
	{SkillName: "ダンサー", Job: "踊り子"},
	{SkillName: "ツアーガイド", Job: "旅先案内人"},
	{SkillName: "ディスティラー", Job: "(蒸留)酒造家"},
	{SkillName: "テイマー", Job: "調教師"},
	{SkillName: "テイラー", Job: "仕立て屋"},
	{SkillName: "ドクター", Job: "医者"},
	{SkillName: "ドラッグメイカー", Job: "薬剤師"},
	{SkillName: "ナース", Job: "看護師"},
	{SkillName: "ナビゲーター", Job: "航海士"},
	{SkillName: "ノーブル", Job: "貴族"},
	{SkillName: "ハーズマン", Job: "牧童"},
	{SkillName: "バーバー", Job: "髪結い/理髪師"},
	{SkillName: "ハウスキーパー", Job: "家政婦(夫)"},
	{SkillName: "バトラー", Job: "執事"},
	{SkillName: "パヒューマー", Job: "調香師"},
	{SkillName: "パフォーマー", Job: "芸人"},
	{SkillName: "ハンター", Job: "狩人"},
	{SkillName: "ファーマー", Job: "農夫"},
	{SkillName: "フィッシャーマン", Job: "漁師"},
	{SkillName: "フォーチュンテラー", Job: "占い師"},
	{SkillName: "ブラックスミス", Job: "鍛冶師"},
	{SkillName: "ブルワー", Job: "醸造家"},
	{SkillName: "プレスティディジテイター", Job: "手品師"},
	ProstituteGeneralSkill,
	{SkillName: "ペインター", Job: "絵師"},
	{SkillName: "ベガー", Job: "物乞い"},
	{SkillName: "ヘラルディスト", Job: "紋章学者"},
	{SkillName: "ボーンカーバー", Job: "骨細工師"},
	{SkillName: "マーチャント", Job: "商人"},
	{SkillName: "マイナー", Job: "鉱夫"},
	{SkillName: "ミートパッカー", Job: "精肉業者"},
	{SkillName: "ミッドワイフ", Job: "産婆"},
	{SkillName: "ミュージシャン", Job: "演奏家"},
	{SkillName: "メーソン", Job: "石工"},
	{SkillName: "ライブラリアン", Job: "司書"},
	{SkillName: "ランバージャック", Job: "木こり"},
	{SkillName: "リペアラー", Job: "復元師"},
	{SkillName: "リンギスト", Job: "通訳"},
	{SkillName: "レイバー", Job: "肉体労働者"},
	{SkillName: "レザーワーカー", Job: "皮革職人"},
	{SkillName: "エクスプローラー", Job: "探検家"},
	{SkillName: "エンチャンター", Job: "付与術師"},
	{SkillName: "オラトール", Job: "雄弁家"},
	{SkillName: "カートグラファー", Job: "地図屋"},
	{SkillName: "ギャングスタ", Job: "ギャング"},
	{SkillName: "ギャンブラー", Job: "賭博師"},
	{SkillName: "ストーリーテラー", Job: "語り部"},
	{SkillName: "ディテクティヴ", Job: "探偵"},
	{SkillName: "マネージャー", Job: "元締め"},
	{SkillName: "マナアプレイザー", Job: "魔力鑑定士"},
	{SkillName: "フォレストガイド", Job: "森林案内人"},
	{SkillName: "アーティストマネージャー", Job: "芸能補佐"},
	{SkillName: "チーフタン", Job: "族長"},
	{SkillName: "ピアインスペクター", Job: "橋脚点検士"},
	{SkillName: "プロスペクター", Job: "山師"},
	{SkillName: "マリンアニマルトレーナー", Job: "海獣調教師"},
}
