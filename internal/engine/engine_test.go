package engine

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/pon3939/SummarizeCharacterSheets/internal/character"
	"github.com/pon3939/SummarizeCharacterSheets/internal/config"
	"github.com/pon3939/SummarizeCharacterSheets/internal/interfaces"
	"github.com/pon3939/SummarizeCharacterSheets/internal/models"
	"github.com/pon3939/SummarizeCharacterSheets/internal/spreadsheet"
)

type fakeStore struct {
	mu       sync.Mutex
	players  []models.Player
	levelCap *models.LevelCap
	sheets   map[string]*models.CharacterSheet
}

func (s *fakeStore) ListPlayers(_ context.Context, _ int) ([]models.Player, error) {
	return s.players, nil
}

func (s *fakeStore) UpsertPlayers(context.Context, int, []interfaces.PlayerEntry) error {
	return errors.New("not implemented")
}

func (s *fakeStore) InsertLevelCaps(context.Context, int, []interfaces.LevelCapEntry) error {
	return errors.New("not implemented")
}

func (s *fakeStore) CurrentLevelCap(context.Context, int, time.Time) (*models.LevelCap, error) {
	if s.levelCap == nil {
		return nil, interfaces.ErrNotFound
	}
	return s.levelCap, nil
}

func (s *fakeStore) GetCharacterSheet(_ context.Context, _ int, ytsheetID string) (*models.CharacterSheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sheet, ok := s.sheets[ytsheetID]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return sheet, nil
}

func (s *fakeStore) PutCharacterSheet(_ context.Context, sheet *models.CharacterSheet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sheets == nil {
		s.sheets = make(map[string]*models.CharacterSheet)
	}
	s.sheets[sheet.YtsheetID] = sheet
	return nil
}

type fakeWriter struct {
	titles    []string
	reordered []string
	failOn    string
}

func (w *fakeWriter) UpdateWorksheet(_ context.Context, table *spreadsheet.Table) error {
	if table.Title == w.failOn {
		return errors.New("quota exceeded")
	}
	w.titles = append(w.titles, table.Title)
	return nil
}

func (w *fakeWriter) ReorderWorksheets(_ context.Context, titles []string) error {
	w.reordered = titles
	return nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []interfaces.Notification
}

func (n *fakeNotifier) Notify(_ context.Context, notification interfaces.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
	return nil
}

type fakeLocker struct {
	held     bool
	unlocked bool
}

func (l *fakeLocker) TryLock(context.Context, string, time.Duration) (bool, error) {
	return !l.held, nil
}

func (l *fakeLocker) Unlock(context.Context, string) error {
	l.unlocked = true
	return nil
}

func player(id uint, name string, sheets ...string) models.Player {
	p := models.Player{ID: id, SeasonID: 1, Name: name}
	for i, s := range sheets {
		p.Characters = append(p.Characters, models.PlayerCharacter{PlayerID: id, SeasonID: 1, YtsheetID: s, Position: i})
	}
	return p
}

func sheet(id, body string) *models.CharacterSheet {
	return &models.CharacterSheet{SeasonID: 1, YtsheetID: id, Body: body, UpdatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
}

func newTestStore() *fakeStore {
	alice := player(1, "alice", "a1", "a2", "a3")
	alice.Characters[2].IsDeleted = true
	return &fakeStore{
		players: []models.Player{
			alice,
			player(2, "bob", "b1"),
			player(3, "carol", "c1"),
		},
		levelCap: &models.LevelCap{MaxExp: 3000, MinimumExp: 1000},
		sheets: map[string]*models.CharacterSheet{
			"a1": sheet("a1", `{"characterName":"たろう","race":"人間","expTotal":"3000","level":"3"}`),
			"a2": sheet("a2", `{"characterName":"じろう","race":"エルフ","expTotal":"500","level":"2"}`),
			"a3": sheet("a3", `{"characterName":"deleted"}`),
			"c1": sheet("c1", `not json`),
		},
	}
}

func newTestEngine(t *testing.T, store interfaces.SheetStore, writer interfaces.SheetWriter, notifier interfaces.Notifier, policy string) *SummaryEngine {
	t.Helper()
	e, err := NewSummaryEngine(store, writer, notifier, config.EngineConfig{FailurePolicy: policy, ParseWorkers: 2}, spreadsheet.Options{})
	if err != nil {
		t.Fatalf("NewSummaryEngine: %v", err)
	}
	return e
}

func TestLoadPlayersSkipsFailures(t *testing.T) {
	notifier := &fakeNotifier{}
	e := newTestEngine(t, newTestStore(), nil, notifier, "skip")

	players, err := e.LoadPlayers(context.Background(), 1)
	if err != nil {
		t.Fatalf("LoadPlayers: %v", err)
	}
	// bob was never fetched and carol's sheet is broken.
	if len(players) != 1 || players[0].Name != "alice" {
		t.Fatalf("players = %+v", players)
	}
	alice := players[0]
	if len(alice.Characters) != 2 || alice.Characters[0].Name != "たろう" || alice.Characters[1].Name != "じろう" {
		t.Fatalf("characters = %+v", alice.Characters)
	}
	if alice.Characters[0].YtsheetID != "a1" || alice.Characters[0].UpdatedAt.IsZero() {
		t.Fatalf("first character = %+v", alice.Characters[0])
	}
	if alice.CountActive() != 1 {
		t.Fatalf("CountActive = %d", alice.CountActive())
	}

	if len(notifier.sent) != 1 || notifier.sent[0].Subject != SubjectParseError || notifier.sent[0].Fields["ytsheetId"] != "c1" {
		t.Fatalf("notifications = %+v", notifier.sent)
	}
}

func TestLoadPlayersFailFast(t *testing.T) {
	e := newTestEngine(t, newTestStore(), nil, nil, "fail_fast")
	_, err := e.LoadPlayers(context.Background(), 1)
	if !errors.Is(err, character.ErrInvalidDocument) {
		t.Fatalf("err = %v, want ErrInvalidDocument", err)
	}
}

func TestLoadPlayersRequiresLevelCap(t *testing.T) {
	store := newTestStore()
	store.levelCap = nil
	e := newTestEngine(t, store, nil, nil, "skip")
	if _, err := e.LoadPlayers(context.Background(), 1); !errors.Is(err, interfaces.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestNewSummaryEngineRejectsPolicy(t *testing.T) {
	_, err := NewSummaryEngine(newTestStore(), nil, nil, config.EngineConfig{FailurePolicy: "retry"}, spreadsheet.Options{})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestUpdateSheets(t *testing.T) {
	tests := []struct {
		name    string
		slugs   []string
		want    []string
		wantErr error
	}{
		{name: "all", want: []string{
			spreadsheet.TitlePlayer, spreadsheet.TitleBasic, spreadsheet.TitleAbility, spreadsheet.TitleStatus,
			spreadsheet.TitleCombatFeat, spreadsheet.TitleHonor, spreadsheet.TitleAbyssCurse, spreadsheet.TitleGeneralSkill,
		}},
		{name: "one", slugs: []string{"honor"}, want: []string{spreadsheet.TitleHonor}},
		{name: "unknown", slugs: []string{"basic", "nope"}, wantErr: ErrUnknownSheet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := &fakeWriter{}
			e := newTestEngine(t, newTestStore(), writer, nil, "skip")
			got, err := e.UpdateSheets(context.Background(), 1, tt.slugs...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				if len(writer.titles) != 0 {
					t.Fatalf("wrote %v before validating", writer.titles)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateSheets: %v", err)
			}
			if len(got) != len(tt.want) || len(writer.titles) != len(tt.want) {
				t.Fatalf("updated = %v, written = %v", got, writer.titles)
			}
			for i := range tt.want {
				if writer.titles[i] != tt.want[i] {
					t.Fatalf("written[%d] = %q, want %q", i, writer.titles[i], tt.want[i])
				}
			}
		})
	}
}

func TestUpdateSheetsStopsOnWriteError(t *testing.T) {
	writer := &fakeWriter{failOn: spreadsheet.TitleAbility}
	e := newTestEngine(t, newTestStore(), writer, nil, "skip")
	got, err := e.UpdateSheets(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(got) != 2 {
		t.Fatalf("updated = %v", got)
	}
	// The guard is released after a failed run.
	if _, err := e.UpdateSheets(context.Background(), 1, "basic"); err != nil {
		t.Fatalf("second run: %v", err)
	}
}

func TestUpdateSheetsGuards(t *testing.T) {
	t.Run("no writer", func(t *testing.T) {
		e := newTestEngine(t, newTestStore(), nil, nil, "skip")
		if _, err := e.UpdateSheets(context.Background(), 1); !errors.Is(err, ErrNoWriter) {
			t.Fatalf("err = %v", err)
		}
	})
	t.Run("running", func(t *testing.T) {
		e := newTestEngine(t, newTestStore(), &fakeWriter{}, nil, "skip")
		e.running.Store(true)
		if _, err := e.UpdateSheets(context.Background(), 1); !errors.Is(err, ErrRunInProgress) {
			t.Fatalf("err = %v", err)
		}
	})
	t.Run("locked elsewhere", func(t *testing.T) {
		e := newTestEngine(t, newTestStore(), &fakeWriter{}, nil, "skip")
		e.SetLocker(&fakeLocker{held: true})
		if _, err := e.UpdateSheets(context.Background(), 1); !errors.Is(err, ErrRunInProgress) {
			t.Fatalf("err = %v", err)
		}
		if e.running.Load() {
			t.Fatal("in-process guard not released")
		}
	})
	t.Run("lock released", func(t *testing.T) {
		locker := &fakeLocker{}
		e := newTestEngine(t, newTestStore(), &fakeWriter{}, nil, "skip")
		e.SetLocker(locker)
		if _, err := e.UpdateSheets(context.Background(), 1, "player"); err != nil {
			t.Fatalf("UpdateSheets: %v", err)
		}
		if !locker.unlocked {
			t.Fatal("lock not released")
		}
	})
}

func TestRenderSheet(t *testing.T) {
	e := newTestEngine(t, newTestStore(), nil, nil, "skip")
	table, err := e.RenderSheet(context.Background(), 1, "basic")
	if err != nil {
		t.Fatalf("RenderSheet: %v", err)
	}
	if table.Title != spreadsheet.TitleBasic || table.RowCount() != 4 {
		t.Fatalf("table = %s with %d rows", table.Title, table.RowCount())
	}
}

func TestReorderWorksheets(t *testing.T) {
	writer := &fakeWriter{}
	e := newTestEngine(t, newTestStore(), writer, nil, "skip")
	if err := e.ReorderWorksheets(context.Background()); err != nil {
		t.Fatalf("ReorderWorksheets: %v", err)
	}
	if len(writer.reordered) != len(spreadsheet.WorksheetOrder) || writer.reordered[0] != spreadsheet.TitleUsage {
		t.Fatalf("reordered = %v", writer.reordered)
	}
}

type fakeSource struct {
	responses map[string]error
	calls     []string
	onFetch   func()
}

func (s *fakeSource) FetchSheet(_ context.Context, ytsheetID string) (*interfaces.RawSheet, error) {
	s.calls = append(s.calls, ytsheetID)
	if s.onFetch != nil {
		s.onFetch()
	}
	if err := s.responses[ytsheetID]; err != nil {
		return nil, err
	}
	return &interfaces.RawSheet{YtsheetID: ytsheetID, Body: []byte(`{"characterName":"` + ytsheetID + `"}`), FetchedAt: time.Now()}, nil
}

func TestFetchJob(t *testing.T) {
	store := newTestStore()
	store.sheets = nil
	source := &fakeSource{responses: map[string]error{
		"b1": &interfaces.FetchError{YtsheetID: "b1", Reason: "JSON形式ではありません", StatusCode: 200, Body: "<html>"},
		"c1": errors.New("connection reset"),
	}}
	notifier := &fakeNotifier{}
	job := NewFetchJob(source, store, notifier, 0)

	result, err := job.Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Fetched != 2 || result.Failed != 2 {
		t.Fatalf("result = %+v", result)
	}
	// Deleted characters are not requested.
	want := []string{"a1", "a2", "b1", "c1"}
	if len(source.calls) != len(want) {
		t.Fatalf("calls = %v", source.calls)
	}
	for i := range want {
		if source.calls[i] != want[i] {
			t.Fatalf("calls = %v", source.calls)
		}
	}

	stored := make([]string, 0, len(store.sheets))
	for id := range store.sheets {
		stored = append(stored, id)
	}
	sort.Strings(stored)
	if len(stored) != 2 || stored[0] != "a1" || stored[1] != "a2" {
		t.Fatalf("stored = %v", stored)
	}

	if len(notifier.sent) != 2 {
		t.Fatalf("notifications = %+v", notifier.sent)
	}
	first := notifier.sent[0]
	if first.Subject != SubjectFetchError || first.Message != "JSON形式ではありません" || first.Fields["status_code"] != "200" || first.Fields["response"] != "<html>" {
		t.Fatalf("first notification = %+v", first)
	}
	if first.ID == "" || first.Timestamp == 0 {
		t.Fatalf("notification missing id or timestamp: %+v", first)
	}
	if notifier.sent[1].Message != "connection reset" {
		t.Fatalf("second notification = %+v", notifier.sent[1])
	}

	if stats := job.Stats(); stats.Runs != 1 || stats.Fetched != 2 || stats.Failed != 2 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestFetchJobStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	source := &fakeSource{onFetch: cancel}
	job := NewFetchJob(source, newTestStore(), nil, time.Hour)

	result, err := job.Run(ctx, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if result.Fetched != 1 || len(source.calls) != 1 {
		t.Fatalf("result = %+v, calls = %v", result, source.calls)
	}
}

func TestMultiNotifier(t *testing.T) {
	a, b := &fakeNotifier{}, &fakeNotifier{}
	n := newNotification("s", "m", nil)
	if err := (MultiNotifier{a, nil, LogNotifier{}, b}).Notify(context.Background(), n); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(a.sent) != 1 || len(b.sent) != 1 || a.sent[0].ID != n.ID {
		t.Fatalf("a = %v, b = %v", a.sent, b.sent)
	}
}
