// Package engine runs the summary and fetch jobs over stored sheets.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/pon3939/SummarizeCharacterSheets/internal/character"
	"github.com/pon3939/SummarizeCharacterSheets/internal/config"
	"github.com/pon3939/SummarizeCharacterSheets/internal/interfaces"
	"github.com/pon3939/SummarizeCharacterSheets/internal/spreadsheet"
)

// FailurePolicy decides what happens to a run when a sheet cannot be decoded.
type FailurePolicy string

const (
	// FailFast aborts the run on the first undecodable sheet.
	FailFast FailurePolicy = "fail_fast"
	// SkipFailed leaves the character out and notifies.
	SkipFailed FailurePolicy = "skip"
)

var (
	ErrRunInProgress = errors.New("a run is already in progress")
	ErrUnknownSheet  = errors.New("unknown sheet")
	ErrNoWriter      = errors.New("spreadsheet writer is not configured")
)

var tracer = otel.Tracer("github.com/pon3939/SummarizeCharacterSheets/internal/engine")

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// SummaryEngine parses the stored sheets of a season and publishes the
// worksheets built from them.
type SummaryEngine struct {
	store    interfaces.SheetStore
	writer   interfaces.SheetWriter
	notifier interfaces.Notifier
	locker   interfaces.Locker

	policy  FailurePolicy
	dedup   character.GMDedup
	workers int
	lockTTL time.Duration
	opts    spreadsheet.Options

	running *atomic.Bool
	now     func() time.Time
}

// NewSummaryEngine creates an engine. writer may be nil, in which case only
// rendering is available.
func NewSummaryEngine(
	store interfaces.SheetStore,
	writer interfaces.SheetWriter,
	notifier interfaces.Notifier,
	cfg config.EngineConfig,
	opts spreadsheet.Options,
) (*SummaryEngine, error) {
	dedup, err := character.ParseGMDedup(cfg.GMDedup)
	if err != nil {
		return nil, err
	}
	policy := FailurePolicy(cfg.FailurePolicy)
	switch policy {
	case "":
		policy = SkipFailed
	case FailFast, SkipFailed:
	default:
		return nil, fmt.Errorf("unknown failure policy %q", cfg.FailurePolicy)
	}

	return &SummaryEngine{
		store:    store,
		writer:   writer,
		notifier: notifier,
		policy:   policy,
		dedup:    dedup,
		workers:  cfg.ParseWorkers,
		lockTTL:  cfg.LockTTL,
		opts:     opts,
		running:  atomic.NewBool(false),
		now:      time.Now,
	}, nil
}

// SetLocker guards runs across processes as well.
func (e *SummaryEngine) SetLocker(locker interfaces.Locker) {
	e.locker = locker
}

// acquire takes the in-process guard and, when configured, the shared lock.
// A lock backend that cannot be reached does not block the run.
func (e *SummaryEngine) acquire(ctx context.Context, key string) (func(), error) {
	if !e.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}

	locked := false
	if e.locker != nil {
		ok, err := e.locker.TryLock(ctx, key, e.lockTTL)
		switch {
		case err != nil:
			log.Printf("[Engine] Warning: lock unavailable, continuing: %v", err)
		case !ok:
			e.running.Store(false)
			return nil, ErrRunInProgress
		default:
			locked = true
		}
	}

	return func() {
		if locked {
			if err := e.locker.Unlock(context.Background(), key); err != nil {
				log.Printf("[Engine] Warning: failed to release lock %s: %v", key, err)
			}
		}
		e.running.Store(false)
	}, nil
}

// LoadPlayers parses every non-deleted character of a season against the
// level cap in force now. Characters are parsed concurrently; players keep
// their registration order. Sheets that were never fetched are skipped, as
// are players left with no characters.
func (e *SummaryEngine) LoadPlayers(ctx context.Context, seasonID int) (players []*character.Player, err error) {
	ctx, span := tracer.Start(ctx, "engine.LoadPlayers", trace.WithAttributes(attribute.Int("season.id", seasonID)))
	defer func() { endSpan(span, err) }()

	records, err := e.store.ListPlayers(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	capRecord, err := e.store.CurrentLevelCap(ctx, seasonID, e.now())
	if err != nil {
		return nil, fmt.Errorf("failed to get level cap: %w", err)
	}
	levelCap := character.LevelCap{MaxExp: capRecord.MaxExp, MinimumExp: capRecord.MinimumExp}

	parsed := make([][]*character.Character, len(records))
	g, gctx := errgroup.WithContext(ctx)
	if e.workers > 0 {
		g.SetLimit(e.workers)
	}
	for i, record := range records {
		active := record.ActiveCharacters()
		parsed[i] = make([]*character.Character, len(active))
		for j, pc := range active {
			g.Go(func() error {
				c, err := e.loadCharacter(gctx, seasonID, record.Name, pc.YtsheetID, levelCap)
				if err != nil {
					return err
				}
				parsed[i][j] = c
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	players = make([]*character.Player, 0, len(records))
	for i, record := range records {
		characters := make([]*character.Character, 0, len(parsed[i]))
		for _, c := range parsed[i] {
			if c != nil {
				characters = append(characters, c)
			}
		}
		if len(characters) == 0 {
			log.Printf("[Engine] Player %s has no parsed characters, skipping", record.Name)
			continue
		}
		players = append(players, character.NewPlayer(record.Name, characters, e.dedup))
	}
	span.SetAttributes(attribute.Int("players.count", len(players)))
	return players, nil
}

func (e *SummaryEngine) loadCharacter(ctx context.Context, seasonID int, playerName, ytsheetID string, levelCap character.LevelCap) (*character.Character, error) {
	sheet, err := e.store.GetCharacterSheet(ctx, seasonID, ytsheetID)
	if errors.Is(err, interfaces.ErrNotFound) {
		log.Printf("[Engine] Sheet %s has not been fetched, skipping", ytsheetID)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sheet %s: %w", ytsheetID, err)
	}

	doc, err := character.DecodeDocument([]byte(sheet.Body))
	if err != nil {
		err = fmt.Errorf("failed to decode sheet %s: %w", ytsheetID, err)
		if e.policy == FailFast {
			return nil, err
		}
		log.Printf("[Engine] Warning: %v", err)
		notify(ctx, e.notifier, newNotification(SubjectParseError, err.Error(), map[string]string{
			"ytsheetId": ytsheetID,
			"player":    playerName,
		}))
		return nil, nil
	}

	c := character.Parse(doc, playerName, levelCap)
	c.YtsheetID = ytsheetID
	c.UpdatedAt = sheet.UpdatedAt
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = sheet.FetchedAt
	}
	return c, nil
}

func selectSheets(slugs []string) ([]spreadsheet.Sheet, error) {
	if len(slugs) == 0 {
		return spreadsheet.Sheets, nil
	}
	sheets := make([]spreadsheet.Sheet, 0, len(slugs))
	for _, slug := range slugs {
		s, ok := spreadsheet.LookupSheet(slug)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSheet, slug)
		}
		sheets = append(sheets, s)
	}
	return sheets, nil
}

// RenderSheet builds one worksheet without writing it.
func (e *SummaryEngine) RenderSheet(ctx context.Context, seasonID int, slug string) (*spreadsheet.Table, error) {
	sheets, err := selectSheets([]string{slug})
	if err != nil {
		return nil, err
	}
	players, err := e.LoadPlayers(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	return sheets[0].Build(players, e.opts), nil
}

// UpdateSheets rebuilds and writes the named worksheets, or all of them
// when no slug is given. It returns the titles written before any error.
func (e *SummaryEngine) UpdateSheets(ctx context.Context, seasonID int, slugs ...string) (updated []string, err error) {
	if e.writer == nil {
		return nil, ErrNoWriter
	}
	sheets, err := selectSheets(slugs)
	if err != nil {
		return nil, err
	}

	release, err := e.acquire(ctx, fmt.Sprintf("season:%d", seasonID))
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, span := tracer.Start(ctx, "engine.UpdateSheets", trace.WithAttributes(
		attribute.Int("season.id", seasonID),
		attribute.Int("sheets.count", len(sheets)),
	))
	defer func() { endSpan(span, err) }()

	start := time.Now()
	players, err := e.LoadPlayers(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	for _, s := range sheets {
		table := s.Build(players, e.opts)
		if err := e.writer.UpdateWorksheet(ctx, table); err != nil {
			return updated, fmt.Errorf("failed to update %s: %w", s.Title, err)
		}
		updated = append(updated, s.Title)
	}
	log.Printf("[Engine] Updated %d sheets for season %d in %v", len(updated), seasonID, time.Since(start))
	return updated, nil
}

// ReorderWorksheets applies the fixed tab order.
func (e *SummaryEngine) ReorderWorksheets(ctx context.Context) (err error) {
	if e.writer == nil {
		return ErrNoWriter
	}
	ctx, span := tracer.Start(ctx, "engine.ReorderWorksheets")
	defer func() { endSpan(span, err) }()
	return e.writer.ReorderWorksheets(ctx, spreadsheet.WorksheetOrder)
}
