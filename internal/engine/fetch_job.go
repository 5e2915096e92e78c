package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"

	"github.com/pon3939/SummarizeCharacterSheets/internal/interfaces"
	"github.com/pon3939/SummarizeCharacterSheets/internal/models"
)

// FetchResult counts the outcome of one fetch run.
type FetchResult struct {
	Fetched int `json:"fetched"`
	Failed  int `json:"failed"`
}

// FetchStats are totals since the process started.
type FetchStats struct {
	Runs    int64 `json:"runs"`
	Fetched int64 `json:"fetched"`
	Failed  int64 `json:"failed"`
}

// FetchJob downloads every registered sheet of a season into the store, one
// request at a time.
type FetchJob struct {
	source   interfaces.SheetSource
	store    interfaces.SheetStore
	notifier interfaces.Notifier
	interval time.Duration

	running *atomic.Bool
	runs    *atomic.Int64
	fetched *atomic.Int64
	failed  *atomic.Int64
}

func NewFetchJob(source interfaces.SheetSource, store interfaces.SheetStore, notifier interfaces.Notifier, interval time.Duration) *FetchJob {
	return &FetchJob{
		source:   source,
		store:    store,
		notifier: notifier,
		interval: interval,
		running:  atomic.NewBool(false),
		runs:     atomic.NewInt64(0),
		fetched:  atomic.NewInt64(0),
		failed:   atomic.NewInt64(0),
	}
}

// Stats returns the running totals.
func (j *FetchJob) Stats() FetchStats {
	return FetchStats{
		Runs:    j.runs.Load(),
		Fetched: j.fetched.Load(),
		Failed:  j.failed.Load(),
	}
}

// Run fetches the sheets of every non-deleted character. A sheet that cannot
// be fetched is reported through the notifier and skipped; store errors end
// the run.
func (j *FetchJob) Run(ctx context.Context, seasonID int) (result FetchResult, err error) {
	if !j.running.CompareAndSwap(false, true) {
		return result, ErrRunInProgress
	}
	defer j.running.Store(false)
	j.runs.Inc()

	ctx, span := tracer.Start(ctx, "engine.FetchJob", trace.WithAttributes(attribute.Int("season.id", seasonID)))
	defer func() {
		span.SetAttributes(attribute.Int("sheets.fetched", result.Fetched), attribute.Int("sheets.failed", result.Failed))
		endSpan(span, err)
	}()

	players, err := j.store.ListPlayers(ctx, seasonID)
	if err != nil {
		return result, fmt.Errorf("failed to list players: %w", err)
	}

	accessed := false
	for _, player := range players {
		for _, pc := range player.ActiveCharacters() {
			if accessed {
				if err := j.wait(ctx); err != nil {
					return result, err
				}
			}
			accessed = true

			ok, err := j.fetchOne(ctx, seasonID, pc.YtsheetID)
			if err != nil {
				return result, err
			}
			if ok {
				result.Fetched++
				j.fetched.Inc()
			} else {
				result.Failed++
				j.failed.Inc()
			}
		}
	}

	log.Printf("[FetchJob] Season %d: fetched %d, failed %d", seasonID, result.Fetched, result.Failed)
	return result, nil
}

func (j *FetchJob) wait(ctx context.Context) error {
	timer := time.NewTimer(j.interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (j *FetchJob) fetchOne(ctx context.Context, seasonID int, ytsheetID string) (bool, error) {
	raw, err := j.source.FetchSheet(ctx, ytsheetID)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		log.Printf("[FetchJob] Warning: %v", err)
		notify(ctx, j.notifier, fetchErrorNotification(ytsheetID, err))
		return false, nil
	}

	err = j.store.PutCharacterSheet(ctx, &models.CharacterSheet{
		SeasonID:  seasonID,
		YtsheetID: ytsheetID,
		Body:      string(raw.Body),
		FetchedAt: raw.FetchedAt,
	})
	if err != nil {
		return false, fmt.Errorf("failed to store sheet %s: %w", ytsheetID, err)
	}
	return true, nil
}

func fetchErrorNotification(ytsheetID string, err error) interfaces.Notification {
	fields := map[string]string{"ytsheetId": ytsheetID}

	var fetchErr *interfaces.FetchError
	if !errors.As(err, &fetchErr) {
		return newNotification(SubjectFetchError, err.Error(), fields)
	}
	if fetchErr.StatusCode != 0 {
		fields["status_code"] = strconv.Itoa(fetchErr.StatusCode)
	}
	if fetchErr.Body != "" {
		fields["response"] = fetchErr.Body
	}
	return newNotification(SubjectFetchError, fetchErr.Reason, fields)
}
