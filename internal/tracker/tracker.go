package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"poe2-ladder-tracker/internal/ladder"
	"poe2-ladder-tracker/internal/repository/memory"
)

// Searcher is the slice of the ladder service the tracker drives each cycle.
type Searcher interface {
	ResolveLeagueID(ctx context.Context, name string) string
	FindCharacter(ctx context.Context, leagueID, characterName string) (*ladder.CharacterRank, error)
}

// Writer persists one cycle's result.
type Writer interface {
	Write(result *ladder.CharacterRank, leagueName string)
}

// Notifier pushes rank-change messages. notify.Notifier satisfies this even
// when nil.
type Notifier interface {
	Send(text string) error
}

// Tracker runs the resolve/search/write cycle on a fixed interval.
type Tracker struct {
	searcher      Searcher
	writer        Writer
	notifier      Notifier
	repo          *memory.Repository
	characterName string
	leagueName    string
	interval      time.Duration
}

func New(searcher Searcher, writer Writer, notifier Notifier, characterName, leagueName string, interval time.Duration) *Tracker {
	return &Tracker{
		searcher:      searcher,
		writer:        writer,
		notifier:      notifier,
		repo:          memory.NewRepository(),
		characterName: characterName,
		leagueName:    leagueName,
		interval:      interval,
	}
}

// RunCycle performs exactly one cycle: resolve the league id, search the
// ladder, write the output file. Every failure is contained to this cycle
// and surfaces as an empty output file plus a log line.
func (t *Tracker) RunCycle(ctx context.Context) {
	slog.Info("Checking ladder", "league", t.leagueName)

	leagueID := t.searcher.ResolveLeagueID(ctx, t.leagueName)

	result, err := t.searcher.FindCharacter(ctx, leagueID, t.characterName)
	if err != nil && !errors.Is(err, ladder.ErrNotFound) {
		slog.Error("Ladder check failed", "league", t.leagueName, "error", err)
		result = nil
	}

	t.writer.Write(result, t.leagueName)
	t.notifyOnChange(result)
}

// Run schedules RunCycle on the configured interval and blocks until ctx is
// cancelled. The first cycle runs immediately; cycles never overlap.
func (t *Tracker) Run(ctx context.Context) error {
	interval := t.interval
	if interval <= 0 {
		interval = time.Millisecond
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { t.RunCycle(ctx) }),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to create tracker job: %w", err)
	}

	slog.Info("Starting tracker loop", "interval", interval)
	s.Start()

	<-ctx.Done()

	slog.Info("Tracker stopped by user")
	return s.Shutdown()
}

func (t *Tracker) notifyOnChange(result *ladder.CharacterRank) {
	last := t.repo.GetLast()
	t.repo.SaveLast(result)

	if t.notifier == nil {
		return
	}

	switch {
	case result == nil && last == nil:
		return
	case result == nil:
		t.notifier.Send(fmt.Sprintf("*%s* dropped off the %s ladder", t.characterName, t.leagueName))
	case last == nil || *last != *result:
		t.notifier.Send(fmt.Sprintf("*%s* is now rank %s (level %s) in %s", t.characterName, result.Rank, result.Level, t.leagueName))
	}
}
