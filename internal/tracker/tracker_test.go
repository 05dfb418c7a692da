package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poe2-ladder-tracker/internal/ladder"
)

type mockSearcher struct {
	leagueID string
	result   *ladder.CharacterRank
	err      error

	resolveCalls int
	searchCalls  int
	lastLeagueID string
}

func (m *mockSearcher) ResolveLeagueID(ctx context.Context, name string) string {
	m.resolveCalls++
	if m.leagueID != "" {
		return m.leagueID
	}
	return name
}

func (m *mockSearcher) FindCharacter(ctx context.Context, leagueID, characterName string) (*ladder.CharacterRank, error) {
	m.searchCalls++
	m.lastLeagueID = leagueID
	return m.result, m.err
}

type mockWriter struct {
	calls   int
	results []*ladder.CharacterRank
}

func (m *mockWriter) Write(result *ladder.CharacterRank, leagueName string) {
	m.calls++
	m.results = append(m.results, result)
}

type mockNotifier struct {
	messages []string
}

func (m *mockNotifier) Send(text string) error {
	m.messages = append(m.messages, text)
	return nil
}

func newTestTracker(searcher *mockSearcher, writer *mockWriter, notifier *mockNotifier) *Tracker {
	var n Notifier
	if notifier != nil {
		n = notifier
	}
	return New(searcher, writer, n, "TestChar", "Standard", time.Minute)
}

func TestRunCycle_OneResolveOneSearchOneWrite(t *testing.T) {
	searcher := &mockSearcher{leagueID: "standard-id", result: &ladder.CharacterRank{Level: "92", Rank: "5"}}
	writer := &mockWriter{}
	tr := newTestTracker(searcher, writer, nil)

	tr.RunCycle(context.Background())

	assert.Equal(t, 1, searcher.resolveCalls)
	assert.Equal(t, 1, searcher.searchCalls)
	assert.Equal(t, 1, writer.calls)
	assert.Equal(t, "standard-id", searcher.lastLeagueID)
}

func TestRunCycle_WritesResultOnSuccess(t *testing.T) {
	result := &ladder.CharacterRank{Level: "92", Rank: "5"}
	searcher := &mockSearcher{result: result}
	writer := &mockWriter{}
	tr := newTestTracker(searcher, writer, nil)

	tr.RunCycle(context.Background())

	require.Len(t, writer.results, 1)
	assert.Equal(t, result, writer.results[0])
}

func TestRunCycle_WritesNilOnNotFound(t *testing.T) {
	searcher := &mockSearcher{err: ladder.ErrNotFound}
	writer := &mockWriter{}
	tr := newTestTracker(searcher, writer, nil)

	tr.RunCycle(context.Background())

	require.Len(t, writer.results, 1)
	assert.Nil(t, writer.results[0])
}

func TestRunCycle_WritesNilOnRateLimit(t *testing.T) {
	searcher := &mockSearcher{err: ladder.ErrRateLimited}
	writer := &mockWriter{}
	tr := newTestTracker(searcher, writer, nil)

	tr.RunCycle(context.Background())

	require.Len(t, writer.results, 1)
	assert.Nil(t, writer.results[0])
	// The configured interval is untouched by rate limiting.
	assert.Equal(t, time.Minute, tr.interval)
}

func TestRunCycle_FailureDoesNotStopNextCycle(t *testing.T) {
	searcher := &mockSearcher{err: ladder.ErrLeagueNotFound}
	writer := &mockWriter{}
	tr := newTestTracker(searcher, writer, nil)

	tr.RunCycle(context.Background())
	searcher.err = nil
	searcher.result = &ladder.CharacterRank{Level: "92", Rank: "5"}
	tr.RunCycle(context.Background())

	assert.Equal(t, 2, writer.calls)
	assert.Nil(t, writer.results[0])
	assert.NotNil(t, writer.results[1])
}

func TestNotify_FirstObservation(t *testing.T) {
	searcher := &mockSearcher{result: &ladder.CharacterRank{Level: "92", Rank: "5"}}
	notifier := &mockNotifier{}
	tr := newTestTracker(searcher, &mockWriter{}, notifier)

	tr.RunCycle(context.Background())

	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "rank 5")
}

func TestNotify_UnchangedRankIsSilent(t *testing.T) {
	searcher := &mockSearcher{result: &ladder.CharacterRank{Level: "92", Rank: "5"}}
	notifier := &mockNotifier{}
	tr := newTestTracker(searcher, &mockWriter{}, notifier)

	tr.RunCycle(context.Background())
	tr.RunCycle(context.Background())

	assert.Len(t, notifier.messages, 1)
}

func TestNotify_RankChange(t *testing.T) {
	searcher := &mockSearcher{result: &ladder.CharacterRank{Level: "92", Rank: "5"}}
	notifier := &mockNotifier{}
	tr := newTestTracker(searcher, &mockWriter{}, notifier)

	tr.RunCycle(context.Background())
	searcher.result = &ladder.CharacterRank{Level: "92", Rank: "4"}
	tr.RunCycle(context.Background())

	require.Len(t, notifier.messages, 2)
	assert.Contains(t, notifier.messages[1], "rank 4")
}

func TestNotify_DroppedOffLadder(t *testing.T) {
	searcher := &mockSearcher{result: &ladder.CharacterRank{Level: "92", Rank: "5"}}
	notifier := &mockNotifier{}
	tr := newTestTracker(searcher, &mockWriter{}, notifier)

	tr.RunCycle(context.Background())
	searcher.result = nil
	searcher.err = ladder.ErrNotFound
	tr.RunCycle(context.Background())

	require.Len(t, notifier.messages, 2)
	assert.Contains(t, notifier.messages[1], "dropped off")
}

func TestNotify_AbsentStaysSilent(t *testing.T) {
	searcher := &mockSearcher{err: ladder.ErrNotFound}
	notifier := &mockNotifier{}
	tr := newTestTracker(searcher, &mockWriter{}, notifier)

	tr.RunCycle(context.Background())
	tr.RunCycle(context.Background())

	assert.Empty(t, notifier.messages)
}

func TestNotify_NoNotifierConfigured(t *testing.T) {
	searcher := &mockSearcher{result: &ladder.CharacterRank{Level: "92", Rank: "5"}}
	tr := newTestTracker(searcher, &mockWriter{}, nil)

	assert.NotPanics(t, func() { tr.RunCycle(context.Background()) })
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	searcher := &mockSearcher{result: &ladder.CharacterRank{Level: "92", Rank: "5"}}
	writer := &mockWriter{}
	tr := New(searcher, writer, nil, "TestChar", "Standard", 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tr.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}

	assert.GreaterOrEqual(t, searcher.searchCalls, 1)
	assert.Equal(t, searcher.searchCalls, writer.calls)
}