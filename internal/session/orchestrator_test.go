package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amarkules1/football-stats-tracker/internal/nfl"
)

// stubGateway replays canned results and records every request it sees.
type stubGateway struct {
	mu           sync.Mutex
	schedule     []nfl.GameScheduleItem
	scheduleErr  error
	game         *nfl.GameData
	gameErr      error
	gameRequests []*nfl.ExtractionRequest
	scheduleHits int

	// When set, FetchGameData blocks until released.
	block chan struct{}
}

func (g *stubGateway) FetchSchedule(ctx context.Context, season, week string) ([]nfl.GameScheduleItem, error) {
	g.mu.Lock()
	g.scheduleHits++
	g.mu.Unlock()
	return g.schedule, g.scheduleErr
}

func (g *stubGateway) FetchGameData(ctx context.Context, req *nfl.ExtractionRequest) (*nfl.GameData, error) {
	g.mu.Lock()
	g.gameRequests = append(g.gameRequests, req)
	block := g.block
	g.mu.Unlock()
	if block != nil {
		<-block
	}
	if g.gameErr != nil {
		return nil, g.gameErr
	}
	// Fresh copy per call so history entries are distinct objects
	game := *g.game
	return &game, nil
}

func (g *stubGateway) requests() []*nfl.ExtractionRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*nfl.ExtractionRequest, len(g.gameRequests))
	copy(out, g.gameRequests)
	return out
}

func testGame(id string) *nfl.GameData {
	return &nfl.GameData{
		ID:       id,
		Date:     "2023-09-07",
		Season:   "2023",
		Week:     "1",
		HomeTeam: nfl.TeamGameStats{TeamName: "Kansas City Chiefs", Score: 20},
		AwayTeam: nfl.TeamGameStats{TeamName: "Detroit Lions", Score: 21},
		Summary:  "Opener.",
	}
}

func testSchedule() []nfl.GameScheduleItem {
	return []nfl.GameScheduleItem{
		{HomeTeam: "Kansas City Chiefs", AwayTeam: "Detroit Lions", Date: "2023-09-07"},
		{HomeTeam: "New York Giants", AwayTeam: "Dallas Cowboys", Date: "2023-09-10"},
	}
}

// recordingNotifier keeps every snapshot it was handed.
type recordingNotifier struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (n *recordingNotifier) NotifyState(snap Snapshot) {
	n.mu.Lock()
	n.snaps = append(n.snaps, snap)
	n.mu.Unlock()
}

func (n *recordingNotifier) statuses() []Status {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Status, len(n.snaps))
	for i, s := range n.snaps {
		out[i] = s.Status
	}
	return out
}

// TestSubmit_WithTeam tests that a request naming a team extracts directly
// and never enters disambiguation
func TestSubmit_WithTeam(t *testing.T) {
	gw := &stubGateway{game: testGame("g1")}
	notifier := &recordingNotifier{}
	orch := NewOrchestrator(gw, notifier, nil)

	err := orch.Submit(context.Background(), &nfl.ExtractionRequest{Season: "2023", Week: "1", Team: "Chiefs"})
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, orch.Status())
	assert.Equal(t, 0, gw.scheduleHits)
	require.Len(t, gw.requests(), 1)

	require.NotNil(t, orch.Current())
	assert.Equal(t, "Kansas City Chiefs", orch.Current().HomeTeam.TeamName)
	assert.Len(t, orch.History(), 1)

	assert.Equal(t, []Status{StatusLoading, StatusSuccess}, notifier.statuses())
	assert.NotContains(t, notifier.statuses(), StatusSelectingGame)
}

// TestSubmit_WithoutTeam tests the disambiguation branch
func TestSubmit_WithoutTeam(t *testing.T) {
	gw := &stubGateway{schedule: testSchedule(), game: testGame("g1")}
	orch := NewOrchestrator(gw, nil, nil)
	ctx := context.Background()

	require.NoError(t, orch.Submit(ctx, &nfl.ExtractionRequest{Season: "2023", Week: "1"}))
	assert.Equal(t, StatusSelectingGame, orch.Status())

	snap := orch.Snapshot()
	require.Len(t, snap.Schedule, 2)
	assert.Nil(t, snap.Current)
	assert.Len(t, gw.requests(), 0)

	// Selecting game 1 issues an explicit matchup for that game
	require.NoError(t, orch.SelectGame(ctx, 1))
	assert.Equal(t, StatusSuccess, orch.Status())

	reqs := gw.requests()
	require.Len(t, reqs, 1)
	require.NotNil(t, reqs[0].Matchup)
	assert.Equal(t, "New York Giants", reqs[0].Matchup.Home)
	assert.Equal(t, "Dallas Cowboys", reqs[0].Matchup.Away)
	assert.Equal(t, "2023", reqs[0].Season)
	assert.Equal(t, "1", reqs[0].Week)

	// Schedule is discarded once a selection is made
	assert.Empty(t, orch.Snapshot().Schedule)
}

func TestSelectGameByTeam(t *testing.T) {
	gw := &stubGateway{schedule: testSchedule(), game: testGame("g1")}
	orch := NewOrchestrator(gw, nil, nil)
	ctx := context.Background()

	require.NoError(t, orch.Submit(ctx, &nfl.ExtractionRequest{Season: "2023", Week: "1"}))
	require.NoError(t, orch.SelectGameByTeam(ctx, "cowboys"))

	reqs := gw.requests()
	require.Len(t, reqs, 1)
	require.NotNil(t, reqs[0].Matchup)
	assert.Equal(t, "Dallas Cowboys", reqs[0].Matchup.Away)
}

func TestSelectGame_Guards(t *testing.T) {
	ctx := context.Background()

	t.Run("no active schedule", func(t *testing.T) {
		orch := NewOrchestrator(&stubGateway{game: testGame("g1")}, nil, nil)
		assert.ErrorIs(t, orch.SelectGame(ctx, 0), ErrNoActiveSchedule)
	})

	t.Run("index out of range", func(t *testing.T) {
		gw := &stubGateway{schedule: testSchedule()}
		orch := NewOrchestrator(gw, nil, nil)
		require.NoError(t, orch.Submit(ctx, &nfl.ExtractionRequest{Season: "2023", Week: "1"}))

		assert.Error(t, orch.SelectGame(ctx, 2))
		assert.Error(t, orch.SelectGame(ctx, -1))
		// Still selectable after a bad index
		assert.Equal(t, StatusSelectingGame, orch.Status())
	})

	t.Run("unknown team", func(t *testing.T) {
		gw := &stubGateway{schedule: testSchedule()}
		orch := NewOrchestrator(gw, nil, nil)
		require.NoError(t, orch.Submit(ctx, &nfl.ExtractionRequest{Season: "2023", Week: "1"}))

		assert.Error(t, orch.SelectGameByTeam(ctx, "Green Bay Packers"))
		assert.Equal(t, StatusSelectingGame, orch.Status())
	})
}

// TestHistory_MostRecentFirst tests ordering after three extractions
func TestHistory_MostRecentFirst(t *testing.T) {
	gw := &stubGateway{game: testGame("a")}
	orch := NewOrchestrator(gw, nil, nil)
	ctx := context.Background()
	req := &nfl.ExtractionRequest{Season: "2023", Week: "1", Team: "Chiefs"}

	require.NoError(t, orch.Submit(ctx, req))
	gw.game = testGame("b")
	require.NoError(t, orch.Submit(ctx, req))
	gw.game = testGame("c")
	require.NoError(t, orch.Submit(ctx, req))

	history := orch.History()
	require.Len(t, history, 3)
	assert.Equal(t, "c", history[0].ID)
	assert.Equal(t, "b", history[1].ID)
	assert.Equal(t, "a", history[2].ID)
	assert.Equal(t, "c", orch.Current().ID)
}

// TestFailure_LeavesResultAndHistory tests that a failed extraction reports
// an error without disturbing what is already displayed
func TestFailure_LeavesResultAndHistory(t *testing.T) {
	gw := &stubGateway{game: testGame("a")}
	orch := NewOrchestrator(gw, nil, nil)
	ctx := context.Background()
	req := &nfl.ExtractionRequest{Season: "2023", Week: "1", Team: "Chiefs"}

	require.NoError(t, orch.Submit(ctx, req))

	gw.gameErr = errors.New("model returned no text")
	err := orch.Submit(ctx, req)
	require.Error(t, err)

	snap := orch.Snapshot()
	assert.Equal(t, StatusError, snap.Status)
	assert.Contains(t, snap.Error, "model returned no text")
	require.NotNil(t, snap.Current)
	assert.Equal(t, "a", snap.Current.ID)
	assert.Len(t, snap.History, 1)

	// A later success clears the error and resumes normally
	gw.gameErr = nil
	gw.game = testGame("b")
	require.NoError(t, orch.Submit(ctx, req))
	snap = orch.Snapshot()
	assert.Equal(t, StatusSuccess, snap.Status)
	assert.Empty(t, snap.Error)
	assert.Len(t, snap.History, 2)
}

// TestSingleFlight tests that concurrent submissions are rejected while one
// is loading
func TestSingleFlight(t *testing.T) {
	gw := &stubGateway{game: testGame("a"), block: make(chan struct{})}
	orch := NewOrchestrator(gw, nil, nil)
	ctx := context.Background()
	req := &nfl.ExtractionRequest{Season: "2023", Week: "1", Team: "Chiefs"}

	done := make(chan error, 1)
	go func() {
		done <- orch.Submit(ctx, req)
	}()

	// Wait for the first submission to reach loading
	require.Eventually(t, func() bool {
		return orch.Status() == StatusLoading
	}, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, orch.Submit(ctx, req), ErrExtractionInFlight)
	assert.ErrorIs(t, orch.SelectGame(ctx, 0), ErrExtractionInFlight)

	close(gw.block)
	require.NoError(t, <-done)
	assert.Equal(t, StatusSuccess, orch.Status())
	assert.Len(t, orch.History(), 1)
}

// TestEmptySchedule tests that a week with no games still enters selection
func TestEmptySchedule(t *testing.T) {
	gw := &stubGateway{schedule: []nfl.GameScheduleItem{}}
	orch := NewOrchestrator(gw, nil, nil)

	require.NoError(t, orch.Submit(context.Background(), &nfl.ExtractionRequest{Season: "2023", Week: "1"}))
	assert.Equal(t, StatusSelectingGame, orch.Status())
	assert.Empty(t, orch.Snapshot().Schedule)
}

func TestScheduleFetchFailure(t *testing.T) {
	gw := &stubGateway{scheduleErr: fmt.Errorf("upstream unavailable")}
	orch := NewOrchestrator(gw, nil, nil)

	err := orch.Submit(context.Background(), &nfl.ExtractionRequest{Season: "2023", Week: "1"})
	require.Error(t, err)
	assert.Equal(t, StatusError, orch.Status())
}

// recordingPublisher counts completed extractions handed to the stream.
type recordingPublisher struct {
	mu    sync.Mutex
	games []*nfl.GameData
}

func (p *recordingPublisher) PublishExtraction(ctx context.Context, game *nfl.GameData) error {
	p.mu.Lock()
	p.games = append(p.games, game)
	p.mu.Unlock()
	return nil
}

func TestPublisher_ReceivesCompletedExtractions(t *testing.T) {
	gw := &stubGateway{game: testGame("a")}
	pub := &recordingPublisher{}
	orch := NewOrchestrator(gw, nil, pub)
	ctx := context.Background()
	req := &nfl.ExtractionRequest{Season: "2023", Week: "1", Team: "Chiefs"}

	require.NoError(t, orch.Submit(ctx, req))

	gw.gameErr = errors.New("boom")
	_ = orch.Submit(ctx, req)

	require.Len(t, pub.games, 1)
	assert.Equal(t, "a", pub.games[0].ID)
}

func TestSubmit_InvalidRequest(t *testing.T) {
	orch := NewOrchestrator(&stubGateway{}, nil, nil)
	err := orch.Submit(context.Background(), &nfl.ExtractionRequest{Week: "1"})
	require.Error(t, err)
	assert.Equal(t, StatusIdle, orch.Status())
}
