package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/amarkules1/football-stats-tracker/internal/nfl"
)

// Status is the user-visible extraction state.
type Status string

const (
	StatusIdle          Status = "idle"
	StatusLoading       Status = "loading"
	StatusSelectingGame Status = "selecting_game"
	StatusSuccess       Status = "success"
	StatusError         Status = "error"
)

// ErrExtractionInFlight is returned when a submission or selection arrives
// while another extraction is still loading. Single-flight is a state
// machine rule here, not a disabled button in the UI.
var ErrExtractionInFlight = errors.New("session: an extraction is already in flight")

// ErrNoActiveSchedule is returned when a selection arrives outside the
// disambiguation state.
var ErrNoActiveSchedule = errors.New("session: no schedule to select from")

// Gateway is the extraction backend the orchestrator drives.
type Gateway interface {
	FetchSchedule(ctx context.Context, season, week string) ([]nfl.GameScheduleItem, error)
	FetchGameData(ctx context.Context, req *nfl.ExtractionRequest) (*nfl.GameData, error)
}

// Notifier receives a state snapshot after every transition. Best effort;
// typically the websocket broadcast.
type Notifier interface {
	NotifyState(snap Snapshot)
}

// Publisher receives every completed extraction. Best effort.
type Publisher interface {
	PublishExtraction(ctx context.Context, game *nfl.GameData) error
}

// Snapshot is a consistent copy of the orchestrator state handed to the
// presentation layer. Slices are copies; mutating them does not touch the
// orchestrator.
type Snapshot struct {
	Status   Status                 `json:"status"`
	Error    string                 `json:"error,omitempty"`
	Schedule []nfl.GameScheduleItem `json:"schedule,omitempty"`
	Current  *nfl.GameData          `json:"current,omitempty"`
	History  []*nfl.GameData        `json:"history"`
}

// Orchestrator drives the request/disambiguation/result flow and owns the
// in-session history. It is the only writer of the current result and the
// history list; both change only on successful completion of a fetch.
type Orchestrator struct {
	gateway   Gateway
	notifier  Notifier  // optional
	publisher Publisher // optional

	mu       sync.Mutex
	status   Status
	errMsg   string
	current  *nfl.GameData
	schedule []nfl.GameScheduleItem
	history  []*nfl.GameData

	// Season/week remembered while disambiguating, so a selection can be
	// turned back into an explicit-matchup request.
	pendingSeason string
	pendingWeek   string
}

// NewOrchestrator creates the session state machine. notifier and publisher
// may be nil.
func NewOrchestrator(gateway Gateway, notifier Notifier, publisher Publisher) *Orchestrator {
	return &Orchestrator{
		gateway:   gateway,
		notifier:  notifier,
		publisher: publisher,
		status:    StatusIdle,
	}
}

// Submit runs one extraction request to a terminal state. A request naming
// a team or matchup goes straight to game extraction; one naming neither
// fetches the week's schedule and parks in StatusSelectingGame for the
// operator to disambiguate. Returns ErrExtractionInFlight without touching
// state if called while loading.
func (o *Orchestrator) Submit(ctx context.Context, req *nfl.ExtractionRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	o.mu.Lock()
	if o.status == StatusLoading {
		o.mu.Unlock()
		return ErrExtractionInFlight
	}
	o.status = StatusLoading
	o.errMsg = ""
	o.schedule = nil
	o.pendingSeason = req.Season
	o.pendingWeek = req.Week
	o.mu.Unlock()
	o.notify()

	if req.Mode() == nfl.MatchAny {
		return o.runScheduleFetch(ctx, req.Season, req.Week)
	}
	return o.runExtraction(ctx, req)
}

// SelectGame resolves disambiguation by index into the schedule shown to
// the operator, issuing an explicit-matchup extraction for that game.
func (o *Orchestrator) SelectGame(ctx context.Context, index int) error {
	req, err := o.takeSelection(index)
	if err != nil {
		return err
	}
	o.notify()
	return o.runExtraction(ctx, req)
}

// SelectGameByTeam resolves disambiguation by (possibly misspelled) team
// name instead of index.
func (o *Orchestrator) SelectGameByTeam(ctx context.Context, team string) error {
	o.mu.Lock()
	index := nfl.FindByTeam(o.schedule, team)
	o.mu.Unlock()
	if index < 0 {
		return fmt.Errorf("session: no scheduled game matches team %q", team)
	}
	return o.SelectGame(ctx, index)
}

// takeSelection validates the selection, clears the schedule, and moves to
// loading, all under one lock.
func (o *Orchestrator) takeSelection(index int) (*nfl.ExtractionRequest, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.status == StatusLoading {
		return nil, ErrExtractionInFlight
	}
	if o.status != StatusSelectingGame {
		return nil, ErrNoActiveSchedule
	}
	if index < 0 || index >= len(o.schedule) {
		return nil, fmt.Errorf("session: selection index %d out of range (%d games)", index, len(o.schedule))
	}

	item := o.schedule[index]
	o.schedule = nil
	o.status = StatusLoading
	o.errMsg = ""

	return &nfl.ExtractionRequest{
		Season: o.pendingSeason,
		Week:   o.pendingWeek,
		Matchup: &nfl.Matchup{
			Home: item.HomeTeam,
			Away: item.AwayTeam,
		},
	}, nil
}

func (o *Orchestrator) runExtraction(ctx context.Context, req *nfl.ExtractionRequest) error {
	game, err := o.gateway.FetchGameData(ctx, req)

	o.mu.Lock()
	if err != nil {
		// History and the previously displayed result stay untouched.
		o.status = StatusError
		o.errMsg = err.Error()
		o.mu.Unlock()
		o.notify()
		log.Printf("[session] Extraction failed: %v", err)
		return err
	}

	o.current = game
	o.history = append([]*nfl.GameData{game}, o.history...)
	o.status = StatusSuccess
	o.mu.Unlock()
	o.notify()

	if o.publisher != nil {
		if perr := o.publisher.PublishExtraction(ctx, game); perr != nil {
			log.Printf("[session] Publish extraction failed: %v", perr)
		}
	}
	return nil
}

func (o *Orchestrator) runScheduleFetch(ctx context.Context, season, week string) error {
	items, err := o.gateway.FetchSchedule(ctx, season, week)

	o.mu.Lock()
	if err != nil {
		o.status = StatusError
		o.errMsg = err.Error()
		o.mu.Unlock()
		o.notify()
		log.Printf("[session] Schedule fetch failed: %v", err)
		return err
	}

	// Zero games is a successful-but-empty selection state, not an error.
	o.schedule = items
	o.status = StatusSelectingGame
	o.mu.Unlock()
	o.notify()
	return nil
}

// Snapshot returns a consistent copy of the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	snap := Snapshot{
		Status:  o.status,
		Error:   o.errMsg,
		Current: o.current,
		History: make([]*nfl.GameData, len(o.history)),
	}
	copy(snap.History, o.history)
	if o.schedule != nil {
		snap.Schedule = make([]nfl.GameScheduleItem, len(o.schedule))
		copy(snap.Schedule, o.schedule)
	}
	return snap
}

// Status returns the current state.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// Current returns the displayed result, nil before the first success.
func (o *Orchestrator) Current() *nfl.GameData {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// History returns the session history, most recent first.
func (o *Orchestrator) History() []*nfl.GameData {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]*nfl.GameData, len(o.history))
	copy(out, o.history)
	return out
}

func (o *Orchestrator) notify() {
	if o.notifier == nil {
		return
	}
	o.notifier.NotifyState(o.Snapshot())
}
