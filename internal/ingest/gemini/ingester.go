package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/amarkules1/football-stats-tracker/internal/nfl"
)

const scheduleCacheTTL = 15 * time.Minute

// generator is the single upstream operation the gateway depends on.
// *Client satisfies it; tests substitute a canned responder.
type generator interface {
	Generate(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error)
}

// scheduleCache is the optional cache used to spare repeat disambiguation
// lookups of the same week. A nil cache disables caching entirely.
type scheduleCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Ingester is the extraction gateway: it builds the prompt, makes one
// upstream call, and coerces the response into validated domain objects.
// Failures are terminal for the attempt; nothing is retried here.
type Ingester struct {
	gen   generator
	cache scheduleCache
}

// NewIngester creates a gateway around an upstream client. cache may be nil.
func NewIngester(gen generator, cache scheduleCache) *Ingester {
	return &Ingester{
		gen:   gen,
		cache: cache,
	}
}

// FetchSchedule returns every game of a season/week for disambiguation.
// Fails with ErrEmptyResponse when the model returns no text and with
// ErrInvalidSchedule when the payload decodes to something other than a list.
func (i *Ingester) FetchSchedule(ctx context.Context, season, week string) ([]nfl.GameScheduleItem, error) {
	cacheKey := fmt.Sprintf("schedule:nfl:%s:%s", season, week)
	if i.cache != nil {
		if raw, err := i.cache.Get(ctx, cacheKey); err == nil && raw != "" {
			var items []nfl.GameScheduleItem
			if err := json.Unmarshal([]byte(raw), &items); err == nil {
				log.Printf("[gemini] Schedule cache hit for %s week %s (%d games)", season, week, len(items))
				return items, nil
			}
		}
	}

	resp, err := i.gen.Generate(ctx, SchedulePrompt(season, week))
	if err != nil {
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}

	// Decode in two steps so a valid-JSON object still surfaces as an
	// invalid schedule rather than a malformed response.
	var value interface{}
	if err := Decode(text, &value); err != nil {
		return nil, err
	}
	if _, ok := value.([]interface{}); !ok {
		return nil, ErrInvalidSchedule
	}

	var items []nfl.GameScheduleItem
	if err := Decode(text, &items); err != nil {
		return nil, err
	}

	if i.cache != nil {
		if data, err := json.Marshal(items); err == nil {
			if err := i.cache.Set(ctx, cacheKey, string(data), scheduleCacheTTL); err != nil {
				log.Printf("[gemini] Schedule cache write failed: %v", err)
			}
		}
	}

	log.Printf("[gemini] ✓ Fetched schedule for %s week %s: %d games", season, week, len(items))
	return items, nil
}

// FetchGameData extracts one game's statistics. The decoded payload is
// validated, stamped with a locally generated id (any upstream id is
// discarded), and merged with the deduplicated grounding sources from the
// same response. Never cached.
func (i *Ingester) FetchGameData(ctx context.Context, req *nfl.ExtractionRequest) (*nfl.GameData, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("fetch game data: %w", err)
	}

	resp, err := i.gen.Generate(ctx, GamePrompt(req))
	if err != nil {
		return nil, fmt.Errorf("fetch game data: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}

	var game nfl.GameData
	if err := Decode(text, &game); err != nil {
		return nil, err
	}

	// The model is told to echo season and week; backfill from the request
	// when it does not.
	if game.Season == "" {
		game.Season = req.Season
	}
	if game.Week == "" {
		game.Week = req.Week
	}

	if err := game.Validate(); err != nil {
		return nil, fmt.Errorf("gemini: invalid game payload: %w", err)
	}

	game.ID = uuid.NewString()
	game.SourceURLs = SourceURLs(resp)

	log.Printf("[gemini] ✓ Extracted %s @ %s (%s week %s, %d sources, mode=%s)",
		game.AwayTeam.TeamName, game.HomeTeam.TeamName, game.Season, game.Week, len(game.SourceURLs), req.Mode())
	return &game, nil
}
