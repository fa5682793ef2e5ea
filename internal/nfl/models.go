package nfl

import (
	"fmt"
	"strings"
)

// Position identifies the role a player line belongs to.
type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionDEF Position = "DEF"
)

// Valid reports whether the position is one the extraction schema allows.
func (p Position) Valid() bool {
	switch p {
	case PositionQB, PositionRB, PositionWR, PositionTE, PositionDEF:
		return true
	}
	return false
}

// TeamGameStats holds one team's totals for a single game.
// Possessions is an estimate and may be fractional; everything else is a count.
type TeamGameStats struct {
	TeamName     string  `json:"teamName"`
	Score        int     `json:"score"`
	RushingYards int     `json:"rushingYards"`
	PassingYards int     `json:"passingYards"`
	TotalPlays   int     `json:"totalPlays"`
	Possessions  float64 `json:"possessions"`
	Turnovers    int     `json:"turnovers"`
	Sacks        int     `json:"sacks"`
}

// PlayerStats holds one player's line. Stat fields are pointers so that a
// stat the model did not report stays absent instead of becoming zero.
type PlayerStats struct {
	Name           string   `json:"name"`
	Position       Position `json:"position"`
	Team           string   `json:"team"`
	PassingYards   *int     `json:"passingYards,omitempty"`
	PassingTDs     *int     `json:"passingTDs,omitempty"`
	Interceptions  *int     `json:"interceptions,omitempty"`
	RushingYards   *int     `json:"rushingYards,omitempty"`
	RushingTDs     *int     `json:"rushingTDs,omitempty"`
	ReceivingYards *int     `json:"receivingYards,omitempty"`
	ReceivingTDs   *int     `json:"receivingTDs,omitempty"`
	Receptions     *int     `json:"receptions,omitempty"`
}

// GameData is the root extraction result. ID is assigned locally when the
// object is built and never read from upstream. SourceURLs preserves
// insertion order and contains no duplicates.
type GameData struct {
	ID          string        `json:"id"`
	Date        string        `json:"date"`
	Season      string        `json:"season"`
	Week        string        `json:"week"`
	HomeTeam    TeamGameStats `json:"homeTeam"`
	AwayTeam    TeamGameStats `json:"awayTeam"`
	PlayerStats []PlayerStats `json:"playerStats"`
	Summary     string        `json:"summary"`
	SourceURLs  []string      `json:"sourceUrls"`
}

// GameScheduleItem is the intermediate disambiguation artifact produced by a
// schedule lookup. It is shown to the operator and discarded after selection.
type GameScheduleItem struct {
	HomeTeam     string `json:"homeTeam"`
	AwayTeam     string `json:"awayTeam"`
	Date         string `json:"date"`
	ScoreSummary string `json:"scoreSummary,omitempty"`
	Location     string `json:"location,omitempty"`
}

// Validate checks the invariants every decoded GameData must satisfy before
// it leaves the ingest boundary. Upstream payloads are untrusted; nothing
// downstream re-checks these.
func (g *GameData) Validate() error {
	if g.HomeTeam.TeamName == "" || g.AwayTeam.TeamName == "" {
		return fmt.Errorf("missing team name (home=%q, away=%q)", g.HomeTeam.TeamName, g.AwayTeam.TeamName)
	}
	if err := g.HomeTeam.validate(); err != nil {
		return fmt.Errorf("home team %s: %w", g.HomeTeam.TeamName, err)
	}
	if err := g.AwayTeam.validate(); err != nil {
		return fmt.Errorf("away team %s: %w", g.AwayTeam.TeamName, err)
	}
	for i, p := range g.PlayerStats {
		if p.Name == "" {
			return fmt.Errorf("player %d: missing name", i)
		}
		if !p.Position.Valid() {
			return fmt.Errorf("player %s: unknown position %q", p.Name, p.Position)
		}
	}
	return nil
}

func (t *TeamGameStats) validate() error {
	counts := map[string]int{
		"score":        t.Score,
		"rushingYards": t.RushingYards,
		"passingYards": t.PassingYards,
		"totalPlays":   t.TotalPlays,
		"turnovers":    t.Turnovers,
		"sacks":        t.Sacks,
	}
	for field, v := range counts {
		if v < 0 {
			return fmt.Errorf("negative %s (%d)", field, v)
		}
	}
	if t.Possessions < 0 {
		return fmt.Errorf("negative possessions (%v)", t.Possessions)
	}
	return nil
}

// ExportFilename returns the download filename for a result document,
// e.g. "nfl_stats_2023_w1_Detroit_Lions_at_Kansas_City_Chiefs.json".
func ExportFilename(g *GameData) string {
	return fmt.Sprintf("nfl_stats_%s_w%s_%s_at_%s.json",
		slug(g.Season), slug(g.Week), slug(g.AwayTeam.TeamName), slug(g.HomeTeam.TeamName))
}

func slug(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
