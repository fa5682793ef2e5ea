package nfl

import "fmt"

// Matchup pins a request to an explicit home/away pairing.
type Matchup struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

// ExtractionRequest describes one game lookup. At most one of Team or
// Matchup is meaningful; when both are empty the request falls back to the
// "most notable game" of the week.
type ExtractionRequest struct {
	Season  string   `json:"season"`
	Week    string   `json:"week"`
	Team    string   `json:"team,omitempty"`
	Matchup *Matchup `json:"specificMatchup,omitempty"`
}

// MatchMode is the disambiguation strategy a request resolves to. The
// priority chain is explicit so callers can switch exhaustively instead of
// probing optional fields.
type MatchMode int

const (
	// MatchDirect targets an explicit home/away matchup.
	MatchDirect MatchMode = iota
	// MatchTeam targets whichever game involved a named team.
	MatchTeam
	// MatchAny lets the model pick the most notable game of the week.
	// Degraded fallback; the orchestrator never produces it on its own.
	MatchAny
)

func (m MatchMode) String() string {
	switch m {
	case MatchDirect:
		return "direct"
	case MatchTeam:
		return "team"
	case MatchAny:
		return "any"
	}
	return fmt.Sprintf("MatchMode(%d)", int(m))
}

// Mode resolves the disambiguation priority: matchup over team over fallback.
func (r *ExtractionRequest) Mode() MatchMode {
	if r.Matchup != nil && r.Matchup.Home != "" && r.Matchup.Away != "" {
		return MatchDirect
	}
	if r.Team != "" {
		return MatchTeam
	}
	return MatchAny
}

// Validate rejects requests the prompt builder cannot phrase.
func (r *ExtractionRequest) Validate() error {
	if r.Season == "" {
		return fmt.Errorf("season is required")
	}
	if r.Week == "" {
		return fmt.Errorf("week is required")
	}
	return nil
}
