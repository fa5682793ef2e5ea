package gemini

import (
	"fmt"

	"github.com/amarkules1/football-stats-tracker/internal/nfl"
)

// Prompt construction for the two extraction forms. Pure string building;
// the model is told to emit nothing but the JSON payload so the decoder can
// stay strict.

// SchedulePrompt asks for every game of a season/week as a JSON array.
func SchedulePrompt(season, week string) string {
	return fmt.Sprintf(`Find the full schedule of NFL games for the %s season, Week %s.

Return a JSON Array of objects. Each object must have:
- "homeTeam": Name of the home team
- "awayTeam": Name of the away team
- "date": Date of the game (YYYY-MM-DD)
- "scoreSummary": The final score if the game has been played (e.g. "KC 21 - DET 20"), or "TBD" if not
- "location": Stadium and city if known, otherwise omit the field

The output must be ONLY the JSON array, with no text before or after it.`, season, week)
}

// GamePrompt asks for the full statistical breakdown of one game. The game
// is pinned down by the request's disambiguation mode: an explicit matchup
// beats a team name, which beats letting the model pick the most notable
// game of the week.
func GamePrompt(req *nfl.ExtractionRequest) string {
	var queryContext string
	switch req.Mode() {
	case nfl.MatchDirect:
		queryContext = fmt.Sprintf("the %s NFL season, Week %s game between %s (Away) and %s (Home)",
			req.Season, req.Week, req.Matchup.Away, req.Matchup.Home)
	case nfl.MatchTeam:
		queryContext = fmt.Sprintf("the %s NFL season, Week %s game involving the %s",
			req.Season, req.Week, req.Team)
	case nfl.MatchAny:
		queryContext = fmt.Sprintf("the %s NFL season, Week %s games. Choose the most high-profile game",
			req.Season, req.Week)
	}

	return fmt.Sprintf(`I need detailed statistical data for %s.
You must use Google Search to find the box score and advanced stats.

I need a JSON response containing:
1. Date of the game.
2. Home and Away team names.
3. Final score for both.
4. Total possessions (approximate if exact not found) for both.
5. Rushing yards, passing yards, total plays, turnovers, and sacks for both teams.
6. Top statistical performers: quarterbacks (passing yds/tds/int), top 2 rushers (yds/tds), top 2 receivers (rec/yds/tds).

Output MUST be a valid JSON object matching this structure exactly (no extra text outside JSON):
{
  "date": "YYYY-MM-DD",
  "season": "%s",
  "week": "%s",
  "homeTeam": {
    "teamName": "String",
    "score": Number,
    "rushingYards": Number,
    "passingYards": Number,
    "totalPlays": Number,
    "possessions": Number,
    "turnovers": Number,
    "sacks": Number
  },
  "awayTeam": {
    "teamName": "String",
    "score": Number,
    "rushingYards": Number,
    "passingYards": Number,
    "totalPlays": Number,
    "possessions": Number,
    "turnovers": Number,
    "sacks": Number
  },
  "playerStats": [
    {
      "name": "String",
      "position": "QB" | "RB" | "WR" | "TE" | "DEF",
      "team": "String",
      "passingYards": Number (optional),
      "passingTDs": Number (optional),
      "interceptions": Number (optional),
      "rushingYards": Number (optional),
      "rushingTDs": Number (optional),
      "receivingYards": Number (optional),
      "receivingTDs": Number (optional),
      "receptions": Number (optional)
    }
  ],
  "summary": "A brief 1-sentence summary of the game outcome."
}

Omit optional player fields entirely when a stat does not apply; never report them as 0.`, queryContext, req.Season, req.Week)
}
