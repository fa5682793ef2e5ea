package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/amarkules1/football-stats-tracker/internal/export"
	"github.com/amarkules1/football-stats-tracker/internal/ingest/gemini"
	"github.com/amarkules1/football-stats-tracker/internal/nfl"
)

const (
	appName    = "football-stats-extract"
	appVersion = "1.0.0"
)

// One-shot extraction without the server: fetch a single game (or list a
// week's schedule) and write the export file to disk.
func main() {
	log.Printf("=== %s v%s ===", appName, appVersion)

	_ = godotenv.Load()

	var (
		apiKey = flag.String("api-key", getEnv("GEMINI_API_KEY", ""), "Gemini API key")
		model  = flag.String("model", getEnv("GEMINI_MODEL", gemini.DefaultModel), "Gemini model")
		season = flag.String("season", "", "Season (e.g. 2023)")
		week   = flag.String("week", "", "Week (1-18, Wildcard, Divisional, Conference, SuperBowl)")
		team   = flag.String("team", "", "Team name to find the game by")
		home   = flag.String("home", "", "Home team of an explicit matchup")
		away   = flag.String("away", "", "Away team of an explicit matchup")
		out    = flag.String("out", ".", "Directory to write the JSON export into")
		list   = flag.Bool("list", false, "List the week's schedule instead of extracting")
	)

	flag.Parse()

	if *season == "" || *week == "" {
		log.Fatalf("Specify --season and --week")
	}
	if (*home == "") != (*away == "") {
		log.Fatalf("Specify --home and --away together")
	}

	ctx := context.Background()

	client, err := gemini.New(ctx, *apiKey, *model)
	if err != nil {
		log.Fatalf("create client: %v", err)
	}
	defer client.Close()

	ingester := gemini.NewIngester(client, nil)

	if *list {
		games, err := ingester.FetchSchedule(ctx, *season, *week)
		if err != nil {
			log.Fatalf("fetch schedule: %v", err)
		}
		if len(games) == 0 {
			log.Printf("No games found for %s week %s", *season, *week)
			return
		}
		for i, g := range games {
			score := g.ScoreSummary
			if score == "" {
				score = "TBD"
			}
			fmt.Printf("[%d] %s  %s at %s  (%s)\n", i, g.Date, g.AwayTeam, g.HomeTeam, score)
		}
		return
	}

	req := &nfl.ExtractionRequest{
		Season: *season,
		Week:   *week,
		Team:   *team,
	}
	if *home != "" {
		req.Matchup = &nfl.Matchup{Home: *home, Away: *away}
	}
	if req.Mode() == nfl.MatchAny {
		log.Printf("No team or matchup given; asking for the week's most notable game")
	}

	game, err := ingester.FetchGameData(ctx, req)
	if err != nil {
		log.Fatalf("extraction failed: %v", err)
	}

	path, err := export.Save(*out, game)
	if err != nil {
		log.Fatalf("write export: %v", err)
	}

	log.Printf("✓ %s @ %s: %d-%d", game.AwayTeam.TeamName, game.HomeTeam.TeamName, game.AwayTeam.Score, game.HomeTeam.Score)
	log.Printf("✓ Wrote %s", path)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
