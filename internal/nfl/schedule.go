package nfl

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FindByTeam locates the schedule entry involving the named team, tolerating
// partial names and spelling slips ("chefs" still finds the Chiefs). Returns
// the index of the best match, or -1 when nothing is close enough.
func FindByTeam(items []GameScheduleItem, name string) int {
	name = strings.TrimSpace(name)
	if name == "" {
		return -1
	}

	// Exact fold / substring match wins outright.
	for i, item := range items {
		if strings.EqualFold(item.HomeTeam, name) || strings.EqualFold(item.AwayTeam, name) {
			return i
		}
	}
	lower := strings.ToLower(name)
	for i, item := range items {
		if strings.Contains(strings.ToLower(item.HomeTeam), lower) ||
			strings.Contains(strings.ToLower(item.AwayTeam), lower) {
			return i
		}
	}

	best, bestRank := -1, -1
	for i, item := range items {
		for _, team := range []string{item.HomeTeam, item.AwayTeam} {
			rank := fuzzy.RankMatchNormalizedFold(name, team)
			if rank < 0 {
				continue
			}
			if best == -1 || rank < bestRank {
				best, bestRank = i, rank
			}
		}
	}
	return best
}
