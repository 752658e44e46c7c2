// Package calculator aggregates score entries into leaderboards.
package calculator

import (
	"fmt"
	"sort"

	"github.com/mmynk/chorechart/internal/models"
)

// BuildLeaderboard computes per-participant chore tallies for a household.
//
// Algorithm:
// - Index score entries by participant and chore
// - For each participant in registration order, emit one ChoreScore per
//   chore in registration order
// - Total = sum of that participant's scores
//
// Every participant/chore pair must have an entry; a gap means the score
// table has drifted from the household and is reported as
// models.ErrScoreEntryNotFound.
func BuildLeaderboard(household *models.Household, entries []models.ScoreEntry) (*models.Leaderboard, error) {
	// scores[participant][chore] = score
	scores := make(map[string]map[string]int, len(household.Participants))
	for _, e := range entries {
		if e.Household != household.Name {
			continue
		}
		if _, exists := scores[e.Participant]; !exists {
			scores[e.Participant] = make(map[string]int)
		}
		scores[e.Participant][e.Chore] = e.Score
	}

	board := &models.Leaderboard{
		Household: household.Name,
		Standings: make([]models.Standing, 0, len(household.Participants)),
	}

	for _, participant := range household.Participants {
		standing := models.Standing{
			Participant: participant,
			Scores:      make([]models.ChoreScore, 0, len(household.Chores)),
		}
		for _, chore := range household.Chores {
			score, ok := scores[participant][chore.Name]
			if !ok {
				return nil, fmt.Errorf("%w: %q/%q in household %q",
					models.ErrScoreEntryNotFound, participant, chore.Name, household.Name)
			}
			standing.Scores = append(standing.Scores, models.ChoreScore{Chore: chore.Name, Score: score})
			standing.Total += score
		}
		board.Standings = append(board.Standings, standing)
	}

	return board, nil
}

// RankByTotal returns a copy of the standings sorted by total completions,
// highest first. Ties keep registration order. The leaderboard itself is
// left untouched.
func RankByTotal(board *models.Leaderboard) []models.Standing {
	ranked := make([]models.Standing, len(board.Standings))
	copy(ranked, board.Standings)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})
	return ranked
}
