package models

// ScoreEntry is the number of times a participant has completed a chore
// within a household. One entry exists for every participant/chore pair.
type ScoreEntry struct {
	Household   string
	Participant string
	Chore       string
	Score       int
}

// LogResult describes the effect of logging chore completions.
type LogResult struct {
	Household   string
	Participant string
	Chore       string
	Increment   int

	// Before and After are the completion counts around the update.
	Before int
	After  int
}

// ChoreScore is a single chore tally on a leaderboard.
type ChoreScore struct {
	Chore string
	Score int
}

// Standing holds one participant's tallies, in chore registration order.
type Standing struct {
	Participant string
	Scores      []ChoreScore
	Total       int
}

// Leaderboard lists every participant's chore tallies for a household.
// Standings follow participant registration order; they are not sorted
// by score.
type Leaderboard struct {
	Household string
	Standings []Standing
}

// For returns the standing of the named participant, or nil.
func (l *Leaderboard) For(participant string) *Standing {
	for i := range l.Standings {
		if l.Standings[i].Participant == participant {
			return &l.Standings[i]
		}
	}
	return nil
}
