package standings

import (
	league "github.com/courtside/league-sync/repos/league"
)

// UpdateRequest is the trigger body sent when a match reaches "Final".
type UpdateRequest struct {
	TournamentID string `json:"tournamentId"`
	Secret       string `json:"secret"`
}

// HistoryEvent is one side's derived outcome for one final match. The
// writer fans it out to every roster player of the owning team.
type HistoryEvent struct {
	MatchID string
	TeamID  string
	Team    string
	Result  string
	Record  string
	Roster  []league.PlayerRef
}

// UpdateOutcome is what a completed pipeline run hands back. History
// fan-out and the standings write are independent completion units, so
// a run can succeed with some history batches failed.
type UpdateOutcome struct {
	Standings       []league.StandingRow
	HistoryFailures int
}
