package standings

import (
	"fmt"
	"log"
	"sort"

	"golang.org/x/xerrors"

	league "github.com/courtside/league-sync/repos/league"
)

var ErrNoRegisteredTeams = xerrors.New("no registered teams")

type tally struct {
	wins   int
	losses int
	draws  int
	points int
}

// ComputeStandings aggregates every final match into a ranked table.
// Pure: no reads, no writes, deterministic for a fixed input.
//
// Accumulators are keyed by team id, never by display name, so two
// teams sharing a name cannot be folded together. Every registered
// team gets a row, including teams with no scored match yet.
func ComputeStandings(teams []league.TeamRef, matches []league.Match) ([]league.StandingRow, error) {
	if len(teams) == 0 {
		return nil, ErrNoRegisteredTeams
	}

	tallies := make(map[string]*tally, len(teams))
	names := make(map[string]string, len(teams))
	for _, team := range teams {
		tallies[team.ID] = &tally{}
		names[team.ID] = team.Name
	}

	for _, match := range matches {
		// Callers pass pre-filtered matches, but re-filter anyway.
		if match.Status != league.StatusFinal {
			continue
		}
		if match.TeamA.ID == "" || match.TeamB.ID == "" {
			log.Printf("Skipping malformed match %s: missing side\n", match.ID)
			continue
		}

		sideA, okA := tallies[match.TeamA.ID]
		sideB, okB := tallies[match.TeamB.ID]
		if !okA || !okB {
			// A one-sided update would break win/loss symmetry, so the
			// whole match is excluded when either side is unregistered.
			log.Printf("Skipping match %s: side not registered to tournament\n", match.ID)
			continue
		}

		switch {
		case match.TeamA.Score > match.TeamB.Score:
			sideA.wins++
			sideA.points += 3
			sideB.losses++
		case match.TeamB.Score > match.TeamA.Score:
			sideB.wins++
			sideB.points += 3
			sideA.losses++
		default:
			sideA.draws++
			sideA.points++
			sideB.draws++
			sideB.points++
		}
	}

	rows := make([]league.StandingRow, 0, len(tallies))
	for teamID, t := range tallies {
		rows = append(rows, league.StandingRow{
			TeamID: teamID,
			Team:   names[teamID],
			Wins:   t.wins,
			Losses: t.losses,
			Draws:  t.draws,
			Points: t.points,
		})
	}

	// Points desc, wins desc, losses asc, then team id so equal records
	// still rank the same way on every run.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].Wins != rows[j].Wins {
			return rows[i].Wins > rows[j].Wins
		}
		if rows[i].Losses != rows[j].Losses {
			return rows[i].Losses < rows[j].Losses
		}
		return rows[i].TeamID < rows[j].TeamID
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}

	return rows, nil
}

// DeriveHistoryEvents turns each final match into exactly two events,
// one per side, carrying the side's roster for fan-out. Independent of
// standings state and of any other match.
func DeriveHistoryEvents(matches []league.Match, rosters map[string][]league.PlayerRef) []HistoryEvent {
	var events []HistoryEvent

	for _, match := range matches {
		if match.Status != league.StatusFinal {
			continue
		}
		if match.TeamA.ID == "" || match.TeamB.ID == "" {
			continue
		}

		resultA, resultB := league.ResultDraw, league.ResultDraw
		if match.TeamA.Score > match.TeamB.Score {
			resultA, resultB = league.ResultWin, league.ResultLoss
		} else if match.TeamB.Score > match.TeamA.Score {
			resultA, resultB = league.ResultLoss, league.ResultWin
		}

		events = append(events,
			HistoryEvent{
				MatchID: match.ID,
				TeamID:  match.TeamA.ID,
				Team:    match.TeamA.Name,
				Result:  resultA,
				Record:  fmt.Sprintf("%d-%d", match.TeamA.Score, match.TeamB.Score),
				Roster:  rosters[match.TeamA.ID],
			},
			HistoryEvent{
				MatchID: match.ID,
				TeamID:  match.TeamB.ID,
				Team:    match.TeamB.Name,
				Result:  resultB,
				Record:  fmt.Sprintf("%d-%d", match.TeamB.Score, match.TeamA.Score),
				Roster:  rosters[match.TeamB.ID],
			},
		)
	}

	return events
}
