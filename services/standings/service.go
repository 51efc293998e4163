package standings

import (
	"context"
	"log"

	timehelper "github.com/courtside/league-sync/pkg/timeHelper"
	league "github.com/courtside/league-sync/repos/league"
)

// Repository is the slice of the document store the pipeline touches.
// The service holds no state of its own, so an in-memory fake of this
// interface is all a test needs.
type Repository interface {
	GetTournament(ctx context.Context, tournamentID string) (*league.Tournament, error)
	ListFinalMatches(ctx context.Context, tournamentID string) ([]league.Match, error)
	GetTeams(ctx context.Context, teamIDs []string) ([]league.Team, error)
	OverwriteStandings(ctx context.Context, tournamentID string, rows []league.StandingRow) error
	AppendHistory(ctx context.Context, matchID string, roster []league.PlayerRef, entry league.HistoryEntry) error
}

type StandingsService struct {
	repo Repository
}

func NewStandingsService(repo Repository) *StandingsService {
	return &StandingsService{
		repo: repo,
	}
}

// UpdateStandings runs the full pipeline for one tournament: resolve
// the tournament, load its final matches and teams, aggregate, fan out
// history, overwrite the standings field. Each run recomputes from the
// complete set of final matches, so re-running with no new matches is
// a no-op on the standings.
//
// History fan-out failures are counted on the outcome but do not block
// the standings write, and vice versa. Nothing written before a
// failure is rolled back.
func (s *StandingsService) UpdateStandings(ctx context.Context, tournamentID string) (*UpdateOutcome, error) {
	tournament, err := s.repo.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	matches, err := s.repo.ListFinalMatches(ctx, tournamentID)
	if err != nil {
		log.Printf("Failed to load final matches for %s: %v\n", tournamentID, err)
		return nil, err
	}

	teams, err := s.repo.GetTeams(ctx, tournament.TeamIDs)
	if err != nil {
		log.Printf("Failed to load teams for %s: %v\n", tournamentID, err)
		return nil, err
	}

	teamRefs := make([]league.TeamRef, 0, len(teams))
	rosters := make(map[string][]league.PlayerRef, len(teams))
	for _, team := range teams {
		teamRefs = append(teamRefs, league.TeamRef{ID: team.ID, Name: team.Name})
		rosters[team.ID] = team.Roster
	}

	rows, err := ComputeStandings(teamRefs, matches)
	if err != nil {
		// A tournament with no resolvable teams has nothing to rank.
		return nil, league.ErrTournamentNotFound
	}

	outcome := &UpdateOutcome{Standings: rows}

	today := timehelper.GetTodaysDateString()
	for _, event := range DeriveHistoryEvents(matches, rosters) {
		entry := league.HistoryEntry{
			TournamentName: tournament.Name,
			Team:           event.Team,
			Result:         event.Result,
			Record:         event.Record,
			Date:           today,
		}
		if err := s.repo.AppendHistory(ctx, event.MatchID, event.Roster, entry); err != nil {
			log.Printf("History fan-out failed for match %s team %s: %v\n", event.MatchID, event.TeamID, err)
			outcome.HistoryFailures++
		}
	}

	if err := s.repo.OverwriteStandings(ctx, tournamentID, rows); err != nil {
		log.Printf("Failed to overwrite standings for %s: %v\n", tournamentID, err)
		return outcome, err
	}

	return outcome, nil
}

// GetStandings reads back the persisted table for display.
func (s *StandingsService) GetStandings(ctx context.Context, tournamentID string) ([]league.StandingRow, error) {
	tournament, err := s.repo.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return tournament.Standings, nil
}
