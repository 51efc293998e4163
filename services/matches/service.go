package matches

import (
	"context"
	"log"

	"golang.org/x/xerrors"

	league "github.com/courtside/league-sync/repos/league"
	standings "github.com/courtside/league-sync/services/standings"
)

var (
	ErrInvalidScore  = xerrors.New("scores must be non-negative")
	ErrInvalidStatus = xerrors.New("unknown match status")
)

// MatchStore is the slice of the match collection the scoring flow
// touches.
type MatchStore interface {
	GetMatch(ctx context.Context, matchID string) (*league.Match, error)
	UpdateMatch(ctx context.Context, matchID string, update league.MatchUpdate) error
	ListLiveMatches(ctx context.Context) ([]league.Match, error)
}

// StandingsUpdater runs the standings pipeline for one tournament.
type StandingsUpdater interface {
	UpdateStandings(ctx context.Context, tournamentID string) (*standings.UpdateOutcome, error)
}

type MatchesService struct {
	store   MatchStore
	updater StandingsUpdater
}

func NewMatchesService(store MatchStore, updater StandingsUpdater) *MatchesService {
	return &MatchesService{
		store:   store,
		updater: updater,
	}
}

// ReportScore applies a score/status update to a live match. A match
// already marked Final is immutable. When this update itself moves the
// match to Final, the standings pipeline runs for its tournament.
func (s *MatchesService) ReportScore(c context.Context, matchID string, request ScoreRequest) error {
	if err := validateScoreRequest(request); err != nil {
		return err
	}

	match, err := s.store.GetMatch(c, matchID)
	if err != nil {
		return err
	}

	if match.Status == league.StatusFinal {
		return league.ErrMatchFinal
	}

	err = s.store.UpdateMatch(c, matchID, league.MatchUpdate{
		ScoreA: request.ScoreA,
		ScoreB: request.ScoreB,
		Status: request.Status,
	})
	if err != nil {
		return err
	}

	if request.Status != nil && *request.Status == league.StatusFinal {
		outcome, err := s.updater.UpdateStandings(c, match.TournamentID)
		if err != nil {
			log.Printf("Standings update after final score failed: %v\n", err)
			return err
		}
		log.Printf("Standings updated for %s: %d rows, %d history failures\n",
			match.TournamentID, len(outcome.Standings), outcome.HistoryFailures)
	}

	return nil
}

// ListLive returns matches that have not reached Final yet, for the
// scoring board.
func (s *MatchesService) ListLive(c context.Context) ([]league.Match, error) {
	return s.store.ListLiveMatches(c)
}

func validateScoreRequest(request ScoreRequest) error {
	if request.ScoreA != nil && *request.ScoreA < 0 {
		return ErrInvalidScore
	}
	if request.ScoreB != nil && *request.ScoreB < 0 {
		return ErrInvalidScore
	}
	if request.Status != nil {
		switch *request.Status {
		case league.StatusNotStarted, league.StatusInProgress, league.StatusHalftime, league.StatusFinal:
		default:
			return ErrInvalidStatus
		}
	}
	return nil
}
