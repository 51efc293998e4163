package standings

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	league "github.com/courtside/league-sync/repos/league"
)

// fakeRepo is an in-memory stand-in for the Firestore repository.
type fakeRepo struct {
	tournament *league.Tournament
	matches    []league.Match
	teams      []league.Team

	standings map[string][]league.StandingRow
	history   map[string]league.HistoryEntry

	failHistory   bool
	failStandings bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		standings: map[string][]league.StandingRow{},
		history:   map[string]league.HistoryEntry{},
	}
}

func (f *fakeRepo) GetTournament(ctx context.Context, tournamentID string) (*league.Tournament, error) {
	if f.tournament == nil || f.tournament.ID != tournamentID {
		return nil, league.ErrTournamentNotFound
	}
	return f.tournament, nil
}

func (f *fakeRepo) ListFinalMatches(ctx context.Context, tournamentID string) ([]league.Match, error) {
	var final []league.Match
	for _, match := range f.matches {
		if match.TournamentID == tournamentID && match.Status == league.StatusFinal {
			final = append(final, match)
		}
	}
	return final, nil
}

func (f *fakeRepo) GetTeams(ctx context.Context, teamIDs []string) ([]league.Team, error) {
	var teams []league.Team
	for _, teamID := range teamIDs {
		for _, team := range f.teams {
			if team.ID == teamID {
				teams = append(teams, team)
			}
		}
	}
	return teams, nil
}

func (f *fakeRepo) OverwriteStandings(ctx context.Context, tournamentID string, rows []league.StandingRow) error {
	if f.failStandings {
		return xerrors.New("backend unavailable")
	}
	f.standings[tournamentID] = rows
	return nil
}

func (f *fakeRepo) AppendHistory(ctx context.Context, matchID string, roster []league.PlayerRef, entry league.HistoryEntry) error {
	if f.failHistory {
		return xerrors.New("backend unavailable")
	}
	for _, player := range roster {
		playerEntry := entry
		playerEntry.UserID = player.ID
		f.history[fmt.Sprintf("%s/%s_%s", player.ID, matchID, player.ID)] = playerEntry
	}
	return nil
}

func seededRepo() *fakeRepo {
	repo := newFakeRepo()
	repo.tournament = &league.Tournament{
		ID:      "t1",
		Name:    "Summer Slam",
		TeamIDs: []string{"1", "2"},
	}
	repo.teams = []league.Team{
		{ID: "1", Name: "A", Roster: []league.PlayerRef{{ID: "p1", Name: "Pat"}, {ID: "p2", Name: "Quinn"}}},
		{ID: "2", Name: "B", Roster: []league.PlayerRef{{ID: "p3", Name: "Riley"}}},
	}
	repo.matches = []league.Match{
		{
			ID:           "m1",
			TournamentID: "t1",
			TeamA:        league.MatchSide{ID: "1", Name: "A", Score: 5},
			TeamB:        league.MatchSide{ID: "2", Name: "B", Score: 3},
			Status:       league.StatusFinal,
		},
	}
	return repo
}

func TestUpdateStandingsPipeline(t *testing.T) {
	repo := seededRepo()
	service := NewStandingsService(repo)

	outcome, err := service.UpdateStandings(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, 0, outcome.HistoryFailures)

	rows := repo.standings["t1"]
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].Team)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 3, rows[0].Points)
	assert.Equal(t, "B", rows[1].Team)
	assert.Equal(t, 2, rows[1].Rank)
	assert.Equal(t, 1, rows[1].Losses)

	// One entry per roster player on each side.
	require.Len(t, repo.history, 3)

	p1 := repo.history["p1/m1_p1"]
	assert.Equal(t, league.ResultWin, p1.Result)
	assert.Equal(t, "5-3", p1.Record)
	assert.Equal(t, "Summer Slam", p1.TournamentName)
	assert.Equal(t, "A", p1.Team)
	assert.Equal(t, "p1", p1.UserID)
	assert.NotEmpty(t, p1.Date)

	p2 := repo.history["p2/m1_p2"]
	assert.Equal(t, league.ResultWin, p2.Result)
	assert.Equal(t, "5-3", p2.Record)

	p3 := repo.history["p3/m1_p3"]
	assert.Equal(t, league.ResultLoss, p3.Result)
	assert.Equal(t, "3-5", p3.Record)
	assert.Equal(t, "B", p3.Team)
}

func TestUpdateStandingsRerunIsIdempotent(t *testing.T) {
	repo := seededRepo()
	service := NewStandingsService(repo)

	first, err := service.UpdateStandings(context.Background(), "t1")
	require.NoError(t, err)

	second, err := service.UpdateStandings(context.Background(), "t1")
	require.NoError(t, err)

	assert.Equal(t, first.Standings, second.Standings)
	// Deterministic doc keys: the rerun overwrites, never duplicates.
	assert.Len(t, repo.history, 3)
}

func TestUpdateStandingsTournamentNotFound(t *testing.T) {
	repo := newFakeRepo()
	service := NewStandingsService(repo)

	_, err := service.UpdateStandings(context.Background(), "missing")
	assert.Equal(t, league.ErrTournamentNotFound, err)
	assert.Empty(t, repo.standings)
	assert.Empty(t, repo.history)
}

func TestUpdateStandingsNoResolvableTeams(t *testing.T) {
	repo := newFakeRepo()
	repo.tournament = &league.Tournament{ID: "t1", Name: "Empty Cup"}
	service := NewStandingsService(repo)

	_, err := service.UpdateStandings(context.Background(), "t1")
	assert.Equal(t, league.ErrTournamentNotFound, err)
}

func TestUpdateStandingsHistoryFailureDoesNotBlockStandings(t *testing.T) {
	repo := seededRepo()
	repo.failHistory = true
	service := NewStandingsService(repo)

	outcome, err := service.UpdateStandings(context.Background(), "t1")
	require.NoError(t, err)

	// One failed batch per match side.
	assert.Equal(t, 2, outcome.HistoryFailures)
	assert.Len(t, repo.standings["t1"], 2)
}

func TestUpdateStandingsWriteFailureStillFansOutHistory(t *testing.T) {
	repo := seededRepo()
	repo.failStandings = true
	service := NewStandingsService(repo)

	outcome, err := service.UpdateStandings(context.Background(), "t1")
	require.Error(t, err)

	assert.Len(t, repo.history, 3)
	assert.Len(t, outcome.Standings, 2)
}

func TestGetStandings(t *testing.T) {
	repo := newFakeRepo()
	repo.tournament = &league.Tournament{
		ID:   "t1",
		Name: "Summer Slam",
		Standings: []league.StandingRow{
			{Rank: 1, TeamID: "1", Team: "A", Wins: 1, Points: 3},
		},
	}
	service := NewStandingsService(repo)

	rows, err := service.GetStandings(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A", rows[0].Team)

	_, err = service.GetStandings(context.Background(), "other")
	assert.Equal(t, league.ErrTournamentNotFound, err)
}
