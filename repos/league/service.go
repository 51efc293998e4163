package league

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"golang.org/x/xerrors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrTournamentNotFound = xerrors.New("tournament not found")
	ErrMatchNotFound      = xerrors.New("match not found")
	ErrMatchFinal         = xerrors.New("match already final")
)

// Service wraps the Firestore collections the league app reads and
// writes: tournaments, teams, matches and per-user tournamentHistory.
type Service struct {
	Client *firestore.Client
}

// NewService creates a new empty service.
func NewService(client *firestore.Client) *Service {
	return &Service{
		Client: client,
	}
}

func (s Service) GetTournament(ctx context.Context, tournamentID string) (*Tournament, error) {
	doc, err := s.Client.Collection("tournaments").Doc(tournamentID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrTournamentNotFound
		}
		log.Printf("Failed to get tournament from Firestore: %v\n", err)
		return nil, err
	}

	tournament, err := docToTournament(doc)
	if err != nil {
		return nil, err
	}
	tournament.ID = doc.Ref.ID
	return tournament, nil
}

func (s Service) ListFinalMatches(ctx context.Context, tournamentID string) ([]Match, error) {
	docs, err := s.Client.Collection("matches").
		Where("tournamentId", "==", tournamentID).
		Where("status", "==", StatusFinal).
		Documents(ctx).
		GetAll()

	if err != nil {
		log.Printf("Failed to list final matches from Firestore: %v\n", err)
		return nil, err
	}

	var matches []Match
	for _, doc := range docs {
		match, err := docToMatch(doc)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *match)
	}
	return matches, nil
}

// GetTeams resolves team documents by id. A missing team document is
// skipped, not an error: a team can be deregistered after its matches
// were played and the standings run must carry on without it.
func (s Service) GetTeams(ctx context.Context, teamIDs []string) ([]Team, error) {
	var teams []Team
	for _, teamID := range teamIDs {
		doc, err := s.Client.Collection("teams").Doc(teamID).Get(ctx)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				log.Printf("Team %s not found, skipping\n", teamID)
				continue
			}
			log.Printf("Failed to get team from Firestore: %v\n", err)
			return nil, err
		}

		var team Team
		if err := doc.DataTo(&team); err != nil {
			return nil, xerrors.Errorf(
				"consistency error. Converting %+v to Team struct failed: %w",
				doc,
				err,
			)
		}
		team.ID = doc.Ref.ID
		teams = append(teams, team)
	}
	return teams, nil
}

// OverwriteStandings replaces the tournament's standings field as a
// whole. The engine owns this field; it is never merged.
func (s Service) OverwriteStandings(ctx context.Context, tournamentID string, rows []StandingRow) error {
	_, err := s.Client.Collection("tournaments").Doc(tournamentID).Update(ctx, []firestore.Update{
		{Path: "standings", Value: rows},
	})
	if err != nil {
		log.Printf("Failed to update standings in Firestore: %v\n", err)
		return err
	}
	return nil
}

// AppendHistory writes one history entry per roster player inside a
// single transaction, so a team side's fan-out lands all-or-nothing.
// The document key is {matchID}_{playerID}: re-running the same match
// overwrites instead of duplicating.
func (s Service) AppendHistory(ctx context.Context, matchID string, roster []PlayerRef, entry HistoryEntry) error {
	if len(roster) == 0 {
		return nil
	}

	err := s.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, player := range roster {
			playerEntry := entry
			playerEntry.UserID = player.ID

			docRef := s.Client.Collection("users").
				Doc(player.ID).
				Collection("tournamentHistory").
				Doc(fmt.Sprintf("%s_%s", matchID, player.ID))
			if err := tx.Set(docRef, playerEntry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Failed to write history batch: %v\n", err)
		return err
	}
	return nil
}

func (s Service) GetMatch(ctx context.Context, matchID string) (*Match, error) {
	doc, err := s.Client.Collection("matches").Doc(matchID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrMatchNotFound
		}
		log.Printf("Failed to get match from Firestore: %v\n", err)
		return nil, err
	}
	return docToMatch(doc)
}

func (s Service) ListLiveMatches(ctx context.Context) ([]Match, error) {
	docs, err := s.Client.Collection("matches").
		Where("status", "!=", StatusFinal).
		Documents(ctx).
		GetAll()

	if err != nil {
		log.Printf("Failed to list live matches from Firestore: %v\n", err)
		return nil, err
	}

	var matches []Match
	for _, doc := range docs {
		match, err := docToMatch(doc)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *match)
	}
	return matches, nil
}

// MatchUpdate carries the fields the scoring flow may change. Nil
// fields are left untouched.
type MatchUpdate struct {
	ScoreA *int
	ScoreB *int
	Status *string
}

func (s Service) UpdateMatch(ctx context.Context, matchID string, update MatchUpdate) error {
	updates := createMatchUpdates(&update)
	if len(updates) == 0 {
		return nil
	}

	_, err := s.Client.Collection("matches").Doc(matchID).Update(ctx, updates)
	if err != nil {
		log.Printf("Failed to update match in Firestore: %v\n", err)
		return err
	}
	return nil
}

func createMatchUpdates(update *MatchUpdate) []firestore.Update {
	var updates []firestore.Update

	if update.ScoreA != nil {
		updates = append(updates, firestore.Update{Path: "teamA.score", Value: *update.ScoreA})
	}
	if update.ScoreB != nil {
		updates = append(updates, firestore.Update{Path: "teamB.score", Value: *update.ScoreB})
	}
	if update.Status != nil {
		updates = append(updates, firestore.Update{Path: "status", Value: *update.Status})
	}

	return updates
}

func docToTournament(doc *firestore.DocumentSnapshot) (*Tournament, error) {
	var tournament Tournament
	if err := doc.DataTo(&tournament); err != nil {
		// If this fails, we have an inconsistency error as we control both the data written to
		// Firestore and the shape of our `Tournament` struct.
		return nil, xerrors.Errorf(
			"consistency error. Converting %+v to Tournament struct failed: %w",
			doc,
			err,
		)
	}
	return &tournament, nil
}

func docToMatch(doc *firestore.DocumentSnapshot) (*Match, error) {
	var match Match
	if err := doc.DataTo(&match); err != nil {
		return nil, xerrors.Errorf(
			"consistency error. Converting %+v to Match struct failed: %w",
			doc,
			err,
		)
	}
	match.ID = doc.Ref.ID
	return &match, nil
}
