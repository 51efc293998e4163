package stats

import (
	"fmt"
	"log"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	timehelper "github.com/courtside/league-sync/pkg/timeHelper"
	league "github.com/courtside/league-sync/repos/league"
)

type StatsService struct {
	firestoreClient *firestore.Client
}

func NewStatsService(firestoreClient *firestore.Client) *StatsService {
	return &StatsService{
		firestoreClient: firestoreClient,
	}
}

func (s *StatsService) GetStats(c *gin.Context) ([]*TournamentStats, error) {
	var tournaments []*TournamentStats

	docs, err := s.firestoreClient.Collection("tournaments").
		Where("numberOfMatches", ">", 0).
		Documents(c).
		GetAll()

	if err != nil {
		log.Printf("Failed to read tournaments from Firestore: %v\n", err)
		return nil, err
	}

	for _, doc := range docs {
		tournament, err := docToTournamentStats(doc)
		if err != nil {
			return nil, err
		}

		tournaments = append(tournaments, tournament)
	}

	sort.Slice(tournaments, func(i, j int) bool {
		return tournaments[i].StartDate < tournaments[j].StartDate
	})

	return tournaments, nil
}

// UpdateStats rolls up match counts for every ended tournament that
// has not been counted yet.
func (s *StatsService) UpdateStats(c *gin.Context) error {
	docs, err := s.firestoreClient.Collection("tournaments").
		Where("endDate", "<", timehelper.GetTodaysDateString()).
		Where("statsWritten", "==", false).
		Documents(c).
		GetAll()

	if err != nil {
		log.Printf("Failed to read tournaments from Firestore: %v\n", err)
		return err
	}

	for _, doc := range docs {
		tournament, err := docToTournamentStats(doc)
		if err != nil {
			return err
		}

		matchDocs, err := s.firestoreClient.Collection("matches").
			Where("tournamentId", "==", doc.Ref.ID).
			Documents(c).
			GetAll()
		if err != nil {
			log.Printf("Failed to read matches from Firestore: %v\n", err)
			return err
		}

		if len(matchDocs) == 0 {
			continue
		}

		totalMatches := 0
		finalMatches := 0
		for _, matchDoc := range matchDocs {
			var match league.Match
			if err := matchDoc.DataTo(&match); err != nil {
				// If this fails, we have an inconsistency error as we control both the data written to
				// Firestore and the shape of our `league.Match` struct.
				return fmt.Errorf(
					"consistency error. Converting %+v to league.Match struct failed: %w",
					matchDoc,
					err,
				)
			}
			totalMatches++
			if match.Status == league.StatusFinal {
				finalMatches++
			}
		}

		updates := []firestore.Update{
			{Path: "numberOfMatches", Value: totalMatches},
			{Path: "numberOfFinalMatches", Value: finalMatches},
			{Path: "statsWritten", Value: true},
		}

		_, err = s.firestoreClient.Collection("tournaments").Doc(doc.Ref.ID).Update(c, updates)
		if err != nil {
			log.Printf("Failed to update tournament to Firestore: %v\n", err)
			return err
		}
		log.Printf("Stats written for %s: %d / %d final\n", tournament.Name, finalMatches, totalMatches)
	}

	return nil
}

func docToTournamentStats(doc *firestore.DocumentSnapshot) (*TournamentStats, error) {
	var tournament TournamentStats
	if err := doc.DataTo(&tournament); err != nil {
		// If this fails, we have an inconsistency error as we control both the data written to
		// Firestore and the shape of our `TournamentStats` struct.
		return nil, fmt.Errorf(
			"consistency error. Converting %+v to TournamentStats struct failed: %w",
			doc,
			err,
		)
	}
	tournament.ID = doc.Ref.ID

	return &tournament, nil
}
