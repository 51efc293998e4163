package stats

// TournamentStats is the per-tournament rollup written back onto the
// tournament document once the tournament has ended.
type TournamentStats struct {
	ID                   string `firestore:"id" json:"id"`
	Name                 string `firestore:"name" json:"name"`
	StartDate            string `firestore:"startDate" json:"startDate"`
	EndDate              string `firestore:"endDate" json:"endDate"`
	NumberOfMatches      int    `firestore:"numberOfMatches" json:"numberOfMatches"`
	NumberOfFinalMatches int    `firestore:"numberOfFinalMatches" json:"numberOfFinalMatches"`
	StatsWritten         bool   `firestore:"statsWritten" json:"statsWritten"`
}
