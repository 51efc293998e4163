package league

// PlayerRef identifies one roster member of a team.
type PlayerRef struct {
	ID   string `firestore:"id" json:"id"`
	Name string `firestore:"name" json:"name"`
}

// TeamRef is the id/name pair a standings run needs for every
// registered team.
type TeamRef struct {
	ID   string `firestore:"id" json:"id"`
	Name string `firestore:"name" json:"name"`
}

type Team struct {
	ID     string      `firestore:"id" json:"id"`
	Name   string      `firestore:"name" json:"name"`
	Roster []PlayerRef `firestore:"roster" json:"roster"`
}

// MatchSide is one team's view of a match. Score is provisional until
// the match status is "Final".
type MatchSide struct {
	ID    string `firestore:"id" json:"id"`
	Name  string `firestore:"name" json:"name"`
	Score int    `firestore:"score" json:"score"`
}

type Match struct {
	ID           string    `firestore:"id" json:"id"`
	TournamentID string    `firestore:"tournamentId" json:"tournamentId"`
	TeamA        MatchSide `firestore:"teamA" json:"teamA"`
	TeamB        MatchSide `firestore:"teamB" json:"teamB"`
	Status       string    `firestore:"status" json:"status"`
}

type Tournament struct {
	ID        string        `firestore:"id" json:"id"`
	Name      string        `firestore:"name" json:"name"`
	TeamIDs   []string      `firestore:"teamIds" json:"teamIds"`
	Standings []StandingRow `firestore:"standings" json:"standings"`
}

// StandingRow is one line of a tournament's standings table. The
// standings field on the tournament document is fully overwritten with
// these rows on every run.
type StandingRow struct {
	Rank   int    `firestore:"rank" json:"rank"`
	TeamID string `firestore:"teamId" json:"teamId"`
	Team   string `firestore:"team" json:"team"`
	Wins   int    `firestore:"wins" json:"wins"`
	Losses int    `firestore:"losses" json:"losses"`
	Draws  int    `firestore:"draws" json:"draws"`
	Points int    `firestore:"points" json:"points"`
}

// HistoryEntry is one player's record of one finished match, stored
// under users/{userId}/tournamentHistory.
type HistoryEntry struct {
	TournamentName string `firestore:"tournamentName" json:"tournamentName"`
	Team           string `firestore:"team" json:"team"`
	Result         string `firestore:"result" json:"result"`
	Record         string `firestore:"record" json:"record"`
	Date           string `firestore:"date" json:"date"`
	UserID         string `firestore:"userId" json:"userId"`
}

// Match lifecycle states as written by the scoring flow.
const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusHalftime   = "Halftime"
	StatusFinal      = "Final"
)

// Result values carried on history entries.
const (
	ResultWin  = "Win"
	ResultLoss = "Loss"
	ResultDraw = "Draw"
)
