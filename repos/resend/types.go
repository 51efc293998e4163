package resend

// AccessRequest asks for scoring access to one tournament.
type AccessRequest struct {
	TournamentID string `json:"tournamentId"`
	Email        string `json:"email"`
}
