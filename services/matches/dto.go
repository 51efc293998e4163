package matches

// ScoreRequest is the scoring board's update payload. Nil fields leave
// the match document untouched.
type ScoreRequest struct {
	ScoreA *int    `json:"scoreA"`
	ScoreB *int    `json:"scoreB"`
	Status *string `json:"status"`
}
