package timehelper

import "time"

// GetTodaysDateString returns the current date as 'YYYY-MM-DD', the
// format history entries and tournament date fields are stored in.
func GetTodaysDateString() string {
	currentTime := time.Now()

	return currentTime.Format("2006-01-02")
}
