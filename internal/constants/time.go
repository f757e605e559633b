package constants

const (
	// DateFormat is the calendar date key format used by the repository (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DisplayDateFormat is the short date shown next to chart points and recent entries
	DisplayDateFormat = "Jan 2"
)
