package stats

import (
	"math"
	"sort"

	"github.com/julianstephens/daycheck/internal/constants"
	"github.com/julianstephens/daycheck/internal/models"
	"github.com/julianstephens/daycheck/internal/utils"
)

// TotalCheckIns counts dates with at least one answer, not answers
func TotalCheckIns(entries []models.DayEntry) int {
	return len(AnsweredDays(entries))
}

// CompletionRate is the percentage of the window days ending today
// (inclusive) that hold an entry, rounded to the nearest integer. A window
// of zero or less uses the 30 day default.
func CompletionRate(entries []models.DayEntry, today utils.Day, window int) int {
	if window <= 0 {
		window = constants.DefaultWindowDays
	}
	days := AnsweredDays(entries)

	matches := 0
	for i := 0; i < window; i++ {
		if days[today.AddDays(-i)] {
			matches++
		}
	}
	return int(math.Round(float64(matches) / float64(window) * 100))
}

// Point is one dated answer to a single question
type Point struct {
	Date  string       `json:"date"`
	Value models.Value `json:"value"`
}

// AnswersForQuestion extracts every answer to questionID, oldest first,
// whatever order the entries come in. Dates without such an answer are
// skipped.
func AnswersForQuestion(entries []models.DayEntry, questionID string) []Point {
	points := []Point{}
	for _, e := range entries {
		if a, ok := e.Answer(questionID); ok {
			points = append(points, Point{Date: e.Date, Value: a.Value})
		}
	}
	// YYYY-MM-DD keys sort chronologically
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}
