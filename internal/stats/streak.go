// Package stats derives streaks, aggregates and chart series from stored
// day entries. Every function here is a pure read over an entry snapshot.
package stats

import (
	"sort"

	"github.com/julianstephens/daycheck/internal/logger"
	"github.com/julianstephens/daycheck/internal/models"
	"github.com/julianstephens/daycheck/internal/utils"
)

// AnsweredDays returns the set of dates holding at least one answer.
// Entries with malformed date keys are skipped.
func AnsweredDays(entries []models.DayEntry) map[utils.Day]bool {
	days := make(map[utils.Day]bool, len(entries))
	for _, e := range entries {
		if !e.HasAnswers() {
			continue
		}
		d, err := utils.ParseDay(e.Date)
		if err != nil {
			logger.Debug("Skipping entry with malformed date", "date", e.Date)
			continue
		}
		days[d] = true
	}
	return days
}

// CurrentStreak is the length of the run of consecutive answered dates that
// ends today, or yesterday when today has no answer yet. Any other run is
// not current and yields 0.
func CurrentStreak(entries []models.DayEntry, today utils.Day) int {
	days := AnsweredDays(entries)

	day := today
	if !days[day] {
		day = today.AddDays(-1)
	}

	streak := 0
	for days[day] {
		streak++
		day = day.AddDays(-1)
	}
	return streak
}

// BestStreak is the longest run of consecutive answered dates anywhere in history
func BestStreak(entries []models.DayEntry) int {
	days := AnsweredDays(entries)
	if len(days) == 0 {
		return 0
	}

	sorted := make([]utils.Day, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	best, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1].AddDays(1) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// StreakMessage is the encouragement shown next to the current streak
func StreakMessage(streak int) string {
	switch {
	case streak <= 0:
		return "Start now!"
	case streak == 1:
		return "Great start!"
	case streak < 7:
		return "Keep it up!"
	default:
		return "Incredible!"
	}
}
