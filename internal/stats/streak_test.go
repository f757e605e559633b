package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/daycheck/internal/models"
	"github.com/julianstephens/daycheck/internal/utils"
)

var today = utils.MustParseDay("2024-03-10")

// entriesOn builds one single-answer entry per offset from today
func entriesOn(offsets ...int) []models.DayEntry {
	entries := make([]models.DayEntry, 0, len(offsets))
	for _, off := range offsets {
		date := today.AddDays(off).String()
		entries = append(entries, models.NewDayEntry(date, models.Answer{QuestionID: "pre-1", Value: models.BoolValue(true)}))
	}
	return entries
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.DayEntry
		want    int
	}{
		{"no entries", nil, 0},
		{"today only", entriesOn(0), 1},
		{"three consecutive ending today", entriesOn(0, -1, -2), 3},
		{"stops at first gap", entriesOn(0, -1, -2, -4, -5), 3},
		{"today missing counts from yesterday", entriesOn(-1, -2), 2},
		{"only two days ago", entriesOn(-2), 0},
		{"old run is not current", entriesOn(-5, -6, -7), 0},
		{"answered today after missing yesterday", entriesOn(0, -2, -3), 1},
		{"unordered input", entriesOn(-2, 0, -1), 3},
		{"future entries ignored", entriesOn(1, 0), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentStreak(tt.entries, today))
		})
	}
}

func TestCurrentStreakIgnoresEmptyAndMalformedEntries(t *testing.T) {
	entries := append(entriesOn(-1),
		models.DayEntry{Date: today.String()},
		models.DayEntry{Date: "garbage", Answers: []models.Answer{{QuestionID: "x", Value: models.BoolValue(true)}}},
	)
	assert.Equal(t, 1, CurrentStreak(entries, today))
}

func TestCurrentStreakAcrossMonthAndLeapDay(t *testing.T) {
	march1 := utils.MustParseDay("2024-03-01")
	var entries []models.DayEntry
	for _, d := range []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01"} {
		entries = append(entries, models.NewDayEntry(d, models.Answer{QuestionID: "a", Value: models.IntValue(1)}))
	}
	assert.Equal(t, 4, CurrentStreak(entries, march1))
}

func TestBestStreak(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.DayEntry
		want    int
	}{
		{"no entries", nil, 0},
		{"single day", entriesOn(-40), 1},
		{"two equal runs", entriesOn(-10, -9, -8, -2, -1, 0), 3},
		{"historic run longer than current", entriesOn(-20, -19, -18, -17, -1, 0), 4},
		{"current run longest", entriesOn(-9, -3, -2, -1, 0), 4},
		{"not anchored to today", entriesOn(-100, -99), 2},
		{"duplicates collapse", append(entriesOn(-1, 0), entriesOn(0)...), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BestStreak(tt.entries))
		})
	}
}

func TestStreakMessage(t *testing.T) {
	assert.Equal(t, "Start now!", StreakMessage(0))
	assert.Equal(t, "Great start!", StreakMessage(1))
	assert.Equal(t, "Keep it up!", StreakMessage(2))
	assert.Equal(t, "Keep it up!", StreakMessage(6))
	assert.Equal(t, "Incredible!", StreakMessage(7))
	assert.Equal(t, "Incredible!", StreakMessage(365))
}
