package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Day
		wantErr bool
	}{
		{name: "epoch", input: "1970-01-01", want: 0},
		{name: "day after epoch", input: "1970-01-02", want: 1},
		{name: "before epoch", input: "1969-12-31", want: -1},
		{name: "leap day", input: "2024-02-29", want: 19782},
		{name: "wrong separator", input: "2024/02/29", wantErr: true},
		{name: "not a date", input: "2023-02-29", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDay(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestDayArithmeticAcrossBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		start string
		delta int
		want  string
	}{
		{name: "month rollover", start: "2026-01-31", delta: 1, want: "2026-02-01"},
		{name: "year rollover", start: "2025-12-31", delta: 1, want: "2026-01-01"},
		{name: "leap february", start: "2024-02-28", delta: 1, want: "2024-02-29"},
		{name: "backwards over march", start: "2024-03-01", delta: -1, want: "2024-02-29"},
		{name: "thirty days back", start: "2026-10-14", delta: -29, want: "2026-09-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustParseDay(tt.start).AddDays(tt.delta)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDayOfUsesWallClockDate(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2026-03-08 23:30 in New York is already 2026-03-09 in Tokyo.
	instant := time.Date(2026, 3, 8, 23, 30, 0, 0, newYork)

	assert.Equal(t, "2026-03-08", DayOf(instant).String())
	assert.Equal(t, "2026-03-09", Today(instant, tokyo).String())
}

func TestDayOfAcrossDSTTransition(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	before := time.Date(2026, 3, 7, 12, 0, 0, 0, newYork)
	after := time.Date(2026, 3, 9, 0, 30, 0, 0, newYork)

	assert.Equal(t, Day(2), DayOf(after)-DayOf(before))
}

func TestDayDisplay(t *testing.T) {
	assert.Equal(t, "Oct 14", MustParseDay("2026-10-14").Display())
}
