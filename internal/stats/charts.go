package stats

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/julianstephens/daycheck/internal/constants"
)

// YesNoCount tallies yes/no answers
type YesNoCount struct {
	Yes int `json:"yes"`
	No  int `json:"no"`
}

// Slice is one labelled wedge of a pie chart
type Slice struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// SeriesPoint is one numeric sample of a line chart
type SeriesPoint struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// Bucket counts how often a scale value was chosen
type Bucket struct {
	Value int `json:"value"`
	Count int `json:"count"`
}

// WordCount is one row of a word-frequency table
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// YesNoCounts tallies boolean answers; other value kinds are ignored
func YesNoCounts(points []Point) YesNoCount {
	var c YesNoCount
	for _, p := range points {
		b, ok := p.Value.Bool()
		if !ok {
			continue
		}
		if b {
			c.Yes++
		} else {
			c.No++
		}
	}
	return c
}

// Slices returns the pie wedges, leaving out empty ones
func (c YesNoCount) Slices() []Slice {
	slices := []Slice{}
	if c.Yes > 0 {
		slices = append(slices, Slice{Label: "Yes", Count: c.Yes})
	}
	if c.No > 0 {
		slices = append(slices, Slice{Label: "No", Count: c.No})
	}
	return slices
}

// YesNoSeries maps yes to 1 and no to 0 in date order
func YesNoSeries(points []Point) []SeriesPoint {
	series := []SeriesPoint{}
	for _, p := range points {
		b, ok := p.Value.Bool()
		if !ok {
			continue
		}
		v := 0
		if b {
			v = 1
		}
		series = append(series, SeriesPoint{Date: p.Date, Value: v})
	}
	return series
}

// ScaleSeries is the date-ordered sequence of integer answers
func ScaleSeries(points []Point) []SeriesPoint {
	series := []SeriesPoint{}
	for _, p := range points {
		if n, ok := p.Value.Int(); ok {
			series = append(series, SeriesPoint{Date: p.Date, Value: n})
		}
	}
	return series
}

// ScaleHistogram counts each chosen scale value, ascending by value
func ScaleHistogram(points []Point) []Bucket {
	counts := make(map[int]int)
	for _, p := range points {
		if n, ok := p.Value.Int(); ok {
			counts[n]++
		}
	}

	buckets := make([]Bucket, 0, len(counts))
	for v, c := range counts {
		buckets = append(buckets, Bucket{Value: v, Count: c})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Value < buckets[j].Value })
	return buckets
}

// WordFrequencies splits text answers on whitespace, case-folds them, keeps
// words longer than two characters and returns the limit most frequent,
// most frequent first. Ties keep the order words were first seen in. A
// limit of zero or less uses the default of 10.
func WordFrequencies(points []Point, limit int) []WordCount {
	if limit <= 0 {
		limit = constants.DefaultTopWords
	}

	counts := make(map[string]int)
	var order []string
	for _, p := range points {
		text, ok := p.Value.Text()
		if !ok {
			continue
		}
		for _, word := range strings.Fields(strings.ToLower(text)) {
			if utf8.RuneCountInString(word) < constants.MinWordLength {
				continue
			}
			if counts[word] == 0 {
				order = append(order, word)
			}
			counts[word]++
		}
	}

	words := make([]WordCount, 0, len(order))
	for _, w := range order {
		words = append(words, WordCount{Word: w, Count: counts[w]})
	}
	sort.SliceStable(words, func(i, j int) bool { return words[i].Count > words[j].Count })

	if len(words) > limit {
		words = words[:limit]
	}
	return words
}

// RecentEntries returns the last n points, most recent first. A limit of
// zero or less uses the default of 5.
func RecentEntries(points []Point, n int) []Point {
	if n <= 0 {
		n = constants.DefaultRecentEntries
	}
	start := len(points) - n
	if start < 0 {
		start = 0
	}

	recent := make([]Point, 0, len(points)-start)
	for i := len(points) - 1; i >= start; i-- {
		recent = append(recent, points[i])
	}
	return recent
}
