package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/daycheck/internal/models"
)

func pts(values ...models.Value) []Point {
	out := make([]Point, len(values))
	for i, v := range values {
		out[i] = Point{Date: today.AddDays(i - len(values) + 1).String(), Value: v}
	}
	return out
}

func TestYesNoCounts(t *testing.T) {
	points := pts(models.BoolValue(true), models.BoolValue(false), models.BoolValue(true), models.IntValue(1))
	c := YesNoCounts(points)
	assert.Equal(t, YesNoCount{Yes: 2, No: 1}, c)
	assert.Equal(t, []Slice{{"Yes", 2}, {"No", 1}}, c.Slices())

	assert.Equal(t, []Slice{{"Yes", 3}}, YesNoCount{Yes: 3}.Slices(), "zero wedges are omitted")
	assert.Empty(t, YesNoCount{}.Slices())
}

func TestYesNoSeries(t *testing.T) {
	points := pts(models.BoolValue(true), models.BoolValue(false))
	series := YesNoSeries(points)
	assert.Equal(t, []SeriesPoint{{points[0].Date, 1}, {points[1].Date, 0}}, series)
}

func TestScaleSeriesAndHistogram(t *testing.T) {
	points := pts(models.IntValue(7), models.IntValue(3), models.IntValue(7), models.IntValue(10), models.TextValue("x"))

	series := ScaleSeries(points)
	assert.Len(t, series, 4)
	assert.Equal(t, 7, series[0].Value)
	assert.Equal(t, 10, series[3].Value)

	assert.Equal(t, []Bucket{{3, 1}, {7, 2}, {10, 1}}, ScaleHistogram(points))
	assert.Empty(t, ScaleHistogram(nil))
}

func TestWordFrequencies(t *testing.T) {
	points := pts(
		models.TextValue("Coffee with Sam at the park"),
		models.TextValue("coffee   and the  PARK again"),
		models.TextValue(""),
		models.TextValue("go to the gym"),
		models.BoolValue(true),
	)

	words := WordFrequencies(points, 3)
	assert.Equal(t, []WordCount{
		{"the", 3},
		{"coffee", 2},
		{"park", 2},
	}, words)
}

func TestWordFrequenciesTiesKeepFirstSeenOrder(t *testing.T) {
	points := pts(models.TextValue("zebra apple mango"), models.TextValue("mango"))
	words := WordFrequencies(points, 0)
	assert.Equal(t, []WordCount{{"mango", 2}, {"zebra", 1}, {"apple", 1}}, words)
}

func TestWordFrequenciesCountsRunes(t *testing.T) {
	words := WordFrequencies(pts(models.TextValue("été ok où")), 10)
	assert.Equal(t, []WordCount{{"été", 1}}, words)
}

func TestWordFrequenciesDefaultLimit(t *testing.T) {
	points := pts(models.TextValue("one1 two2 three four five sixx seven eight nine tenn eleven twelve"))
	assert.Len(t, WordFrequencies(points, 0), 10)
}

func TestRecentEntries(t *testing.T) {
	var values []models.Value
	for _, s := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		values = append(values, models.TextValue(s))
	}
	points := pts(values...)

	recent := RecentEntries(points, 0)
	var got []string
	for _, p := range recent {
		s, _ := p.Value.Text()
		got = append(got, s)
	}
	assert.Equal(t, []string{"g", "f", "e", "d", "c"}, got)

	assert.Len(t, RecentEntries(points[:2], 5), 2)
	assert.Empty(t, RecentEntries(nil, 5))
}
