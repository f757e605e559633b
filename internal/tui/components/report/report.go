// Package report renders statistics as terminal text: sparklines for line
// charts, horizontal bars for pie charts and tables for free text.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daycheck/internal/constants"
	"github.com/julianstephens/daycheck/internal/stats"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	valueStyle  = lipgloss.NewStyle().Bold(true)
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	sparkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	streakStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

var levels = []rune("▁▂▃▄▅▆▇█")

// DefaultWidth is used when the terminal width is unknown
const DefaultWidth = 60

// Summary renders the headline numbers of the statistics page
func Summary(s stats.Summary) string {
	rows := []string{
		fmt.Sprintf("%s %s  %s", labelStyle.Render("Current streak:"), valueStyle.Render(plural(s.Streak, "day")), streakStyle.Render(s.StreakMessage)),
		fmt.Sprintf("%s %s", labelStyle.Render("Best streak:   "), valueStyle.Render(plural(s.BestStreak, "day"))),
		fmt.Sprintf("%s %s", labelStyle.Render("Check-ins:     "), valueStyle.Render(fmt.Sprintf("%d", s.TotalCheckIns))),
		fmt.Sprintf("%s %s", labelStyle.Render(fmt.Sprintf("Last %d days:  ", s.WindowDays)), valueStyle.Render(fmt.Sprintf("%d%%", s.CompletionRate))),
	}
	return strings.Join(rows, "\n")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// Question renders one question's chart in at most width columns
func Question(r stats.QuestionReport, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	q := r.Question

	header := titleStyle.Render(fmt.Sprintf("%s %s", q.Icon(), q.Text))
	if r.ChartType != "" {
		header += labelStyle.Render(fmt.Sprintf("  [%s]", r.ChartType))
	}

	var body string
	switch {
	case len(r.Answers) == 0:
		body = labelStyle.Render("No answers yet")
	case q.Type == constants.QuestionFreeText:
		body = freeText(r)
	case r.ChartType == constants.ChartPie && q.Type == constants.QuestionYesNo:
		body = pie(r.Slices, width)
	case r.ChartType == constants.ChartPie:
		body = histogram(r.Histogram, width)
	default:
		lo, hi := q.Bounds()
		if q.Type == constants.QuestionYesNo {
			lo, hi = 0, 1
		}
		body = line(r.Series, lo, hi, width)
		if r.YesNo != nil {
			body += "\n" + labelStyle.Render(fmt.Sprintf("yes %d · no %d", r.YesNo.Yes, r.YesNo.No))
		}
	}
	return header + "\n" + body
}

// Sparkline maps values in lo..hi onto block characters, keeping the most
// recent samples that fit in width.
func Sparkline(series []stats.SeriesPoint, lo, hi, width int) string {
	if len(series) > width {
		series = series[len(series)-width:]
	}
	var b strings.Builder
	for _, p := range series {
		b.WriteRune(level(p.Value, lo, hi))
	}
	return b.String()
}

func level(v, lo, hi int) rune {
	if hi <= lo {
		return levels[len(levels)-1]
	}
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	idx := (v - lo) * (len(levels) - 1) / (hi - lo)
	return levels[idx]
}

func line(series []stats.SeriesPoint, lo, hi, width int) string {
	if len(series) == 0 {
		return labelStyle.Render("No answers yet")
	}
	spark := sparkStyle.Render(Sparkline(series, lo, hi, width))
	first, last := series[0], series[len(series)-1]
	if len(series) > width {
		first = series[len(series)-width]
	}
	return spark + "\n" + labelStyle.Render(fmt.Sprintf("%s → %s  latest %d", first.Date, last.Date, last.Value))
}

// Bar draws count as a share of total in width cells
func Bar(count, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	n := count * width / total
	if n == 0 && count > 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func pie(slices []stats.Slice, width int) string {
	total := 0
	for _, s := range slices {
		total += s.Count
	}
	if total == 0 {
		return labelStyle.Render("No answers yet")
	}
	barWidth := width - 20
	rows := make([]string, 0, len(slices))
	for _, s := range slices {
		pct := s.Count * 100 / total
		rows = append(rows, fmt.Sprintf("%-4s %s %d (%d%%)", s.Label, barStyle.Render(Bar(s.Count, total, barWidth)), s.Count, pct))
	}
	return strings.Join(rows, "\n")
}

func histogram(buckets []stats.Bucket, width int) string {
	peak := 0
	for _, b := range buckets {
		if b.Count > peak {
			peak = b.Count
		}
	}
	barWidth := width - 12
	rows := make([]string, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, fmt.Sprintf("%3d %s %d", b.Value, barStyle.Render(Bar(b.Count, peak, barWidth)), b.Count))
	}
	return strings.Join(rows, "\n")
}

func freeText(r stats.QuestionReport) string {
	var rows []string
	if len(r.Words) > 0 {
		words := make([]string, 0, len(r.Words))
		for _, w := range r.Words {
			words = append(words, fmt.Sprintf("%s (%d)", w.Word, w.Count))
		}
		rows = append(rows, labelStyle.Render("Top words: ")+strings.Join(words, ", "))
	}
	for _, p := range r.Recent {
		text, _ := p.Value.Text()
		rows = append(rows, fmt.Sprintf("%s  %s", labelStyle.Render(p.Date), text))
	}
	return strings.Join(rows, "\n")
}
