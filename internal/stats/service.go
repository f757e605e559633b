package stats

import (
	"fmt"
	"time"

	"github.com/julianstephens/daycheck/internal/catalog"
	"github.com/julianstephens/daycheck/internal/constants"
	apperrors "github.com/julianstephens/daycheck/internal/errors"
	"github.com/julianstephens/daycheck/internal/logger"
	"github.com/julianstephens/daycheck/internal/models"
	"github.com/julianstephens/daycheck/internal/utils"
)

// Reader is the slice of the repository the statistics page reads
type Reader interface {
	GetAllEntries() ([]models.DayEntry, error)
	GetUserQuestions() ([]models.UserQuestion, error)
	GetCustomQuestions() ([]models.Question, error)
}

// Options tunes the derived views
type Options struct {
	WindowDays    int
	TopWords      int
	RecentEntries int
}

// DefaultOptions matches the statistics page: a 30 day rate, the top 10
// words and the 5 latest free-text answers.
func DefaultOptions() Options {
	return Options{
		WindowDays:    constants.DefaultWindowDays,
		TopWords:      constants.DefaultTopWords,
		RecentEntries: constants.DefaultRecentEntries,
	}
}

// Summary is the statistics page view model
type Summary struct {
	Today          string           `json:"today"`
	Streak         int              `json:"streak"`
	BestStreak     int              `json:"best_streak"`
	TotalCheckIns  int              `json:"total_check_ins"`
	CompletionRate int              `json:"completion_rate"`
	WindowDays     int              `json:"window_days"`
	StreakMessage  string           `json:"streak_message"`
	Questions      []QuestionReport `json:"questions"`
}

// QuestionReport carries the chart data for one active question. Only the
// fields matching the question type are filled.
type QuestionReport struct {
	Question  models.Question     `json:"question"`
	ChartType constants.ChartType `json:"chart_type"`
	Answers   []Point             `json:"answers"`

	YesNo     *YesNoCount   `json:"yes_no,omitempty"`
	Slices    []Slice       `json:"slices,omitempty"`
	Series    []SeriesPoint `json:"series,omitempty"`
	Histogram []Bucket      `json:"histogram,omitempty"`
	Words     []WordCount   `json:"words,omitempty"`
	Recent    []Point       `json:"recent,omitempty"`
}

// Service composes the statistics page from a repository snapshot
type Service struct {
	store Reader
	now   func() time.Time
	loc   *time.Location
	opts  Options
}

// Option configures a Service
type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

func WithOptions(opts Options) Option {
	return func(s *Service) { s.opts = opts }
}

func NewService(store Reader, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
		loc:   time.Local,
		opts:  DefaultOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) today() utils.Day {
	return utils.Today(s.now(), s.loc)
}

func (s *Service) catalog() (*catalog.Catalog, error) {
	custom, err := s.store.GetCustomQuestions()
	if err != nil {
		return nil, fmt.Errorf("failed to load custom questions: %w", err)
	}
	return catalog.New(custom), nil
}

// Summary computes the scalar statistics and a report for every active
// question that still resolves to a definition.
func (s *Service) Summary() (Summary, error) {
	entries, err := s.store.GetAllEntries()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load entries: %w", err)
	}
	subs, err := s.store.GetUserQuestions()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load active questions: %w", err)
	}
	cat, err := s.catalog()
	if err != nil {
		return Summary{}, err
	}

	today := s.today()
	streak := CurrentStreak(entries, today)
	summary := Summary{
		Today:          today.String(),
		Streak:         streak,
		BestStreak:     BestStreak(entries),
		TotalCheckIns:  TotalCheckIns(entries),
		CompletionRate: CompletionRate(entries, today, s.opts.WindowDays),
		WindowDays:     s.window(),
		StreakMessage:  StreakMessage(streak),
		Questions:      []QuestionReport{},
	}

	for _, sub := range subs {
		q, ok := cat.Resolve(sub.QuestionID)
		if !ok {
			logger.Debug("Skipping unknown question", "question", sub.QuestionID)
			continue
		}
		summary.Questions = append(summary.Questions, s.report(entries, q, sub.EffectiveChartType()))
	}
	return summary, nil
}

func (s *Service) window() int {
	if s.opts.WindowDays <= 0 {
		return constants.DefaultWindowDays
	}
	return s.opts.WindowDays
}

// QuestionReport builds the report for one question id, subscribed or not.
// History of deactivated questions stays available this way. It returns a
// NotFoundError when the id has no definition.
func (s *Service) QuestionReport(questionID string) (QuestionReport, error) {
	cat, err := s.catalog()
	if err != nil {
		return QuestionReport{}, err
	}
	q, ok := cat.Resolve(questionID)
	if !ok {
		return QuestionReport{}, &apperrors.NotFoundError{Kind: "question", ID: questionID}
	}

	entries, err := s.store.GetAllEntries()
	if err != nil {
		return QuestionReport{}, fmt.Errorf("failed to load entries: %w", err)
	}
	subs, err := s.store.GetUserQuestions()
	if err != nil {
		return QuestionReport{}, fmt.Errorf("failed to load active questions: %w", err)
	}

	chart := constants.ChartLine
	for _, sub := range subs {
		if sub.QuestionID == questionID {
			chart = sub.EffectiveChartType()
			break
		}
	}
	return s.report(entries, q, chart), nil
}

func (s *Service) report(entries []models.DayEntry, q models.Question, chart constants.ChartType) QuestionReport {
	points := AnswersForQuestion(entries, q.ID)
	r := QuestionReport{
		Question:  q,
		ChartType: chart,
		Answers:   points,
	}
	if !q.SupportsChartToggle() {
		r.ChartType = ""
	}

	switch q.Type {
	case constants.QuestionYesNo:
		counts := YesNoCounts(points)
		r.YesNo = &counts
		if chart == constants.ChartPie {
			r.Slices = counts.Slices()
		} else {
			r.Series = YesNoSeries(points)
		}
	case constants.QuestionScale:
		if chart == constants.ChartPie {
			r.Histogram = ScaleHistogram(points)
		} else {
			r.Series = ScaleSeries(points)
		}
	case constants.QuestionFreeText:
		r.Words = WordFrequencies(points, s.opts.TopWords)
		r.Recent = RecentEntries(points, s.opts.RecentEntries)
	}
	return r
}
