package storage

import (
	"time"

	"github.com/julianstephens/daycheck/internal/constants"
	"github.com/julianstephens/daycheck/internal/models"
)

// Provider is the answer repository. Every write is a single durable step;
// readers get copies and can't mutate stored state through them.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Entries
	// GetAllEntries returns every day entry in ascending date order.
	GetAllEntries() ([]models.DayEntry, error)
	// GetEntryForDate returns the entry for date; ok is false when no answer
	// has been recorded for that date.
	GetEntryForDate(date string) (entry models.DayEntry, ok bool, err error)
	// UpsertAnswer creates the entry for date, replaces the value and timestamp
	// of an existing answer to questionID in place, or appends a new answer.
	UpsertAnswer(date, questionID string, value models.Value, timestamp time.Time) error

	// Subscriptions
	GetUserQuestions() ([]models.UserQuestion, error)
	// SetUserQuestions replaces the active set; repeated ids keep the first.
	SetUserQuestions([]models.UserQuestion) error
	// UpdateQuestionChartType is a no-op for unsubscribed questions.
	UpdateQuestionChartType(questionID string, chartType constants.ChartType) error

	// Custom questions
	GetCustomQuestions() ([]models.Question, error)
	// AddCustomQuestion stores q, replacing an earlier definition with the same id.
	AddCustomQuestion(q models.Question) error

	// Utils
	GetConfigPath() string
}
