// Package checkin turns raw widget input into stored answers for today's entry.
package checkin

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/daycheck/internal/constants"
	apperrors "github.com/julianstephens/daycheck/internal/errors"
	"github.com/julianstephens/daycheck/internal/logger"
	"github.com/julianstephens/daycheck/internal/models"
	"github.com/julianstephens/daycheck/internal/utils"
	"github.com/julianstephens/daycheck/internal/validation"
)

// AnswerWriter is the repository write the recorder depends on
type AnswerWriter interface {
	UpsertAnswer(date, questionID string, value models.Value, timestamp time.Time) error
}

// Recorder validates answers and files them under the local calendar date
type Recorder struct {
	store AnswerWriter
	now   func() time.Time
	loc   *time.Location
}

// Option configures a Recorder
type Option func(*Recorder)

// WithClock replaces the wall clock, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// WithLocation sets the timezone whose calendar date keys the entry
func WithLocation(loc *time.Location) Option {
	return func(r *Recorder) { r.loc = loc }
}

func NewRecorder(store AnswerWriter, opts ...Option) *Recorder {
	r := &Recorder{
		store: store,
		now:   time.Now,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Today returns the date key answers are currently filed under
func (r *Recorder) Today() string {
	return utils.Today(r.now(), r.loc).String()
}

// Submit validates raw against q and upserts it into today's entry. An
// invalid value is rejected before anything is written.
func (r *Recorder) Submit(q models.Question, raw interface{}) (models.Answer, string, error) {
	value, err := validation.ValidateAnswer(q, raw)
	if err != nil {
		logger.Info("Answer rejected", "question", q.ID, "error", err)
		return models.Answer{}, "", err
	}

	now := r.now()
	date := utils.Today(now, r.loc).String()
	answer := models.Answer{QuestionID: q.ID, Value: value, Timestamp: now}

	if err := r.store.UpsertAnswer(date, q.ID, value, now); err != nil {
		logger.Error("Failed to store answer", "date", date, "question", q.ID, "error", err)
		return models.Answer{}, "", fmt.Errorf("failed to save answer for %s: %w", q.ID, err)
	}

	logger.Debug("Answer recorded", "date", date, "question", q.ID, "kind", value.Kind())
	return answer, date, nil
}

// ParseInput converts command-line text into the raw value the question's
// widget would produce: a bool for yes/no, an int for scales and the text
// unchanged for free text.
func ParseInput(q models.Question, input string) (interface{}, error) {
	switch q.Type {
	case constants.QuestionYesNo:
		switch strings.ToLower(strings.TrimSpace(input)) {
		case "y", "yes", "true", "t", "1":
			return true, nil
		case "n", "no", "false", "f", "0":
			return false, nil
		}
		return nil, apperrors.NewValidationError(q.ID, "expected yes or no, got %q", input)

	case constants.QuestionScale:
		n, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			lo, hi := q.Bounds()
			return nil, apperrors.NewValidationError(q.ID, "expected a whole number between %d and %d, got %q", lo, hi, input)
		}
		return n, nil

	case constants.QuestionFreeText:
		return input, nil

	default:
		return nil, apperrors.NewValidationError(q.ID, "unknown question type %q", q.Type)
	}
}
