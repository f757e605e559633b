// Package subscription manages the user's active question set, their custom
// questions and per-question chart preferences.
package subscription

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/daycheck/internal/catalog"
	"github.com/julianstephens/daycheck/internal/constants"
	apperrors "github.com/julianstephens/daycheck/internal/errors"
	"github.com/julianstephens/daycheck/internal/logger"
	"github.com/julianstephens/daycheck/internal/models"
	"github.com/julianstephens/daycheck/internal/validation"
)

// Store is the subscription and custom-question part of the repository
type Store interface {
	GetUserQuestions() ([]models.UserQuestion, error)
	SetUserQuestions([]models.UserQuestion) error
	UpdateQuestionChartType(questionID string, chartType constants.ChartType) error
	GetCustomQuestions() ([]models.Question, error)
	AddCustomQuestion(q models.Question) error
}

// ActiveQuestion pairs a subscription with its resolved definition
type ActiveQuestion struct {
	Question     models.Question
	Subscription models.UserQuestion
}

// ChartType is the effective chart preference for the question
func (a ActiveQuestion) ChartType() constants.ChartType {
	return a.Subscription.EffectiveChartType()
}

type Manager struct {
	store Store
	now   func() time.Time
	newID func() string
}

// Option configures a Manager
type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator replaces the uuid source of custom question ids
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) { m.newID = newID }
}

func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Catalog returns the built-in questions merged with the stored custom ones
func (m *Manager) Catalog() (*catalog.Catalog, error) {
	custom, err := m.store.GetCustomQuestions()
	if err != nil {
		return nil, fmt.Errorf("failed to load custom questions: %w", err)
	}
	return catalog.New(custom), nil
}

// Resolve looks up a question definition by id
func (m *Manager) Resolve(questionID string) (models.Question, error) {
	cat, err := m.Catalog()
	if err != nil {
		return models.Question{}, err
	}
	q, ok := cat.Resolve(questionID)
	if !ok {
		return models.Question{}, &apperrors.NotFoundError{Kind: "question", ID: questionID}
	}
	return q, nil
}

// Activate adds the question to the active set. Activating an active
// question keeps its original subscription.
func (m *Manager) Activate(questionID string) error {
	if _, err := m.Resolve(questionID); err != nil {
		return err
	}

	subs, err := m.store.GetUserQuestions()
	if err != nil {
		return fmt.Errorf("failed to load active questions: %w", err)
	}
	for _, s := range subs {
		if s.QuestionID == questionID {
			return nil
		}
	}

	subs = append(subs, models.UserQuestion{QuestionID: questionID, AddedAt: m.now()})
	if err := m.store.SetUserQuestions(subs); err != nil {
		return fmt.Errorf("failed to activate %s: %w", questionID, err)
	}
	logger.Info("Question activated", "question", questionID)
	return nil
}

// Deactivate removes the question from the active set. Recorded answers
// are left untouched.
func (m *Manager) Deactivate(questionID string) error {
	subs, err := m.store.GetUserQuestions()
	if err != nil {
		return fmt.Errorf("failed to load active questions: %w", err)
	}

	kept := make([]models.UserQuestion, 0, len(subs))
	for _, s := range subs {
		if s.QuestionID != questionID {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(subs) {
		return nil
	}

	if err := m.store.SetUserQuestions(kept); err != nil {
		return fmt.Errorf("failed to deactivate %s: %w", questionID, err)
	}
	logger.Info("Question deactivated", "question", questionID)
	return nil
}

// IsActive reports whether the question is in the active set
func (m *Manager) IsActive(questionID string) (bool, error) {
	subs, err := m.store.GetUserQuestions()
	if err != nil {
		return false, fmt.Errorf("failed to load active questions: %w", err)
	}
	for _, s := range subs {
		if s.QuestionID == questionID {
			return true, nil
		}
	}
	return false, nil
}

// Active resolves the active set in subscription order. Subscriptions
// whose question no longer has a definition are skipped.
func (m *Manager) Active() ([]ActiveQuestion, error) {
	subs, err := m.store.GetUserQuestions()
	if err != nil {
		return nil, fmt.Errorf("failed to load active questions: %w", err)
	}
	cat, err := m.Catalog()
	if err != nil {
		return nil, err
	}

	active := make([]ActiveQuestion, 0, len(subs))
	for _, s := range subs {
		q, ok := cat.Resolve(s.QuestionID)
		if !ok {
			logger.Debug("Skipping unknown active question", "question", s.QuestionID)
			continue
		}
		active = append(active, ActiveQuestion{Question: q, Subscription: s})
	}
	return active, nil
}

// SetChartType stores a chart preference. Unsubscribed questions are left alone.
func (m *Manager) SetChartType(questionID string, chartType constants.ChartType) error {
	if chartType != constants.ChartLine && chartType != constants.ChartPie {
		return &apperrors.ValidationError{
			QuestionID: questionID,
			Field:      "chart type",
			Reason:     fmt.Sprintf("%q is not one of %s, %s", chartType, constants.ChartLine, constants.ChartPie),
		}
	}
	if err := m.store.UpdateQuestionChartType(questionID, chartType); err != nil {
		return fmt.Errorf("failed to update chart type for %s: %w", questionID, err)
	}
	return nil
}

// ToggleChartType flips an active question between line and pie and
// returns the new preference. Unsubscribed questions report ok=false.
func (m *Manager) ToggleChartType(questionID string) (chartType constants.ChartType, ok bool, err error) {
	subs, err := m.store.GetUserQuestions()
	if err != nil {
		return "", false, fmt.Errorf("failed to load active questions: %w", err)
	}

	for _, s := range subs {
		if s.QuestionID != questionID {
			continue
		}
		if q, err := m.Resolve(questionID); err == nil && !q.SupportsChartToggle() {
			return "", false, &apperrors.ValidationError{QuestionID: questionID, Field: "chart type", Reason: "free-text questions have no chart"}
		}
		next := s.ToggledChartType()
		if err := m.SetChartType(questionID, next); err != nil {
			return "", false, err
		}
		return next, true, nil
	}
	return "", false, nil
}

// NewQuestion is the user-editable part of a custom question
type NewQuestion struct {
	Text     string
	Type     constants.QuestionType
	Category string
	Emoji    string
	ScaleMin int
	ScaleMax int
}

// AddCustom validates and stores a new custom question under a fresh id and,
// when activate is set, adds it to the active set.
func (m *Manager) AddCustom(in NewQuestion, activate bool) (models.Question, error) {
	q := models.Question{
		ID:       constants.CustomQuestionPrefix + m.newID(),
		Text:     strings.TrimSpace(in.Text),
		Type:     in.Type,
		Category: strings.TrimSpace(in.Category),
		Emoji:    strings.TrimSpace(in.Emoji),
		IsCustom: true,
	}
	if q.Type == constants.QuestionScale {
		q.ScaleMin, q.ScaleMax = in.ScaleMin, in.ScaleMax
		if q.ScaleMin == 0 && q.ScaleMax == 0 {
			q.ScaleMin, q.ScaleMax = constants.DefaultScaleMin, constants.DefaultScaleMax
		}
	}

	if err := validation.ValidateQuestion(q); err != nil {
		return models.Question{}, err
	}
	if err := m.store.AddCustomQuestion(q); err != nil {
		return models.Question{}, fmt.Errorf("failed to save custom question: %w", err)
	}
	logger.Info("Custom question added", "question", q.ID, "type", q.Type)

	if activate {
		if err := m.Activate(q.ID); err != nil {
			return q, err
		}
	}
	return q, nil
}
