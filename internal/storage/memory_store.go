package storage

import (
	"sync"
	"time"

	"github.com/julianstephens/daycheck/internal/constants"
	apperrors "github.com/julianstephens/daycheck/internal/errors"
	"github.com/julianstephens/daycheck/internal/models"
)

// MemoryStore keeps the repository in process memory only
type MemoryStore struct {
	mu  sync.RWMutex
	doc *Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = NewDocument()
	return nil
}

func (s *MemoryStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		s.doc = NewDocument()
	}
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) GetAllEntries() ([]models.DayEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, apperrors.ErrNotLoaded
	}
	return s.doc.allEntries(), nil
}

func (s *MemoryStore) GetEntryForDate(date string) (models.DayEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return models.DayEntry{}, false, apperrors.ErrNotLoaded
	}
	e, ok := s.doc.entryForDate(date)
	return e, ok, nil
}

func (s *MemoryStore) UpsertAnswer(date, questionID string, value models.Value, timestamp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return apperrors.ErrNotLoaded
	}
	s.doc.upsertAnswer(date, questionID, value, timestamp)
	return nil
}

func (s *MemoryStore) GetUserQuestions() ([]models.UserQuestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, apperrors.ErrNotLoaded
	}
	return s.doc.userQuestions(), nil
}

func (s *MemoryStore) SetUserQuestions(list []models.UserQuestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return apperrors.ErrNotLoaded
	}
	s.doc.setUserQuestions(list)
	return nil
}

func (s *MemoryStore) UpdateQuestionChartType(questionID string, chartType constants.ChartType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return apperrors.ErrNotLoaded
	}
	s.doc.updateChartType(questionID, chartType)
	return nil
}

func (s *MemoryStore) GetCustomQuestions() ([]models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, apperrors.ErrNotLoaded
	}
	return s.doc.customQuestions(), nil
}

func (s *MemoryStore) AddCustomQuestion(q models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return apperrors.ErrNotLoaded
	}
	s.doc.addCustomQuestion(q)
	return nil
}

func (s *MemoryStore) GetConfigPath() string {
	return ":memory:"
}
