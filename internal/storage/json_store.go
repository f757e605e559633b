package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/julianstephens/daycheck/internal/constants"
	apperrors "github.com/julianstephens/daycheck/internal/errors"
	"github.com/julianstephens/daycheck/internal/logger"
	"github.com/julianstephens/daycheck/internal/models"
)

// JSONStore keeps the whole repository in a single JSON document that is
// rewritten on every change.
type JSONStore struct {
	path string

	mu  sync.RWMutex
	doc *Document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	doc := NewDocument()
	if err := s.write(doc); err != nil {
		return err
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > DocumentVersion {
		return fmt.Errorf("storage version (%d) is newer than supported version (%d) - please upgrade the application", doc.Version, DocumentVersion)
	}
	doc.normalize()

	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// write replaces the file through a temp file and rename so a failed write
// leaves the previous document in place.
func (s *JSONStore) write(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

// mutate applies fn to a copy of the document and swaps it in only after the
// copy has been written.
func (s *JSONStore) mutate(fn func(*Document)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return apperrors.ErrNotLoaded
	}

	next := s.doc.clone()
	fn(next)
	if err := s.write(next); err != nil {
		logger.Error("Failed to save storage", "path", s.path, "error", err)
		return err
	}
	s.doc = next
	return nil
}

func (s *JSONStore) GetAllEntries() ([]models.DayEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, apperrors.ErrNotLoaded
	}
	return s.doc.allEntries(), nil
}

func (s *JSONStore) GetEntryForDate(date string) (models.DayEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return models.DayEntry{}, false, apperrors.ErrNotLoaded
	}
	e, ok := s.doc.entryForDate(date)
	return e, ok, nil
}

func (s *JSONStore) UpsertAnswer(date, questionID string, value models.Value, timestamp time.Time) error {
	return s.mutate(func(d *Document) {
		d.upsertAnswer(date, questionID, value, timestamp)
	})
}

func (s *JSONStore) GetUserQuestions() ([]models.UserQuestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, apperrors.ErrNotLoaded
	}
	return s.doc.userQuestions(), nil
}

func (s *JSONStore) SetUserQuestions(list []models.UserQuestion) error {
	return s.mutate(func(d *Document) {
		d.setUserQuestions(list)
	})
}

func (s *JSONStore) UpdateQuestionChartType(questionID string, chartType constants.ChartType) error {
	s.mu.RLock()
	subscribed := false
	if s.doc != nil {
		for _, uq := range s.doc.UserQuestions {
			if uq.QuestionID == questionID {
				subscribed = true
				break
			}
		}
	}
	loaded := s.doc != nil
	s.mu.RUnlock()

	if !loaded {
		return apperrors.ErrNotLoaded
	}
	if !subscribed {
		return nil
	}
	return s.mutate(func(d *Document) {
		d.updateChartType(questionID, chartType)
	})
}

func (s *JSONStore) GetCustomQuestions() ([]models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, apperrors.ErrNotLoaded
	}
	return s.doc.customQuestions(), nil
}

func (s *JSONStore) AddCustomQuestion(q models.Question) error {
	return s.mutate(func(d *Document) {
		d.addCustomQuestion(q)
	})
}

// GetConfigPath returns the path of the JSON document.
//
// JSONStore is safe for use by multiple goroutines in one process. Running
// several processes against the same file is not supported.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
