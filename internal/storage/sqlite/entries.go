package sqlite

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	apperrors "github.com/julianstephens/daycheck/internal/errors"
	"github.com/julianstephens/daycheck/internal/logger"
	"github.com/julianstephens/daycheck/internal/models"
)

const timeLayout = time.RFC3339Nano

func (s *Store) GetAllEntries() ([]models.DayEntry, error) {
	if s.db == nil {
		return nil, apperrors.ErrNotLoaded
	}

	rows, err := s.db.Query(`
		SELECT date, question_id, value_json, timestamp
		FROM answers
		ORDER BY date, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []models.DayEntry
	for rows.Next() {
		date, answer, err := scanAnswer(rows)
		if err != nil {
			return nil, err
		}
		if n := len(entries); n > 0 && entries[n-1].Date == date {
			entries[n-1].Answers = append(entries[n-1].Answers, answer)
			continue
		}
		entries = append(entries, models.NewDayEntry(date, answer))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	return entries, nil
}

func (s *Store) GetEntryForDate(date string) (models.DayEntry, bool, error) {
	if s.db == nil {
		return models.DayEntry{}, false, apperrors.ErrNotLoaded
	}

	rows, err := s.db.Query(`
		SELECT date, question_id, value_json, timestamp
		FROM answers
		WHERE date = ?
		ORDER BY position`, date)
	if err != nil {
		return models.DayEntry{}, false, fmt.Errorf("failed to query entry for %s: %w", date, err)
	}
	defer rows.Close()

	entry := models.DayEntry{Date: date}
	for rows.Next() {
		_, answer, err := scanAnswer(rows)
		if err != nil {
			return models.DayEntry{}, false, err
		}
		entry.Answers = append(entry.Answers, answer)
	}
	if err := rows.Err(); err != nil {
		return models.DayEntry{}, false, fmt.Errorf("failed to read entry for %s: %w", date, err)
	}
	if !entry.HasAnswers() {
		return models.DayEntry{}, false, nil
	}
	return entry, true, nil
}

func (s *Store) UpsertAnswer(date, questionID string, value models.Value, timestamp time.Time) error {
	if s.db == nil {
		return apperrors.ErrNotLoaded
	}

	valueJSON, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode answer value: %w", err)
	}
	ts := timestamp.UTC().Format(timeLayout)

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO day_entries (date, created_at) VALUES (?, ?)
		ON CONFLICT(date) DO NOTHING`, date, ts); err != nil {
		return fmt.Errorf("failed to create entry for %s: %w", date, err)
	}

	// A replaced answer keeps its position; a new one goes after the others
	if _, err := tx.Exec(`
		INSERT INTO answers (date, question_id, position, value_json, timestamp)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM answers WHERE date = ?), ?, ?)
		ON CONFLICT(date, question_id) DO UPDATE SET
			value_json = excluded.value_json,
			timestamp = excluded.timestamp`,
		date, questionID, date, string(valueJSON), ts); err != nil {
		return fmt.Errorf("failed to upsert answer for %s on %s: %w", questionID, date, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit answer: %w", err)
	}
	logger.Debug("Answer stored", "store", "sqlite", "date", date, "question", questionID)
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAnswer(row scanner) (string, models.Answer, error) {
	var date, valueJSON, ts string
	var answer models.Answer
	if err := row.Scan(&date, &answer.QuestionID, &valueJSON, &ts); err != nil {
		return "", models.Answer{}, fmt.Errorf("failed to scan answer: %w", err)
	}
	if err := json.Unmarshal([]byte(valueJSON), &answer.Value); err != nil {
		return "", models.Answer{}, fmt.Errorf("corrupt answer value for %s on %s: %w", answer.QuestionID, date, err)
	}
	t, err := time.Parse(timeLayout, ts)
	if err != nil {
		return "", models.Answer{}, fmt.Errorf("corrupt answer timestamp for %s on %s: %w", answer.QuestionID, date, err)
	}
	answer.Timestamp = t
	return date, answer, nil
}
