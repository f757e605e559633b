package postgres

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	apperrors "github.com/julianstephens/daycheck/internal/errors"
	"github.com/julianstephens/daycheck/internal/logger"
	"github.com/julianstephens/daycheck/internal/models"
)

const answerColumns = "date, question_id, value_json, timestamp"

func (s *Store) GetAllEntries() ([]models.DayEntry, error) {
	if s.db == nil {
		return nil, apperrors.ErrNotLoaded
	}

	rows, err := s.db.Query("SELECT " + answerColumns + " FROM answers ORDER BY date, position")
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []models.DayEntry
	for rows.Next() {
		var date, valueJSON string
		var answer models.Answer
		if err := rows.Scan(&date, &answer.QuestionID, &valueJSON, &answer.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		if err := json.Unmarshal([]byte(valueJSON), &answer.Value); err != nil {
			return nil, fmt.Errorf("corrupt answer value for %s on %s: %w", answer.QuestionID, date, err)
		}
		if n := len(entries); n > 0 && entries[n-1].Date == date {
			entries[n-1].Answers = append(entries[n-1].Answers, answer)
			continue
		}
		entries = append(entries, models.NewDayEntry(date, answer))
	}
	return entries, rows.Err()
}

func (s *Store) GetEntryForDate(date string) (models.DayEntry, bool, error) {
	if s.db == nil {
		return models.DayEntry{}, false, apperrors.ErrNotLoaded
	}

	rows, err := s.db.Query("SELECT "+answerColumns+" FROM answers WHERE date = $1 ORDER BY position", date)
	if err != nil {
		return models.DayEntry{}, false, fmt.Errorf("failed to query entry for %s: %w", date, err)
	}
	defer rows.Close()

	entry := models.DayEntry{Date: date}
	for rows.Next() {
		var d, valueJSON string
		var answer models.Answer
		if err := rows.Scan(&d, &answer.QuestionID, &valueJSON, &answer.Timestamp); err != nil {
			return models.DayEntry{}, false, fmt.Errorf("failed to scan answer: %w", err)
		}
		if err := json.Unmarshal([]byte(valueJSON), &answer.Value); err != nil {
			return models.DayEntry{}, false, fmt.Errorf("corrupt answer value for %s on %s: %w", answer.QuestionID, date, err)
		}
		entry.Answers = append(entry.Answers, answer)
	}
	if err := rows.Err(); err != nil {
		return models.DayEntry{}, false, err
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

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO day_entries (date, created_at) VALUES ($1, $2)
		ON CONFLICT (date) DO NOTHING`, date, timestamp); err != nil {
		return fmt.Errorf("failed to create entry for %s: %w", date, err)
	}

	// Lock the day's row so concurrent writers agree on the next position
	if _, err := tx.Exec("SELECT date FROM day_entries WHERE date = $1 FOR UPDATE", date); err != nil {
		return fmt.Errorf("failed to lock entry for %s: %w", date, err)
	}

	if _, err := tx.Exec(`
		INSERT INTO answers (date, question_id, position, value_json, timestamp)
		VALUES ($1, $2, (SELECT COALESCE(MAX(position), -1) + 1 FROM answers WHERE date = $1), $3, $4)
		ON CONFLICT (date, question_id) DO UPDATE SET
			value_json = EXCLUDED.value_json,
			timestamp = EXCLUDED.timestamp`,
		date, questionID, string(valueJSON), timestamp); err != nil {
		return fmt.Errorf("failed to upsert answer for %s on %s: %w", questionID, date, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit answer: %w", err)
	}
	logger.Debug("Answer stored", "store", "postgres", "date", date, "question", questionID)
	return nil
}
