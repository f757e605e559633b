package sqlite

import (
	"fmt"
	"time"

	"github.com/julianstephens/daycheck/internal/constants"
	apperrors "github.com/julianstephens/daycheck/internal/errors"
	"github.com/julianstephens/daycheck/internal/models"
)

func (s *Store) GetUserQuestions() ([]models.UserQuestion, error) {
	if s.db == nil {
		return nil, apperrors.ErrNotLoaded
	}

	rows, err := s.db.Query("SELECT question_id, added_at, chart_type FROM user_questions ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query user questions: %w", err)
	}
	defer rows.Close()

	list := []models.UserQuestion{}
	for rows.Next() {
		var uq models.UserQuestion
		var addedAt, chartType string
		if err := rows.Scan(&uq.QuestionID, &addedAt, &chartType); err != nil {
			return nil, fmt.Errorf("failed to scan user question: %w", err)
		}
		t, err := time.Parse(timeLayout, addedAt)
		if err != nil {
			return nil, fmt.Errorf("corrupt added_at for %s: %w", uq.QuestionID, err)
		}
		uq.AddedAt = t
		uq.ChartType = constants.ChartType(chartType)
		list = append(list, uq)
	}
	return list, rows.Err()
}

func (s *Store) SetUserQuestions(list []models.UserQuestion) error {
	if s.db == nil {
		return apperrors.ErrNotLoaded
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM user_questions"); err != nil {
		return fmt.Errorf("failed to clear user questions: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO user_questions (question_id, position, added_at, chart_type) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, uq := range models.UniqueUserQuestions(list) {
		if _, err := stmt.Exec(uq.QuestionID, i, uq.AddedAt.UTC().Format(timeLayout), string(uq.ChartType)); err != nil {
			return fmt.Errorf("failed to save user question %s: %w", uq.QuestionID, err)
		}
	}

	return tx.Commit()
}

func (s *Store) UpdateQuestionChartType(questionID string, chartType constants.ChartType) error {
	if s.db == nil {
		return apperrors.ErrNotLoaded
	}
	if _, err := s.db.Exec("UPDATE user_questions SET chart_type = ? WHERE question_id = ?", string(chartType), questionID); err != nil {
		return fmt.Errorf("failed to update chart type for %s: %w", questionID, err)
	}
	return nil
}

func (s *Store) GetCustomQuestions() ([]models.Question, error) {
	if s.db == nil {
		return nil, apperrors.ErrNotLoaded
	}

	rows, err := s.db.Query(`
		SELECT id, text, type, category, emoji, scale_min, scale_max
		FROM custom_questions
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom questions: %w", err)
	}
	defer rows.Close()

	list := []models.Question{}
	for rows.Next() {
		var q models.Question
		var qType string
		if err := rows.Scan(&q.ID, &q.Text, &qType, &q.Category, &q.Emoji, &q.ScaleMin, &q.ScaleMax); err != nil {
			return nil, fmt.Errorf("failed to scan custom question: %w", err)
		}
		q.Type = constants.QuestionType(qType)
		q.IsCustom = true
		list = append(list, q)
	}
	return list, rows.Err()
}

func (s *Store) AddCustomQuestion(q models.Question) error {
	if s.db == nil {
		return apperrors.ErrNotLoaded
	}

	_, err := s.db.Exec(`
		INSERT INTO custom_questions (id, position, text, type, category, emoji, scale_min, scale_max)
		VALUES (?, (SELECT COALESCE(MAX(position), -1) + 1 FROM custom_questions), ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			type = excluded.type,
			category = excluded.category,
			emoji = excluded.emoji,
			scale_min = excluded.scale_min,
			scale_max = excluded.scale_max`,
		q.ID, q.Text, string(q.Type), q.Category, q.Emoji, q.ScaleMin, q.ScaleMax)
	if err != nil {
		return fmt.Errorf("failed to save custom question %s: %w", q.ID, err)
	}
	return nil
}
