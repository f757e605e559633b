package models

import (
	"time"

	"github.com/julianstephens/daycheck/internal/constants"
)

// UserQuestion marks a question as part of the user's active set
type UserQuestion struct {
	QuestionID string              `json:"question_id"`
	AddedAt    time.Time           `json:"added_at"`
	ChartType  constants.ChartType `json:"chart_type,omitempty"`
}

// EffectiveChartType returns the stored chart preference, defaulting to line
func (u UserQuestion) EffectiveChartType() constants.ChartType {
	if u.ChartType == constants.ChartPie {
		return constants.ChartPie
	}
	return constants.ChartLine
}

// ToggledChartType returns the opposite chart preference
func (u UserQuestion) ToggledChartType() constants.ChartType {
	if u.EffectiveChartType() == constants.ChartPie {
		return constants.ChartLine
	}
	return constants.ChartPie
}

// UniqueUserQuestions drops repeated subscriptions, keeping the first
// occurrence of each question id and the original order.
func UniqueUserQuestions(list []UserQuestion) []UserQuestion {
	seen := make(map[string]bool, len(list))
	out := make([]UserQuestion, 0, len(list))
	for _, uq := range list {
		if uq.QuestionID == "" || seen[uq.QuestionID] {
			continue
		}
		seen[uq.QuestionID] = true
		out = append(out, uq)
	}
	return out
}
