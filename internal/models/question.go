package models

import "github.com/julianstephens/daycheck/internal/constants"

// Question is a predefined or user-authored check-in prompt
type Question struct {
	ID       string                 `json:"id"`
	Text     string                 `json:"text"`
	Type     constants.QuestionType `json:"type"`
	Category string                 `json:"category"`
	Emoji    string                 `json:"emoji,omitempty"`
	ScaleMin int                    `json:"scale_min,omitempty"`
	ScaleMax int                    `json:"scale_max,omitempty"`
	IsCustom bool                   `json:"is_custom,omitempty"`
}

// Bounds returns the inclusive range accepted by a scale question,
// substituting the 1..10 default only when both bounds are unset. A zero
// maximum on its own is a real bound.
func (q Question) Bounds() (int, int) {
	if q.ScaleMin == 0 && q.ScaleMax == 0 {
		return constants.DefaultScaleMin, constants.DefaultScaleMax
	}
	return q.ScaleMin, q.ScaleMax
}

// Icon returns the question's emoji or a generic fallback
func (q Question) Icon() string {
	if q.Emoji == "" {
		return "📝"
	}
	return q.Emoji
}

// SupportsChartToggle reports whether the question can switch between line and pie charts
func (q Question) SupportsChartToggle() bool {
	return q.Type != constants.QuestionFreeText
}
