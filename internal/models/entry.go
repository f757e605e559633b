package models

import "time"

// Answer is one response to one question
type Answer struct {
	QuestionID string    `json:"question_id"`
	Value      Value     `json:"value"`
	Timestamp  time.Time `json:"timestamp"`
}

// DayEntry holds every answer recorded for one calendar date
type DayEntry struct {
	Date    string   `json:"date"` // YYYY-MM-DD format
	Answers []Answer `json:"answers"`
}

// NewDayEntry creates the entry for date holding a single answer
func NewDayEntry(date string, answer Answer) DayEntry {
	return DayEntry{Date: date, Answers: []Answer{answer}}
}

// Answer returns the answer recorded for questionID, if any
func (e DayEntry) Answer(questionID string) (Answer, bool) {
	for _, a := range e.Answers {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return Answer{}, false
}

// HasAnswers reports whether at least one answer is recorded for the date
func (e DayEntry) HasAnswers() bool {
	return len(e.Answers) > 0
}

// Upsert replaces the value and timestamp of an existing answer for the same
// question in place, or appends the answer. It reports whether an existing
// answer was replaced.
func (e *DayEntry) Upsert(answer Answer) bool {
	for i := range e.Answers {
		if e.Answers[i].QuestionID == answer.QuestionID {
			e.Answers[i].Value = answer.Value
			e.Answers[i].Timestamp = answer.Timestamp
			return true
		}
	}
	e.Answers = append(e.Answers, answer)
	return false
}

// Clone returns a deep copy so callers can't mutate repository state through it
func (e DayEntry) Clone() DayEntry {
	answers := make([]Answer, len(e.Answers))
	copy(answers, e.Answers)
	return DayEntry{Date: e.Date, Answers: answers}
}
