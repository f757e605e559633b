package storage

import (
	"sort"
	"time"

	"github.com/julianstephens/daycheck/internal/constants"
	"github.com/julianstephens/daycheck/internal/models"
)

// DocumentVersion is the layout version written to JSON documents
const DocumentVersion = 1

// Document is the whole repository state held in memory or in one JSON file
type Document struct {
	Version         int                        `json:"version"`
	Entries         map[string]models.DayEntry `json:"entries"`
	UserQuestions   []models.UserQuestion      `json:"user_questions"`
	CustomQuestions []models.Question          `json:"custom_questions"`
}

// NewDocument returns an empty document at the current version
func NewDocument() *Document {
	return &Document{
		Version:         DocumentVersion,
		Entries:         make(map[string]models.DayEntry),
		UserQuestions:   []models.UserQuestion{},
		CustomQuestions: []models.Question{},
	}
}

func (d *Document) normalize() {
	if d.Version == 0 {
		d.Version = DocumentVersion
	}
	if d.Entries == nil {
		d.Entries = make(map[string]models.DayEntry)
	}
	if d.UserQuestions == nil {
		d.UserQuestions = []models.UserQuestion{}
	}
	if d.CustomQuestions == nil {
		d.CustomQuestions = []models.Question{}
	}
}

func (d *Document) allEntries() []models.DayEntry {
	entries := make([]models.DayEntry, 0, len(d.Entries))
	for _, e := range d.Entries {
		entries = append(entries, e.Clone())
	}
	// YYYY-MM-DD keys sort chronologically
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
	return entries
}

func (d *Document) entryForDate(date string) (models.DayEntry, bool) {
	e, ok := d.Entries[date]
	if !ok {
		return models.DayEntry{}, false
	}
	return e.Clone(), true
}

func (d *Document) upsertAnswer(date, questionID string, value models.Value, timestamp time.Time) {
	answer := models.Answer{QuestionID: questionID, Value: value, Timestamp: timestamp}
	e, ok := d.Entries[date]
	if !ok {
		d.Entries[date] = models.NewDayEntry(date, answer)
		return
	}
	e = e.Clone()
	e.Upsert(answer)
	d.Entries[date] = e
}

func (d *Document) userQuestions() []models.UserQuestion {
	out := make([]models.UserQuestion, len(d.UserQuestions))
	copy(out, d.UserQuestions)
	return out
}

func (d *Document) setUserQuestions(list []models.UserQuestion) {
	d.UserQuestions = models.UniqueUserQuestions(list)
}

func (d *Document) updateChartType(questionID string, chartType constants.ChartType) bool {
	for i := range d.UserQuestions {
		if d.UserQuestions[i].QuestionID == questionID {
			d.UserQuestions[i].ChartType = chartType
			return true
		}
	}
	return false
}

func (d *Document) customQuestions() []models.Question {
	out := make([]models.Question, len(d.CustomQuestions))
	copy(out, d.CustomQuestions)
	return out
}

func (d *Document) addCustomQuestion(q models.Question) {
	for i := range d.CustomQuestions {
		if d.CustomQuestions[i].ID == q.ID {
			d.CustomQuestions[i] = q
			return
		}
	}
	d.CustomQuestions = append(d.CustomQuestions, q)
}

func (d *Document) clone() *Document {
	c := &Document{
		Version:         d.Version,
		Entries:         make(map[string]models.DayEntry, len(d.Entries)),
		UserQuestions:   d.userQuestions(),
		CustomQuestions: d.customQuestions(),
	}
	for k, e := range d.Entries {
		c.Entries[k] = e.Clone()
	}
	return c
}
