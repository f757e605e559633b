// Package forms holds the huh forms shared by the check-in command and the TUI.
package forms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daycheck/internal/checkin"
	"github.com/julianstephens/daycheck/internal/constants"
	"github.com/julianstephens/daycheck/internal/models"
)

// skip is the choice value meaning "leave this question unanswered"
const skip = ""

// AnswerForm collects one optional answer per question. Every field holds
// text in the form checkin.ParseInput accepts.
type AnswerForm struct {
	questions []models.Question
	inputs    map[string]*string
	// keepEmpty marks free-text questions whose blank input is saved as an
	// empty answer instead of being skipped
	keepEmpty map[string]*bool
}

// NewAnswerForm prepares inputs for questions, pre-filled from current
// (today's answers keyed by question id).
func NewAnswerForm(questions []models.Question, current map[string]models.Value) *AnswerForm {
	f := &AnswerForm{
		questions: questions,
		inputs:    make(map[string]*string, len(questions)),
		keepEmpty: make(map[string]*bool),
	}
	for _, q := range questions {
		input := skip
		v, answered := current[q.ID]
		if answered {
			input = initialInput(v)
		}
		f.inputs[q.ID] = &input
		if q.Type == constants.QuestionFreeText {
			keep := answered && v.Kind() == models.KindText
			f.keepEmpty[q.ID] = &keep
		}
	}
	return f
}

func initialInput(v models.Value) string {
	switch v.Kind() {
	case models.KindBool:
		b, _ := v.Bool()
		if b {
			return "yes"
		}
		return "no"
	case models.KindInt:
		n, _ := v.Int()
		return strconv.Itoa(n)
	case models.KindText:
		s, _ := v.Text()
		return s
	}
	return skip
}

// Set overrides the pending input for a question
func (f *AnswerForm) Set(questionID, input string) {
	if p, ok := f.inputs[questionID]; ok {
		*p = input
	}
}

// KeepEmpty sets whether a blank free-text input is saved as an empty answer
func (f *AnswerForm) KeepEmpty(questionID string, keep bool) {
	if p, ok := f.keepEmpty[questionID]; ok {
		*p = keep
	}
}

// Field builds the widget for one question
func (f *AnswerForm) Field(q models.Question) huh.Field {
	title := fmt.Sprintf("%s %s", q.Icon(), q.Text)
	value := f.inputs[q.ID]

	switch q.Type {
	case constants.QuestionYesNo:
		return huh.NewSelect[string]().
			Title(title).
			Options(
				huh.NewOption("Yes", "yes"),
				huh.NewOption("No", "no"),
				huh.NewOption("Skip", skip),
			).
			Value(value)

	case constants.QuestionScale:
		lo, hi := q.Bounds()
		opts := make([]huh.Option[string], 0, hi-lo+2)
		for n := lo; n <= hi; n++ {
			s := strconv.Itoa(n)
			opts = append(opts, huh.NewOption(s, s))
		}
		opts = append(opts, huh.NewOption("Skip", skip))
		return huh.NewSelect[string]().
			Title(title).
			Description(fmt.Sprintf("%d to %d", lo, hi)).
			Options(opts...).
			Value(value)

	default:
		return huh.NewText().
			Title(title).
			Description("Leave empty to skip unless saving an empty answer").
			CharLimit(1000).
			Value(value)
	}
}

// Form lays the questions out one per page
func (f *AnswerForm) Form() *huh.Form {
	groups := make([]*huh.Group, 0, len(f.questions))
	for _, q := range f.questions {
		fields := []huh.Field{f.Field(q)}
		if keep, ok := f.keepEmpty[q.ID]; ok {
			fields = append(fields, huh.NewConfirm().
				Title("If left empty").
				Affirmative("Save empty answer").
				Negative("Skip").
				Value(keep))
		}
		groups = append(groups, huh.NewGroup(fields...))
	}
	return huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
}

// Pending is one answer ready to submit
type Pending struct {
	Question models.Question
	Raw      interface{}
}

// Answers parses the filled inputs in question order. Skipped questions
// are left out, as is blank free text not marked to keep.
func (f *AnswerForm) Answers() ([]Pending, error) {
	out := make([]Pending, 0, len(f.questions))
	for _, q := range f.questions {
		input := *f.inputs[q.ID]
		if strings.TrimSpace(input) == skip {
			keep, ok := f.keepEmpty[q.ID]
			if !ok || !*keep {
				continue
			}
			input = ""
		}
		raw, err := checkin.ParseInput(q, input)
		if err != nil {
			return nil, err
		}
		out = append(out, Pending{Question: q, Raw: raw})
	}
	return out, nil
}
