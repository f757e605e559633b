package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/gookit/validate"

	"github.com/julianstephens/daycheck/internal/constants"
	apperrors "github.com/julianstephens/daycheck/internal/errors"
	"github.com/julianstephens/daycheck/internal/models"
	"github.com/julianstephens/daycheck/internal/utils"
)

// ValidateAnswer checks a raw widget value against the question's type and
// bounds and converts it to a stored Value. Empty free text is accepted.
func ValidateAnswer(q models.Question, raw interface{}) (models.Value, error) {
	switch q.Type {
	case constants.QuestionYesNo:
		b, ok := raw.(bool)
		if !ok {
			return models.Value{}, apperrors.NewValidationError(q.ID, "expected yes/no (boolean), got %T", raw)
		}
		return models.BoolValue(b), nil

	case constants.QuestionScale:
		n, ok := asInt(raw)
		if !ok {
			return models.Value{}, apperrors.NewValidationError(q.ID, "expected a whole number, got %v", raw)
		}
		lo, hi := q.Bounds()
		if n < lo || n > hi {
			return models.Value{}, apperrors.NewValidationError(q.ID, "value %d outside %d..%d", n, lo, hi)
		}
		return models.IntValue(n), nil

	case constants.QuestionFreeText:
		s, ok := raw.(string)
		if !ok {
			return models.Value{}, apperrors.NewValidationError(q.ID, "expected text, got %T", raw)
		}
		return models.TextValue(s), nil

	default:
		return models.Value{}, apperrors.NewValidationError(q.ID, "unknown question type %q", q.Type)
	}
}

func asInt(raw interface{}) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	case models.Value:
		return v.Int()
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// ValueMatches reports whether a stored value has the shape the question expects
func ValueMatches(q models.Question, v models.Value) bool {
	switch q.Type {
	case constants.QuestionYesNo:
		return v.Kind() == models.KindBool
	case constants.QuestionScale:
		n, ok := v.Int()
		if !ok {
			return false
		}
		lo, hi := q.Bounds()
		return n >= lo && n <= hi
	case constants.QuestionFreeText:
		return v.Kind() == models.KindText
	default:
		return false
	}
}

// questionRules mirrors the user-editable fields of a question for struct validation
type questionRules struct {
	ID       string `validate:"required"`
	Text     string `validate:"required|maxLen:200"`
	Type     string `validate:"required|in:yesno,scale,freetext"`
	Category string `validate:"required"`
}

var questionFields = []struct {
	name  string
	label string
}{
	{"ID", "id"},
	{"Text", "text"},
	{"Type", "type"},
	{"Category", "category"},
}

// ValidateQuestion checks a custom question definition before it is stored
func ValidateQuestion(q models.Question) error {
	rules := questionRules{
		ID:       strings.TrimSpace(q.ID),
		Text:     strings.TrimSpace(q.Text),
		Type:     string(q.Type),
		Category: strings.TrimSpace(q.Category),
	}

	v := validate.Struct(&rules)
	if !v.Validate() {
		for _, f := range questionFields {
			if msg := v.Errors.FieldOne(f.name); msg != "" {
				return &apperrors.ValidationError{QuestionID: q.ID, Field: f.label, Reason: msg}
			}
		}
		return &apperrors.ValidationError{QuestionID: q.ID, Reason: v.Errors.One()}
	}

	if !constants.IsCategory(rules.Category) {
		return &apperrors.ValidationError{
			QuestionID: q.ID,
			Field:      "category",
			Reason:     fmt.Sprintf("%q is not one of %s", q.Category, strings.Join(constants.Categories, ", ")),
		}
	}

	if q.Type == constants.QuestionScale {
		lo, hi := q.Bounds()
		if lo >= hi {
			return &apperrors.ValidationError{
				QuestionID: q.ID,
				Field:      "scale",
				Reason:     fmt.Sprintf("minimum %d must be below maximum %d", lo, hi),
			}
		}
	}

	return nil
}

// IssueType represents the kind of problem found in stored check-in data
type IssueType string

const (
	IssueInvalidDate       IssueType = "invalid_date"
	IssueDuplicateDate     IssueType = "duplicate_date"
	IssueDuplicateAnswer   IssueType = "duplicate_answer"
	IssueValueMismatch     IssueType = "value_mismatch"
	IssueOrphanedReference IssueType = "orphaned_reference"
	IssueEmptyEntry        IssueType = "empty_entry"
)

// Issue is one problem found in stored data
type Issue struct {
	Type        IssueType
	Description string
	Date        string
	QuestionID  string
}

// Blocking reports whether the issue breaks a repository invariant, as
// opposed to a tolerated condition like a dangling question reference.
func (i Issue) Blocking() bool {
	switch i.Type {
	case IssueOrphanedReference, IssueEmptyEntry:
		return false
	default:
		return true
	}
}

// ValidationResult contains all detected issues
type ValidationResult struct {
	Issues []Issue
}

// HasIssues returns true if there are any issues
func (vr *ValidationResult) HasIssues() bool {
	return len(vr.Issues) > 0
}

// HasBlockingIssues returns true if any issue breaks an invariant
func (vr *ValidationResult) HasBlockingIssues() bool {
	for _, i := range vr.Issues {
		if i.Blocking() {
			return true
		}
	}
	return false
}

// FormatReport returns a human-readable report of all issues
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasIssues() {
		return "No issues detected."
	}

	var b strings.Builder
	b.WriteString("Issues detected:\n")
	for _, issue := range vr.Issues {
		fmt.Fprintf(&b, "- %s\n", issue.Description)
	}
	return b.String()
}

// Resolver looks up question definitions by id
type Resolver interface {
	Resolve(id string) (models.Question, bool)
}

// ValidateEntries checks stored entries for broken invariants: malformed or
// repeated date keys, more than one answer per question per day, and values
// that do not fit their question. Answers to unknown questions are reported
// as non-blocking orphaned references.
func ValidateEntries(entries []models.DayEntry, questions Resolver) ValidationResult {
	var result ValidationResult
	seenDates := make(map[string]bool, len(entries))
	orphans := make(map[string]bool)

	for _, entry := range entries {
		if _, err := utils.ParseDay(entry.Date); err != nil {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueInvalidDate,
				Description: fmt.Sprintf("entry has malformed date key %q", entry.Date),
				Date:        entry.Date,
			})
		}
		if seenDates[entry.Date] {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueDuplicateDate,
				Description: fmt.Sprintf("more than one entry for %s", entry.Date),
				Date:        entry.Date,
			})
		}
		seenDates[entry.Date] = true

		if !entry.HasAnswers() {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueEmptyEntry,
				Description: fmt.Sprintf("entry for %s has no answers", entry.Date),
				Date:        entry.Date,
			})
		}

		seenQuestions := make(map[string]bool, len(entry.Answers))
		for _, answer := range entry.Answers {
			if seenQuestions[answer.QuestionID] {
				result.Issues = append(result.Issues, Issue{
					Type:        IssueDuplicateAnswer,
					Description: fmt.Sprintf("question %s answered more than once on %s", answer.QuestionID, entry.Date),
					Date:        entry.Date,
					QuestionID:  answer.QuestionID,
				})
			}
			seenQuestions[answer.QuestionID] = true

			q, ok := questions.Resolve(answer.QuestionID)
			if !ok {
				if !orphans[answer.QuestionID] {
					orphans[answer.QuestionID] = true
					result.Issues = append(result.Issues, Issue{
						Type:        IssueOrphanedReference,
						Description: fmt.Sprintf("answers reference unknown question %s", answer.QuestionID),
						QuestionID:  answer.QuestionID,
					})
				}
				continue
			}
			if !ValueMatches(q, answer.Value) {
				result.Issues = append(result.Issues, Issue{
					Type:        IssueValueMismatch,
					Description: fmt.Sprintf("answer %q on %s does not fit %s question %s", answer.Value.String(), entry.Date, q.Type, q.ID),
					Date:        entry.Date,
					QuestionID:  answer.QuestionID,
				})
			}
		}
	}

	return result
}
