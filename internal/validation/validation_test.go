package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/daycheck/internal/constants"
	apperrors "github.com/julianstephens/daycheck/internal/errors"
	"github.com/julianstephens/daycheck/internal/models"
)

var (
	yesNo    = models.Question{ID: "pre-1", Text: "Did you exercise?", Type: constants.QuestionYesNo, Category: "Fitness"}
	scale    = models.Question{ID: "pre-2", Text: "Energy level", Type: constants.QuestionScale, Category: "Health", ScaleMin: 1, ScaleMax: 10}
	negative = models.Question{ID: "custom-n", Text: "Mood swing", Type: constants.QuestionScale, Category: "Mental Health", ScaleMin: -5, ScaleMax: 0}
	freeText = models.Question{ID: "pre-3", Text: "What went well?", Type: constants.QuestionFreeText, Category: "Mental Health"}
)

type mapResolver map[string]models.Question

func (m mapResolver) Resolve(id string) (models.Question, bool) {
	q, ok := m[id]
	return q, ok
}

func TestValidateAnswer(t *testing.T) {
	tests := []struct {
		name    string
		q       models.Question
		raw     interface{}
		want    models.Value
		wantErr bool
	}{
		{"yes", yesNo, true, models.BoolValue(true), false},
		{"no", yesNo, false, models.BoolValue(false), false},
		{"yesno rejects string", yesNo, "yes", models.Value{}, true},
		{"yesno rejects number", yesNo, 1, models.Value{}, true},
		{"scale lower bound", scale, 1, models.IntValue(1), false},
		{"scale upper bound", scale, 10, models.IntValue(10), false},
		{"scale integral float", scale, 7.0, models.IntValue(7), false},
		{"scale above range", scale, 11, models.Value{}, true},
		{"scale below range", scale, 0, models.Value{}, true},
		{"scale fractional", scale, 7.5, models.Value{}, true},
		{"scale rejects bool", scale, true, models.Value{}, true},
		{"negative scale lower bound", negative, -5, models.IntValue(-5), false},
		{"negative scale zero maximum", negative, 0, models.IntValue(0), false},
		{"negative scale above zero maximum", negative, 7, models.Value{}, true},
		{"free text", freeText, "walked the dog", models.TextValue("walked the dog"), false},
		{"empty free text", freeText, "", models.TextValue(""), false},
		{"free text rejects number", freeText, 3, models.Value{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateAnswer(tt.q, tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateAnswerDefaultBounds(t *testing.T) {
	q := models.Question{ID: "c", Type: constants.QuestionScale}

	_, err := ValidateAnswer(q, 10)
	assert.NoError(t, err)
	_, err = ValidateAnswer(q, 11)
	assert.Error(t, err)
}

func TestValidateAnswerErrorNamesQuestion(t *testing.T) {
	_, err := ValidateAnswer(scale, 11)
	require.Error(t, err)

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "pre-2", verr.QuestionID)
	assert.Contains(t, err.Error(), "1..10")
}

func TestValidateAnswerUnknownType(t *testing.T) {
	_, err := ValidateAnswer(models.Question{ID: "x", Type: "slider"}, 3)
	assert.Error(t, err)
}

func TestValueMatches(t *testing.T) {
	assert.True(t, ValueMatches(yesNo, models.BoolValue(true)))
	assert.False(t, ValueMatches(yesNo, models.IntValue(1)))
	assert.True(t, ValueMatches(scale, models.IntValue(4)))
	assert.False(t, ValueMatches(scale, models.IntValue(42)))
	assert.True(t, ValueMatches(freeText, models.TextValue("")))
	assert.False(t, ValueMatches(freeText, models.BoolValue(false)))
}

func TestValidateQuestion(t *testing.T) {
	valid := models.Question{
		ID:       "custom-1",
		Text:     "Did you call a friend?",
		Type:     constants.QuestionYesNo,
		Category: "Social",
		IsCustom: true,
	}

	tests := []struct {
		name      string
		mutate    func(q *models.Question)
		wantField string
	}{
		{"valid", func(q *models.Question) {}, ""},
		{"missing id", func(q *models.Question) { q.ID = "" }, "id"},
		{"blank text", func(q *models.Question) { q.Text = "   " }, "text"},
		{"unknown type", func(q *models.Question) { q.Type = "slider" }, "type"},
		{"missing category", func(q *models.Question) { q.Category = "" }, "category"},
		{"unknown category", func(q *models.Question) { q.Category = "Gardening" }, "category"},
		{"category with space", func(q *models.Question) { q.Category = "Mental Health" }, ""},
		{"scale defaults", func(q *models.Question) { q.Type = constants.QuestionScale }, ""},
		{"inverted scale", func(q *models.Question) {
			q.Type = constants.QuestionScale
			q.ScaleMin, q.ScaleMax = 5, 3
		}, "scale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := valid
			tt.mutate(&q)
			err := ValidateQuestion(q)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *apperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidateEntries(t *testing.T) {
	questions := mapResolver{yesNo.ID: yesNo, scale.ID: scale}

	entries := []models.DayEntry{
		{Date: "2024-03-01", Answers: []models.Answer{
			{QuestionID: "pre-1", Value: models.BoolValue(true)},
			{QuestionID: "pre-2", Value: models.IntValue(5)},
		}},
		{Date: "2024-03-02", Answers: []models.Answer{
			{QuestionID: "pre-2", Value: models.IntValue(15)},
			{QuestionID: "gone", Value: models.TextValue("x")},
			{QuestionID: "gone", Value: models.TextValue("y")},
		}},
		{Date: "03/03/2024", Answers: []models.Answer{
			{QuestionID: "pre-1", Value: models.BoolValue(false)},
		}},
		{Date: "2024-03-01"},
	}

	result := ValidateEntries(entries, questions)
	require.True(t, result.HasIssues())
	assert.True(t, result.HasBlockingIssues())

	counts := map[IssueType]int{}
	for _, issue := range result.Issues {
		counts[issue.Type]++
	}
	assert.Equal(t, 1, counts[IssueValueMismatch])
	assert.Equal(t, 1, counts[IssueOrphanedReference])
	assert.Equal(t, 1, counts[IssueDuplicateAnswer])
	assert.Equal(t, 1, counts[IssueInvalidDate])
	assert.Equal(t, 1, counts[IssueDuplicateDate])
	assert.Equal(t, 1, counts[IssueEmptyEntry])
	assert.Contains(t, result.FormatReport(), "unknown question gone")
}

func TestValidateEntriesClean(t *testing.T) {
	questions := mapResolver{yesNo.ID: yesNo}
	entries := []models.DayEntry{
		{Date: "2024-03-01", Answers: []models.Answer{{QuestionID: "pre-1", Value: models.BoolValue(true)}}},
		{Date: "2024-03-02", Answers: []models.Answer{{QuestionID: "stale", Value: models.BoolValue(true)}}},
	}

	result := ValidateEntries(entries, questions)
	assert.True(t, result.HasIssues())
	assert.False(t, result.HasBlockingIssues())

	empty := ValidateEntries(nil, questions)
	assert.Equal(t, "No issues detected.", empty.FormatReport())
}
