package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/daycheck/internal/constants"
	apperrors "github.com/julianstephens/daycheck/internal/errors"
	"github.com/julianstephens/daycheck/internal/models"
	"github.com/julianstephens/daycheck/internal/storage"
	"github.com/julianstephens/daycheck/internal/validation"
)

var now = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func newManager(t *testing.T) (*Manager, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Init())
	m := NewManager(store,
		WithClock(func() time.Time { return now }),
		WithIDGenerator(func() string { return "0001" }),
	)
	return m, store
}

func activeIDs(t *testing.T, m *Manager) []string {
	t.Helper()
	active, err := m.Active()
	require.NoError(t, err)
	ids := []string{}
	for _, a := range active {
		ids = append(ids, a.Question.ID)
	}
	return ids
}

func TestActivateAndDeactivate(t *testing.T) {
	m, store := newManager(t)

	require.NoError(t, m.Activate("pre-1"))
	require.NoError(t, m.Activate("pre-16"))
	require.NoError(t, m.Activate("pre-1"), "activating twice is a no-op")
	assert.Equal(t, []string{"pre-1", "pre-16"}, activeIDs(t, m))

	subs, err := store.GetUserQuestions()
	require.NoError(t, err)
	assert.True(t, now.Equal(subs[0].AddedAt))

	active, err := m.IsActive("pre-16")
	require.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, m.Deactivate("pre-1"))
	require.NoError(t, m.Deactivate("pre-1"), "deactivating an inactive question is a no-op")
	assert.Equal(t, []string{"pre-16"}, activeIDs(t, m))
}

func TestActivateUnknownQuestion(t *testing.T) {
	m, _ := newManager(t)
	err := m.Activate("pre-999")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeactivateKeepsHistory(t *testing.T) {
	m, store := newManager(t)
	require.NoError(t, m.Activate("pre-1"))
	require.NoError(t, store.UpsertAnswer("2024-03-10", "pre-1", models.BoolValue(true), now))

	require.NoError(t, m.Deactivate("pre-1"))

	entry, ok, err := store.GetEntryForDate("2024-03-10")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, entry.Answers, 1)
}

func TestActiveSkipsOrphans(t *testing.T) {
	m, store := newManager(t)
	require.NoError(t, store.SetUserQuestions([]models.UserQuestion{
		{QuestionID: "custom-gone"},
		{QuestionID: "pre-2"},
	}))
	assert.Equal(t, []string{"pre-2"}, activeIDs(t, m))
}

func TestChartTypes(t *testing.T) {
	m, store := newManager(t)
	require.NoError(t, m.Activate("pre-16"))

	next, ok, err := m.ToggleChartType("pre-16")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, constants.ChartPie, next)

	next, _, err = m.ToggleChartType("pre-16")
	require.NoError(t, err)
	assert.Equal(t, constants.ChartLine, next)

	require.NoError(t, m.SetChartType("pre-16", constants.ChartPie))
	active, err := m.Active()
	require.NoError(t, err)
	assert.Equal(t, constants.ChartPie, active[0].ChartType())

	assert.True(t, apperrors.IsValidation(m.SetChartType("pre-16", "bar")))

	_, ok, err = m.ToggleChartType("pre-1")
	require.NoError(t, err)
	assert.False(t, ok, "unsubscribed questions are left alone")
	require.NoError(t, m.SetChartType("pre-1", constants.ChartPie))
	subs, err := store.GetUserQuestions()
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestToggleFreeTextRejected(t *testing.T) {
	m, _ := newManager(t)
	require.NoError(t, m.Activate("pre-19"))

	_, _, err := m.ToggleChartType("pre-19")
	assert.True(t, apperrors.IsValidation(err))
}

func TestAddCustom(t *testing.T) {
	m, store := newManager(t)

	q, err := m.AddCustom(NewQuestion{
		Text:     "  How much coffee?  ",
		Type:     constants.QuestionScale,
		Category: "Nutrition",
		Emoji:    "☕",
	}, true)
	require.NoError(t, err)

	assert.Equal(t, "custom-0001", q.ID)
	assert.Equal(t, "How much coffee?", q.Text)
	assert.True(t, q.IsCustom)
	assert.Equal(t, 1, q.ScaleMin)
	assert.Equal(t, 10, q.ScaleMax)

	custom, err := store.GetCustomQuestions()
	require.NoError(t, err)
	assert.Equal(t, []models.Question{q}, custom)
	assert.Equal(t, []string{"custom-0001"}, activeIDs(t, m))

	resolved, err := m.Resolve("custom-0001")
	require.NoError(t, err)
	assert.Equal(t, q, resolved)
}

func TestAddCustomValidation(t *testing.T) {
	tests := []struct {
		name string
		in   NewQuestion
	}{
		{"blank text", NewQuestion{Text: " ", Type: constants.QuestionYesNo, Category: "Social"}},
		{"bad type", NewQuestion{Text: "x", Type: "slider", Category: "Social"}},
		{"bad category", NewQuestion{Text: "x", Type: constants.QuestionYesNo, Category: "Hobbies"}},
		{"inverted scale", NewQuestion{Text: "x", Type: constants.QuestionScale, Category: "Social", ScaleMin: 9, ScaleMax: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, store := newManager(t)
			_, err := m.AddCustom(tt.in, true)
			assert.True(t, apperrors.IsValidation(err))

			custom, err := store.GetCustomQuestions()
			require.NoError(t, err)
			assert.Empty(t, custom)
		})
	}
}

func TestAddCustomKeepsZeroMaximum(t *testing.T) {
	m, store := newManager(t)

	q, err := m.AddCustom(NewQuestion{
		Text:     "How low did you feel?",
		Type:     constants.QuestionScale,
		Category: "Mental Health",
		ScaleMin: -5,
		ScaleMax: 0,
	}, false)
	require.NoError(t, err)

	custom, err := store.GetCustomQuestions()
	require.NoError(t, err)
	require.Len(t, custom, 1)
	lo, hi := custom[0].Bounds()
	assert.Equal(t, -5, lo)
	assert.Equal(t, 0, hi)

	_, err = validation.ValidateAnswer(q, 7)
	assert.True(t, apperrors.IsValidation(err))
	_, err = validation.ValidateAnswer(q, -3)
	assert.NoError(t, err)
}

func TestAddCustomIgnoresScaleBoundsForOtherTypes(t *testing.T) {
	m, _ := newManager(t)
	q, err := m.AddCustom(NewQuestion{Text: "Any wins?", Type: constants.QuestionFreeText, Category: "Self-care", ScaleMin: 3, ScaleMax: 1}, false)
	require.NoError(t, err)
	assert.Zero(t, q.ScaleMin)
	assert.Zero(t, q.ScaleMax)
	assert.Empty(t, activeIDs(t, m))
}

func TestDefaultIDsAreUUIDs(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Init())
	m := NewManager(store)

	q, err := m.AddCustom(NewQuestion{Text: "Walked the dog?", Type: constants.QuestionYesNo, Category: "Fitness"}, false)
	require.NoError(t, err)
	assert.Regexp(t, `^custom-[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, q.ID)
}
