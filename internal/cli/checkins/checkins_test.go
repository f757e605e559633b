package checkins

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/daycheck/internal/cli"
	apperrors "github.com/julianstephens/daycheck/internal/errors"
	"github.com/julianstephens/daycheck/internal/storage"
)

var now = time.Date(2026, 10, 14, 21, 15, 0, 0, time.UTC)

func newContext(t *testing.T, active ...string) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Init())

	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Store:    store,
		Location: time.UTC,
		Clock:    func() time.Time { return now },
		Out:      out,
	}
	for _, id := range active {
		require.NoError(t, ctx.Subscriptions().Activate(id))
	}
	return ctx, out
}

func TestAnswerCmd(t *testing.T) {
	ctx, out := newContext(t, "pre-1")

	require.NoError(t, (&AnswerCmd{QuestionID: "pre-1", Value: "yes"}).Run(ctx))
	assert.Contains(t, out.String(), "Did you drink enough water today?: yes (2026-10-14)")
	assert.NotContains(t, out.String(), "not in your active questions")

	entry, ok, err := ctx.Store.GetEntryForDate("2026-10-14")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, entry.Answers, 1)
	b, isBool := entry.Answers[0].Value.Bool()
	assert.True(t, isBool)
	assert.True(t, b)
}

func TestAnswerCmdReplacesTodaysAnswer(t *testing.T) {
	ctx, _ := newContext(t, "pre-2")

	require.NoError(t, (&AnswerCmd{QuestionID: "pre-2", Value: "6"}).Run(ctx))
	require.NoError(t, (&AnswerCmd{QuestionID: "pre-2", Value: "8"}).Run(ctx))

	entry, _, err := ctx.Store.GetEntryForDate("2026-10-14")
	require.NoError(t, err)
	require.Len(t, entry.Answers, 1)
	assert.Equal(t, "8", entry.Answers[0].Value.String())
}

func TestAnswerCmdWarnsForInactiveQuestion(t *testing.T) {
	ctx, out := newContext(t)

	require.NoError(t, (&AnswerCmd{QuestionID: "pre-19", Value: "sunny mornings"}).Run(ctx))
	assert.Contains(t, out.String(), "pre-19 is not in your active questions")
}

func TestAnswerCmdRejectsInvalidValues(t *testing.T) {
	ctx, _ := newContext(t, "pre-1", "pre-2")

	err := (&AnswerCmd{QuestionID: "pre-1", Value: "maybe"}).Run(ctx)
	var verr *apperrors.ValidationError
	assert.ErrorAs(t, err, &verr)

	err = (&AnswerCmd{QuestionID: "pre-2", Value: "11"}).Run(ctx)
	assert.ErrorAs(t, err, &verr)

	err = (&AnswerCmd{QuestionID: "pre-404", Value: "yes"}).Run(ctx)
	assert.True(t, apperrors.IsNotFound(err))

	entries, err := ctx.Store.GetAllEntries()
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected answers are never written")
}

func TestTodayCmd(t *testing.T) {
	ctx, out := newContext(t, "pre-1", "pre-2")
	require.NoError(t, (&AnswerCmd{QuestionID: "pre-2", Value: "7"}).Run(ctx))
	out.Reset()

	require.NoError(t, (&TodayCmd{}).Run(ctx))
	got := out.String()
	assert.Contains(t, got, "○ 💧 Did you drink enough water today?")
	assert.Contains(t, got, "✓ 😴 How many hours did you sleep?: 7")
	assert.Contains(t, got, "1 of 2 answered")
}

func TestTodayCmdNoActiveQuestions(t *testing.T) {
	ctx, out := newContext(t)

	require.NoError(t, (&TodayCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "No active questions.")
}

func TestCheckinCmdNoActiveQuestions(t *testing.T) {
	ctx, out := newContext(t)

	require.NoError(t, (&CheckinCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "No active questions.")
}
