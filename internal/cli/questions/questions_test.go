package questions

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/daycheck/internal/cli"
	"github.com/julianstephens/daycheck/internal/constants"
	apperrors "github.com/julianstephens/daycheck/internal/errors"
	"github.com/julianstephens/daycheck/internal/models"
	"github.com/julianstephens/daycheck/internal/storage"
)

var now = time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)

func newContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Init())

	out := &bytes.Buffer{}
	return &cli.Context{
		Store:    store,
		Location: time.UTC,
		Clock:    func() time.Time { return now },
		Out:      out,
	}, out
}

func subscriptionIDs(t *testing.T, ctx *cli.Context) []string {
	t.Helper()
	subs, err := ctx.Store.GetUserQuestions()
	require.NoError(t, err)
	ids := []string{}
	for _, s := range subs {
		ids = append(ids, s.QuestionID)
	}
	return ids
}

func TestAddAndList(t *testing.T) {
	ctx, out := newContext(t)

	require.NoError(t, (&AddCmd{IDs: []string{"pre-2", "pre-1", "pre-19"}}).Run(ctx))
	assert.Contains(t, out.String(), "✓ Activated 😴 How many hours did you sleep?")
	assert.Equal(t, []string{"pre-2", "pre-1", "pre-19"}, subscriptionIDs(t, ctx))

	out.Reset()
	require.NoError(t, (&ListCmd{}).Run(ctx))
	got := out.String()
	assert.Contains(t, got, "Active questions (3):")
	assert.Contains(t, got, "(scale 1-10, line chart)")
	assert.Contains(t, got, "(yes/no, line chart)")
	assert.Contains(t, got, "(free text)")
	assert.Less(t, strings.Index(got, "pre-2"), strings.Index(got, "pre-1 "), "list keeps subscription order")
}

func TestAddUnknownQuestion(t *testing.T) {
	ctx, _ := newContext(t)

	err := (&AddCmd{IDs: []string{"pre-1", "nope"}}).Run(ctx)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, []string{"pre-1"}, subscriptionIDs(t, ctx))
}

func TestListEmpty(t *testing.T) {
	ctx, out := newContext(t)

	require.NoError(t, (&ListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "No active questions.")
}

func TestRemoveKeepsHistory(t *testing.T) {
	ctx, out := newContext(t)
	require.NoError(t, (&AddCmd{IDs: []string{"pre-1"}}).Run(ctx))
	require.NoError(t, ctx.Store.UpsertAnswer("2026-10-14", "pre-1", models.BoolValue(true), now))

	require.NoError(t, (&RemoveCmd{IDs: []string{"pre-1"}}).Run(ctx))
	assert.Contains(t, out.String(), "Deactivated pre-1 (history is kept)")
	assert.Empty(t, subscriptionIDs(t, ctx))

	entry, ok, err := ctx.Store.GetEntryForDate("2026-10-14")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, entry.Answers, 1)
}

func TestCatalog(t *testing.T) {
	ctx, out := newContext(t)
	require.NoError(t, (&AddCmd{IDs: []string{"pre-6"}}).Run(ctx))
	out.Reset()

	require.NoError(t, (&CatalogCmd{Category: "fitness"}).Run(ctx))
	got := out.String()
	assert.True(t, strings.HasPrefix(got, "Fitness\n"))
	assert.Contains(t, got, "✓ pre-6")
	assert.NotContains(t, got, "pre-1 ")

	out.Reset()
	require.NoError(t, (&CatalogCmd{}).Run(ctx))
	for _, c := range constants.Categories {
		assert.Contains(t, out.String(), c+"\n")
	}

	assert.Error(t, (&CatalogCmd{Category: "Astrology"}).Run(ctx))
}

func TestCatalogListsCustomQuestions(t *testing.T) {
	ctx, out := newContext(t)
	require.NoError(t, (&CustomCmd{Text: "Did you water the plants?", Type: "yesno", Category: "Finances", Min: 1, Max: 10, Inactive: true}).Run(ctx))
	out.Reset()

	require.NoError(t, (&CatalogCmd{Category: "Finances"}).Run(ctx))
	assert.Contains(t, out.String(), "Did you water the plants?")
}

func TestChartCmd(t *testing.T) {
	ctx, out := newContext(t)
	require.NoError(t, (&AddCmd{IDs: []string{"pre-2"}}).Run(ctx))

	require.NoError(t, (&ChartCmd{ID: "pre-2"}).Run(ctx))
	assert.Contains(t, out.String(), "now shows a pie chart")

	subs, err := ctx.Store.GetUserQuestions()
	require.NoError(t, err)
	assert.Equal(t, constants.ChartPie, subs[0].ChartType)

	require.NoError(t, (&ChartCmd{ID: "pre-2", Type: "line"}).Run(ctx))
	subs, err = ctx.Store.GetUserQuestions()
	require.NoError(t, err)
	assert.Equal(t, constants.ChartLine, subs[0].ChartType)

	assert.True(t, apperrors.IsValidation((&ChartCmd{ID: "pre-2", Type: "bar"}).Run(ctx)))
}

func TestChartCmdErrors(t *testing.T) {
	ctx, _ := newContext(t)

	err := (&ChartCmd{ID: "pre-1"}).Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an active question")

	require.NoError(t, (&AddCmd{IDs: []string{"pre-19"}}).Run(ctx))
	assert.Error(t, (&ChartCmd{ID: "pre-19", Type: "pie"}).Run(ctx))
	assert.True(t, apperrors.IsValidation((&ChartCmd{ID: "pre-19"}).Run(ctx)))

	assert.True(t, apperrors.IsNotFound((&ChartCmd{ID: "pre-999"}).Run(ctx)))
}

func TestCustomCmd(t *testing.T) {
	ctx, out := newContext(t)

	require.NoError(t, (&CustomCmd{Text: "  How calm was your commute?  ", Type: "scale", Category: "Mental Health", Min: 0, Max: 5}).Run(ctx))
	assert.Contains(t, out.String(), "(scale 0-5, Mental Health)")
	assert.Contains(t, out.String(), "Added to your active questions")

	custom, err := ctx.Store.GetCustomQuestions()
	require.NoError(t, err)
	require.Len(t, custom, 1)
	q := custom[0]
	assert.True(t, strings.HasPrefix(q.ID, constants.CustomQuestionPrefix))
	assert.Equal(t, "How calm was your commute?", q.Text)
	assert.True(t, q.IsCustom)
	assert.Equal(t, []string{q.ID}, subscriptionIDs(t, ctx))
}

func TestCustomCmdInactive(t *testing.T) {
	ctx, out := newContext(t)

	require.NoError(t, (&CustomCmd{Text: "What made you laugh?", Type: "freetext", Category: "Self-care", Min: 1, Max: 10, Inactive: true}).Run(ctx))
	assert.NotContains(t, out.String(), "Added to your active questions")
	assert.Empty(t, subscriptionIDs(t, ctx))
}

func TestCustomCmdRejectsInvalid(t *testing.T) {
	ctx, _ := newContext(t)

	err := (&CustomCmd{Text: "Did you garden?", Type: "yesno", Category: "Garden", Min: 1, Max: 10}).Run(ctx)
	assert.True(t, apperrors.IsValidation(err))

	err = (&CustomCmd{Text: "   ", Type: "yesno", Category: "Self-care", Min: 1, Max: 10}).Run(ctx)
	assert.True(t, apperrors.IsValidation(err))

	err = (&CustomCmd{Text: "Backwards scale?", Type: "scale", Category: "Self-care", Min: 10, Max: 1}).Run(ctx)
	assert.True(t, apperrors.IsValidation(err))

	custom, err := ctx.Store.GetCustomQuestions()
	require.NoError(t, err)
	assert.Empty(t, custom)
}
