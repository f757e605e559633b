package checkins

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daycheck/internal/cli"
	"github.com/julianstephens/daycheck/internal/constants"
	"github.com/julianstephens/daycheck/internal/models"
	"github.com/julianstephens/daycheck/internal/tui/forms"
)

// CheckinCmd walks through today's active questions in an interactive form
type CheckinCmd struct{}

func (c *CheckinCmd) Run(ctx *cli.Context) error {
	active, err := ctx.Subscriptions().Active()
	if err != nil {
		return err
	}
	if len(active) == 0 {
		ctx.Printf("No active questions. Add some with '%s questions add <id>' (see '%s questions catalog').\n", constants.AppName, constants.AppName)
		return nil
	}

	rec := ctx.Recorder()
	current, err := todaysValues(ctx, rec.Today())
	if err != nil {
		return err
	}

	questions := make([]models.Question, 0, len(active))
	for _, a := range active {
		questions = append(questions, a.Question)
	}

	form := forms.NewAnswerForm(questions, current)
	if err := form.Form().Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			ctx.Println("Check-in cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("check-in form failed: %w", err)
	}

	pending, err := form.Answers()
	if err != nil {
		return err
	}

	saved := 0
	for _, p := range pending {
		if _, _, err := rec.Submit(p.Question, p.Raw); err != nil {
			return err
		}
		saved++
	}

	ctx.Printf("✓ Saved %d of %d answers for %s\n", saved, len(questions), rec.Today())
	return nil
}

func todaysValues(ctx *cli.Context, date string) (map[string]models.Value, error) {
	entry, ok, err := ctx.Store.GetEntryForDate(date)
	if err != nil {
		return nil, fmt.Errorf("failed to load today's entry: %w", err)
	}
	values := map[string]models.Value{}
	if !ok {
		return values, nil
	}
	for _, a := range entry.Answers {
		values[a.QuestionID] = a.Value
	}
	return values, nil
}
