package checkins

import (
	"github.com/julianstephens/daycheck/internal/cli"
	"github.com/julianstephens/daycheck/internal/utils"
)

// TodayCmd shows today's answers for the active questions
type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	active, err := ctx.Subscriptions().Active()
	if err != nil {
		return err
	}

	date := ctx.Today()
	values, err := todaysValues(ctx, date)
	if err != nil {
		return err
	}

	ctx.Printf("Check-in for %s\n\n", utils.MustParseDay(date).Display())
	if len(active) == 0 {
		ctx.Println("No active questions.")
		return nil
	}

	answered := 0
	for _, a := range active {
		q := a.Question
		if v, ok := values[q.ID]; ok {
			answered++
			ctx.Printf("  ✓ %s %s: %s\n", q.Icon(), q.Text, valueLabel(v))
		} else {
			ctx.Printf("  ○ %s %s\n", q.Icon(), q.Text)
		}
	}
	ctx.Printf("\n%d of %d answered\n", answered, len(active))
	return nil
}
