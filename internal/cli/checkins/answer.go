package checkins

import (
	"fmt"

	"github.com/julianstephens/daycheck/internal/checkin"
	"github.com/julianstephens/daycheck/internal/cli"
	"github.com/julianstephens/daycheck/internal/logger"
)

// AnswerCmd records a single answer for today without the interactive form
type AnswerCmd struct {
	QuestionID string `arg:"" help:"Question id (see 'daycheck questions list')."`
	Value      string `arg:"" help:"yes/no, a number within the scale, or free text."`
}

func (c *AnswerCmd) Run(ctx *cli.Context) error {
	subs := ctx.Subscriptions()
	q, err := subs.Resolve(c.QuestionID)
	if err != nil {
		return err
	}

	raw, err := checkin.ParseInput(q, c.Value)
	if err != nil {
		return err
	}

	answer, date, err := ctx.Recorder().Submit(q, raw)
	if err != nil {
		return err
	}

	active, err := subs.IsActive(q.ID)
	if err != nil {
		logger.Warn("Failed to check subscription", "question", q.ID, "error", err)
	} else if !active {
		ctx.Printf("⚠ %s is not in your active questions; it won't appear in the statistics summary.\n", q.ID)
	}

	ctx.Printf("✓ %s %s: %s (%s)\n", q.Icon(), q.Text, answer.Value, date)
	return nil
}

// valueLabel renders a stored value for listings
func valueLabel(v fmt.Stringer) string {
	s := v.String()
	if s == "" {
		return "(empty)"
	}
	return s
}
