package reports

import (
	"github.com/julianstephens/daycheck/internal/cli"
)

// HistoryCmd lists every answer to one question, newest first
type HistoryCmd struct {
	QuestionID string `arg:"" help:"Question id."`
	Limit      int    `help:"Show at most this many answers (0 for all)." default:"0"`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Stats().QuestionReport(c.QuestionID)
	if err != nil {
		return err
	}

	q := r.Question
	ctx.Printf("%s %s (%s)\n\n", q.Icon(), q.Text, q.ID)
	if len(r.Answers) == 0 {
		ctx.Println("No answers yet.")
		return nil
	}

	shown := 0
	for i := len(r.Answers) - 1; i >= 0; i-- {
		if c.Limit > 0 && shown == c.Limit {
			break
		}
		p := r.Answers[i]
		ctx.Printf("  %s  %s\n", p.Date, p.Value)
		shown++
	}
	if shown < len(r.Answers) {
		ctx.Printf("\n%d of %d answers shown\n", shown, len(r.Answers))
	}
	return nil
}
