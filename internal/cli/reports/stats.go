package reports

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/julianstephens/daycheck/internal/cli"
	"github.com/julianstephens/daycheck/internal/tui/components/report"
)

// StatsCmd prints the statistics page
type StatsCmd struct {
	JSON  bool `help:"Print the statistics as JSON."`
	Width int  `help:"Chart width in columns." default:"60"`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	summary, err := ctx.Stats().Summary()
	if err != nil {
		return err
	}

	if c.JSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode statistics: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	ctx.Println(report.Summary(summary))
	for _, r := range summary.Questions {
		ctx.Println()
		ctx.Println(report.Question(r, c.Width))
	}
	if len(summary.Questions) == 0 {
		ctx.Println()
		ctx.Println("No active questions to chart.")
	}
	return nil
}
