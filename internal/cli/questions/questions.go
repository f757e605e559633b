package questions

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/daycheck/internal/cli"
	"github.com/julianstephens/daycheck/internal/constants"
	"github.com/julianstephens/daycheck/internal/models"
	"github.com/julianstephens/daycheck/internal/subscription"
)

func describe(q models.Question) string {
	switch q.Type {
	case constants.QuestionScale:
		lo, hi := q.Bounds()
		return fmt.Sprintf("scale %d-%d", lo, hi)
	case constants.QuestionYesNo:
		return "yes/no"
	default:
		return "free text"
	}
}

// ListCmd shows the active questions in order
type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	active, err := ctx.Subscriptions().Active()
	if err != nil {
		return err
	}
	if len(active) == 0 {
		ctx.Printf("No active questions. Browse them with '%s questions catalog'.\n", constants.AppName)
		return nil
	}

	ctx.Printf("Active questions (%d):\n\n", len(active))
	for _, a := range active {
		q := a.Question
		chart := ""
		if q.SupportsChartToggle() {
			chart = fmt.Sprintf(", %s chart", a.ChartType())
		}
		ctx.Printf("  %-12s %s %s  (%s%s)\n", q.ID, q.Icon(), q.Text, describe(q), chart)
	}
	return nil
}

// CatalogCmd lists every question that can be activated, by category
type CatalogCmd struct {
	Category string `help:"Only show this category."`
}

func (c *CatalogCmd) Run(ctx *cli.Context) error {
	subs := ctx.Subscriptions()
	cat, err := subs.Catalog()
	if err != nil {
		return err
	}
	active, err := subs.Active()
	if err != nil {
		return err
	}
	isActive := make(map[string]bool, len(active))
	for _, a := range active {
		isActive[a.Question.ID] = true
	}

	byCategory := map[string][]models.Question{}
	for _, q := range cat.All() {
		byCategory[q.Category] = append(byCategory[q.Category], q)
	}

	// known categories first, then any others custom questions introduced
	var extra []string
	for name := range byCategory {
		if !constants.IsCategory(name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	categories := append(append([]string{}, constants.Categories...), extra...)

	shown := 0
	for _, name := range categories {
		if c.Category != "" && !strings.EqualFold(c.Category, name) {
			continue
		}
		list := byCategory[name]
		if len(list) == 0 {
			continue
		}
		ctx.Printf("%s\n", name)
		for _, q := range list {
			mark := " "
			if isActive[q.ID] {
				mark = "✓"
			}
			ctx.Printf("  %s %-12s %s %s  (%s)\n", mark, q.ID, q.Icon(), q.Text, describe(q))
			shown++
		}
		ctx.Println()
	}
	if shown == 0 {
		return fmt.Errorf("no questions in category %q", c.Category)
	}
	return nil
}

// AddCmd activates questions
type AddCmd struct {
	IDs []string `arg:"" name:"id" help:"Question ids to activate."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	subs := ctx.Subscriptions()
	for _, id := range c.IDs {
		q, err := subs.Resolve(id)
		if err != nil {
			return err
		}
		if err := subs.Activate(id); err != nil {
			return err
		}
		ctx.Printf("✓ Activated %s %s\n", q.Icon(), q.Text)
	}
	return nil
}

// RemoveCmd deactivates questions. Their answers are kept.
type RemoveCmd struct {
	IDs []string `arg:"" name:"id" help:"Question ids to deactivate."`
}

func (c *RemoveCmd) Run(ctx *cli.Context) error {
	subs := ctx.Subscriptions()
	for _, id := range c.IDs {
		if err := subs.Deactivate(id); err != nil {
			return err
		}
		ctx.Printf("✓ Deactivated %s (history is kept)\n", id)
	}
	return nil
}

// ChartCmd sets or toggles the chart shown for an active question
type ChartCmd struct {
	ID   string `arg:"" help:"Question id."`
	Type string `arg:"" optional:"" help:"line or pie; omit to toggle."`
}

func (c *ChartCmd) Run(ctx *cli.Context) error {
	subs := ctx.Subscriptions()
	q, err := subs.Resolve(c.ID)
	if err != nil {
		return err
	}
	active, err := subs.IsActive(c.ID)
	if err != nil {
		return err
	}
	if !active {
		return fmt.Errorf("%s is not an active question; add it with '%s questions add %s'", c.ID, constants.AppName, c.ID)
	}

	if c.Type == "" {
		next, _, err := subs.ToggleChartType(c.ID)
		if err != nil {
			return err
		}
		ctx.Printf("✓ %s now shows a %s chart\n", q.Text, next)
		return nil
	}

	if !q.SupportsChartToggle() {
		return fmt.Errorf("%s is a free-text question and has no chart", c.ID)
	}
	if err := subs.SetChartType(c.ID, constants.ChartType(c.Type)); err != nil {
		return err
	}
	ctx.Printf("✓ %s now shows a %s chart\n", q.Text, c.Type)
	return nil
}

// CustomCmd creates a user-authored question
type CustomCmd struct {
	Text     string `arg:"" help:"Question text."`
	Type     string `help:"Answer type." enum:"yesno,scale,freetext" default:"yesno"`
	Category string `help:"Category." default:"Self-care"`
	Emoji    string `help:"Emoji shown next to the question."`
	Min      int    `help:"Lowest scale value." default:"1"`
	Max      int    `help:"Highest scale value." default:"10"`
	Inactive bool   `help:"Create the question without activating it."`
}

func (c *CustomCmd) Run(ctx *cli.Context) error {
	q, err := ctx.Subscriptions().AddCustom(subscription.NewQuestion{
		Text:     c.Text,
		Type:     constants.QuestionType(c.Type),
		Category: c.Category,
		Emoji:    c.Emoji,
		ScaleMin: c.Min,
		ScaleMax: c.Max,
	}, !c.Inactive)
	if err != nil {
		return err
	}

	ctx.Printf("✓ Created %s %s (%s, %s)\n", q.ID, q.Text, describe(q), q.Category)
	if !c.Inactive {
		ctx.Println("  Added to your active questions")
	}
	return nil
}
