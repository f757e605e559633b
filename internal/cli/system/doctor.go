package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/daycheck/internal/catalog"
	"github.com/julianstephens/daycheck/internal/cli"
	"github.com/julianstephens/daycheck/internal/constants"
	"github.com/julianstephens/daycheck/internal/storage/sqlite"
	"github.com/julianstephens/daycheck/internal/utils"
	"github.com/julianstephens/daycheck/internal/validation"
)

// schemaReporter is implemented by the SQL backends
type schemaReporter interface {
	SchemaStatus() (current, latest int, err error)
}

type DoctorCmd struct{}

type check struct {
	name string
	// needsStorage checks are skipped when storage is unreachable
	needsStorage bool
	// warnOnly checks never fail the run
	warnOnly bool
	run      func(*cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsStorage: true, run: checkSchemaVersion},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Data integrity", needsStorage: true, run: checkDataIntegrity},
	{name: "Question references", needsStorage: true, warnOnly: true, run: checkQuestionReferences},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := true
	if err := checkStorageReachable(ctx); err != nil {
		ctx.Printf("❌ Storage reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		reachable = false
	} else {
		ctx.Printf("✓ Storage reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsStorage && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	if _, err := ctx.Store.GetAllEntries(); err != nil {
		return err
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	reporter, ok := ctx.Store.(schemaReporter)
	if !ok {
		// document stores carry their own version
		return nil
	}

	current, latest, err := reporter.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run '%s init')", current, latest, constants.AppName)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func loadCatalog(ctx *cli.Context) (*catalog.Catalog, error) {
	custom, err := ctx.Store.GetCustomQuestions()
	if err != nil {
		return nil, fmt.Errorf("failed to get custom questions: %w", err)
	}
	return catalog.New(custom), nil
}

func checkDataIntegrity(ctx *cli.Context) error {
	entries, err := ctx.Store.GetAllEntries()
	if err != nil {
		return fmt.Errorf("failed to get entries: %w", err)
	}
	cat, err := loadCatalog(ctx)
	if err != nil {
		return err
	}

	result := validation.ValidateEntries(entries, cat)
	if result.HasBlockingIssues() {
		return fmt.Errorf("%s", result.FormatReport())
	}
	return nil
}

// checkQuestionReferences reports answers and subscriptions whose question
// has no definition. Statistics skip them, so this only warns.
func checkQuestionReferences(ctx *cli.Context) error {
	entries, err := ctx.Store.GetAllEntries()
	if err != nil {
		return fmt.Errorf("failed to get entries: %w", err)
	}
	cat, err := loadCatalog(ctx)
	if err != nil {
		return err
	}

	result := validation.ValidateEntries(entries, cat)
	orphans := 0
	for _, issue := range result.Issues {
		if !issue.Blocking() {
			orphans++
		}
	}

	subs, err := ctx.Store.GetUserQuestions()
	if err != nil {
		return fmt.Errorf("failed to get active questions: %w", err)
	}
	missing := 0
	for _, s := range subs {
		if _, ok := cat.Resolve(s.QuestionID); !ok {
			missing++
		}
	}

	if orphans > 0 || missing > 0 {
		return fmt.Errorf("%d entry issue(s) and %d active question(s) reference unknown or empty data", orphans, missing)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	if !utils.ValidateTimezone(ctx.Settings.Timezone) {
		return fmt.Errorf("unknown timezone %q", ctx.Settings.Timezone)
	}

	now := ctx.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
