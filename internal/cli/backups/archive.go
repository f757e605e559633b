package backups

import (
	"fmt"
	"strings"

	"github.com/julianstephens/daycheck/internal/backup"
	"github.com/julianstephens/daycheck/internal/cli"
	"github.com/julianstephens/daycheck/internal/constants"
)

// ExportCmd writes every entry, subscription and custom question to a
// compressed archive that any backend can import.
type ExportCmd struct {
	File string `arg:"" help:"Archive to write (.json.zst)." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	path := c.File
	if !strings.HasSuffix(path, constants.ExportFileSuffix) {
		path += constants.ExportFileSuffix
	}

	archive, err := backup.ExportFile(path, ctx.Store, ctx.Now())
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	n := archive.Counts()
	ctx.Printf("✓ Exported %d days (%d answers), %d active and %d custom questions to %s\n",
		n.Days, n.Answers, n.UserQuestions, n.CustomQuestions, path)
	return nil
}

// ImportCmd loads an archive into an empty store
type ImportCmd struct {
	File string `arg:"" help:"Archive written by 'export'." type:"existingfile"`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	archive, err := backup.ImportFile(c.File, ctx.Store)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	n := archive.Counts()
	ctx.Printf("✓ Imported %d days (%d answers), %d active and %d custom questions\n",
		n.Days, n.Answers, n.UserQuestions, n.CustomQuestions)
	return nil
}
