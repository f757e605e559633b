package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/daycheck/internal/cli"
	"github.com/julianstephens/daycheck/internal/config"
	"github.com/julianstephens/daycheck/internal/constants"
	"github.com/julianstephens/daycheck/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting existing storage before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()

	if c.Force {
		if storage.DetectBackend(path) == storage.BackendPostgres {
			return fmt.Errorf("--force is not supported for PostgreSQL; drop the %s schema manually", constants.AppName)
		}
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing storage: %w", err)
			}
			ctx.Printf("Deleted existing storage at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing storage: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized %s storage at: %s\n", constants.AppName, path)

	if ctx.ConfigDir != "" {
		settingsPath, err := config.WriteDefault(ctx.ConfigDir)
		if err != nil {
			return err
		}
		ctx.Printf("Settings file: %s\n", settingsPath)
	}

	ctx.Printf("\nNext: pick questions with '%s questions catalog' and '%s questions add <id>'.\n", constants.AppName, constants.AppName)
	return nil
}
