package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/daycheck/internal/backup"
	"github.com/julianstephens/daycheck/internal/checkin"
	"github.com/julianstephens/daycheck/internal/config"
	"github.com/julianstephens/daycheck/internal/constants"
	"github.com/julianstephens/daycheck/internal/logger"
	"github.com/julianstephens/daycheck/internal/stats"
	"github.com/julianstephens/daycheck/internal/storage"
	"github.com/julianstephens/daycheck/internal/storage/sqlite"
	"github.com/julianstephens/daycheck/internal/subscription"
	"github.com/julianstephens/daycheck/internal/utils"
)

// Context is handed to every command's Run method
type Context struct {
	Store     storage.Provider
	Settings  config.Settings
	Location  *time.Location
	ConfigDir string

	// Clock and Out default to the wall clock in Location and stdout
	Clock func() time.Time
	Out   io.Writer
}

func (c *Context) clock() func() time.Time {
	if c.Clock != nil {
		return c.Clock
	}
	return utils.Clock(c.location())
}

// Now is the current time in the configured timezone
func (c *Context) Now() time.Time {
	return c.clock()()
}

func (c *Context) location() *time.Location {
	if c.Location != nil {
		return c.Location
	}
	return time.Local
}

// Stdout is where commands print their results
func (c *Context) Stdout() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Recorder files answers under today's date in the configured timezone
func (c *Context) Recorder() *checkin.Recorder {
	return checkin.NewRecorder(c.Store, checkin.WithClock(c.clock()), checkin.WithLocation(c.location()))
}

// Stats builds the statistics service with the user's settings
func (c *Context) Stats() *stats.Service {
	return stats.NewService(c.Store,
		stats.WithClock(c.clock()),
		stats.WithLocation(c.location()),
		stats.WithOptions(c.Settings.StatsOptions()),
	)
}

func (c *Context) Subscriptions() *subscription.Manager {
	return subscription.NewManager(c.Store, subscription.WithClock(c.clock()))
}

// Today is the current date key
func (c *Context) Today() string {
	return utils.Today(c.Now(), c.location()).String()
}

// BackupManager returns the backup manager for SQLite storage. Other
// backends have no database file to snapshot.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, fmt.Errorf("backups are only available for SQLite storage; use '%s export' instead", constants.AppName)
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// PerformAutomaticBackup creates a backup and only logs failures
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
