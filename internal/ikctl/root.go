package ikctl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrijs2005/interviewkeeper/internal/config"
	"github.com/dmitrijs2005/interviewkeeper/internal/logging"
	"github.com/dmitrijs2005/interviewkeeper/internal/server"
	"github.com/dmitrijs2005/interviewkeeper/internal/storage"
	"github.com/spf13/cobra"
)

type cli struct {
	cfg    *config.Config
	logger logging.Logger

	dsn         string
	busyTimeout time.Duration
	verbose     bool
}

// open connects to the configured database, applying migrations, and
// returns the services bound to it together with a close function.
func (c *cli) open(ctx context.Context) (*server.Services, func(), error) {
	db, err := storage.Open(ctx, c.cfg.DatabaseDSN, c.cfg.BusyTimeout)
	if err != nil {
		return nil, nil, err
	}
	return server.NewServices(db, c.cfg, c.logger), func() { _ = db.Close() }, nil
}

// NewRootCommand builds the ikctl command tree. Output goes to the
// command's configured writer (stdout unless overridden).
func NewRootCommand() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "ikctl",
		Short:         "Inspect and exercise the interviewkeeper datastore",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadDotEnv()

			cfg, err := config.LoadEnvConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dsn") {
				cfg.DatabaseDSN = c.dsn
			}
			if cmd.Flags().Changed("busy-timeout") {
				cfg.BusyTimeout = c.busyTimeout
			}
			c.cfg = cfg

			if c.verbose {
				c.logger = logging.NewJSON(cmd.ErrOrStderr(), slog.LevelDebug)
			} else {
				c.logger = logging.Discard()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&c.dsn, "dsn", "d", "", "database DSN (defaults to $"+config.EnvDatabaseDSN+" or interviewkeeper.db)")
	root.PersistentFlags().DurationVar(&c.busyTimeout, "busy-timeout", 5*time.Second, "SQLite busy timeout")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		newMigrateCommand(c),
		newPlaygroundCommand(c),
		newUserCommand(c),
		newInterviewCommand(c),
	)

	return root
}

// Execute runs ikctl against os.Args and exits non-zero on failure.
func Execute() {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func printSeparator(w io.Writer, title string) {
	fmt.Fprintf(w, "\n==================== %s ====================\n", title)
}
