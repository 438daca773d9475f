package ikctl

import (
	"fmt"

	"github.com/dmitrijs2005/interviewkeeper/internal/storage"
	"github.com/spf13/cobra"
)

func newMigrateCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, closeDB, err := c.open(cmd.Context())
			if err != nil {
				return fmt.Errorf("unable to run migrations: %w", err)
			}
			defer closeDB()

			fmt.Fprintf(cmd.OutOrStdout(), "database is up to date (driver %s)\n", storage.DriverFor(c.cfg.DatabaseDSN))
			return nil
		},
	}
}
