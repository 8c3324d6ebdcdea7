package main

import (
	"fmt"
	"strconv"

	"github.com/cmlabs-hris/timeoff-portal/internal/pkg/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Apply or inspect database migrations",
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{"up", "down", "status"},
	RunE:      runMigration,
}

var migrateSteps int

func init() {
	migrateCmd.Flags().IntVarP(&migrateSteps, "steps", "n", 1, "number of migrations to roll back with down")
}

func runMigration(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	migrator, err := database.NewMigrator(cfg.DatabaseURL())
	if err != nil {
		return err
	}
	defer migrator.Close()

	ctx := cmd.Context()
	switch args[0] {
	case "up":
		return migrator.Up(ctx)
	case "down":
		steps := migrateSteps
		if len(args) == 2 {
			if steps, err = strconv.Atoi(args[1]); err != nil || steps < 1 {
				return fmt.Errorf("invalid step count %q", args[1])
			}
		}
		return migrator.Down(ctx, steps)
	case "status":
		return migrator.Status(ctx)
	default:
		return fmt.Errorf("unknown migrate command %q", args[0])
	}
}
