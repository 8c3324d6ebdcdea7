package main

import (
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timeoff-portal/internal/fixtures"
	"github.com/cmlabs-hris/timeoff-portal/internal/pkg/database"
	"github.com/cmlabs-hris/timeoff-portal/internal/repository/postgresql"
	servicePolicy "github.com/cmlabs-hris/timeoff-portal/internal/service/policy"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create default policies and promote the first administrator",
	RunE:  runSeed,
}

var seedAdminEmail string

func init() {
	seedCmd.Flags().StringVar(&seedAdminEmail, "admin-email", "", "registered account to promote to Super Administrador")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	profileRepo := postgresql.NewProfileRepository(db)
	seeder := fixtures.NewSeeder(
		servicePolicy.NewPolicyService(postgresql.NewPolicyRepository(db)),
		profileRepo,
		postgresql.NewRoleRepository(db),
	)

	created, err := seeder.SeedPolicies(ctx)
	if err != nil {
		return err
	}
	slog.Info("Seeded policies", "created", created)

	if seedAdminEmail != "" {
		return seeder.PromoteAdmin(ctx, seedAdminEmail)
	}
	return nil
}
