package main

import (
	"context"
	"fmt"
	"time"

	"skill-sync-resume/internal/config"
	"skill-sync-resume/internal/database/migration"
	dbpostgres "skill-sync-resume/internal/database/postgres"
	"skill-sync-resume/internal/database/seeder"
	"skill-sync-resume/migrations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		withSeed, _ := cmd.Flags().GetBool("seed")
		if status, _ := cmd.Flags().GetBool("status"); status {
			return runMigrateStatus(cmd)
		}
		return runMigrate(withSeed)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo job postings",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runMigrate(true)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)

	migrateCmd.Flags().Bool("seed", false, "also insert the demo job postings")
	migrateCmd.Flags().Bool("status", false, "list pending migrations without applying them")
}

func runMigrateStatus(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	pending, err := migration.Runner{FS: migrations.FS}.Pending(ctx, db.SQLDB())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(pending) == 0 {
		fmt.Fprintln(out, "up to date")
		return nil
	}
	for _, m := range pending {
		fmt.Fprintf(out, "pending V%d %s\n", m.Version, m.Name)
	}
	return nil
}

func runMigrate(withSeed bool) error {
	lg := newLogger()
	defer func() { _ = lg.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	r := migration.Runner{FS: migrations.FS, Log: lg}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		return err
	}
	lg.Info("migrations applied")

	if !withSeed {
		return nil
	}
	seeders := seeder.Defaults()
	if err := (seeder.Runner{Seeders: seeders, Log: lg}).Run(ctx, db); err != nil {
		return err
	}
	lg.Info("seed completed", zap.Int("seeders", len(seeders)))
	return nil
}
