// Package cli defines the Cobra commands of the wordtrainer binary.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"wordtrainer/internal/config"
	"wordtrainer/internal/database"
	"wordtrainer/internal/logger"
	"wordtrainer/internal/repository"
	"wordtrainer/internal/service"
)

var (
	version = "dev" // set via ldflags at build time
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "wordtrainer",
	Short: "Practise vocabulary in the terminal",
	Long: `wordtrainer tests you on word pairs, either straight from a text or
YAML word list or from vocabularies stored in the database shared with
the wordtrainer server.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at the configured LOG_LEVEL instead of warnings only")
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(restoreCmd)
}

// store is the database-backed part of the application.
type store struct {
	db       *database.DB
	vocab    *service.VocabularyService
	practice *service.PracticeService
	backup   *service.BackupService
}

// openStore loads configuration, connects and migrates the database and
// wires the services. Logs go to stderr, warnings only unless --verbose.
func openStore(ctx context.Context) (*store, error) {
	cfg := config.Load()
	level := "warn"
	if verbose {
		level = cfg.LogLevel
	}
	slog.SetDefault(logger.NewWithWriter(os.Stderr, level, cfg.LogFormat))

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	if err := db.RunMigrations(ctx, cfg.MigrationsPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	vocabRepo := repository.NewVocabularyRepository(db)
	resultRepo := repository.NewResultRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	email, err := service.NewEmailService(ctx, cfg.SESRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.Debug)
	if err != nil {
		// Reports are optional in the terminal.
		email = nil
	}

	return &store{
		db:       db,
		vocab:    service.NewVocabularyService(vocabRepo),
		practice: service.NewPracticeService(vocabRepo, resultRepo, progressRepo, settingsRepo, email, service.NewPracticeRegistry()),
		backup:   service.NewBackupService(db, vocabRepo, resultRepo, progressRepo, settingsRepo),
	}, nil
}

func (s *store) Close() error {
	return s.db.Close()
}
