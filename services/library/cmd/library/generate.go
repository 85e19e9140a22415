package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	gormlogger "gorm.io/gorm/logger"

	"librarysite/internal/util"
	"librarysite/pkg/store"
	"librarysite/services/library/internal/app"
	"librarysite/services/library/internal/config"
)

// NewGenerateFakeDataCommand seeds the catalog with demo data.
func NewGenerateFakeDataCommand(configFile *string) *cobra.Command {
	var books int
	var clear bool

	cmd := &cobra.Command{
		Use:   "generate-fake-data",
		Short: "Populate the library with demo users, genres, authors, books and copies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, st, caps, err := openCatalog(cmd, *configFile)
			if err != nil {
				return err
			}
			defer st.Close()

			seeder, err := app.New(app.Config{
				Store:        st,
				Capabilities: caps,
				Out:          cmd.OutOrStdout(),
				Logger:       logger,
			})
			if err != nil {
				return err
			}
			// Failures inside the run are reported, not returned.
			seeder.Run(app.Options{Books: books, Clear: clear})
			return nil
		},
	}
	cmd.Flags().IntVar(&books, "books", app.DefaultBooks, "number of books to create")
	cmd.Flags().BoolVar(&clear, "clear", false, "delete existing data before generating")
	return cmd
}

// openCatalog loads config, logging and the store with its enabled
// optional entity types.
func openCatalog(cmd *cobra.Command, configFile string) (*slog.Logger, store.Store, store.Capabilities, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, store.Capabilities{}, err
	}
	logger := util.InitLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)

	st, err := store.Open(cfg.DatabaseURL, store.WithSQLLogLevel(sqlLogLevel(cfg.SQLLogLevel)))
	if err != nil {
		return nil, nil, store.Capabilities{}, fmt.Errorf("open store: %w", err)
	}
	caps := store.ResolveCapabilities(st, store.Features{
		Readers:       cfg.Features.ReadersEnabled(),
		BookInstances: cfg.Features.BookInstancesEnabled(),
	})
	return logger, st, caps, nil
}

func sqlLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
