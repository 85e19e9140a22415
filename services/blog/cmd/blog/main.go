package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	gormlogger "gorm.io/gorm/logger"

	"librarysite/internal/util"
	"librarysite/pkg/store"
	"librarysite/services/blog/internal/app"
	"librarysite/services/blog/internal/config"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "blog",
		Short:         "Blog server and maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default ./config.yaml if present)")

	rootCmd.AddCommand(NewServeCommand(&configFile))
	rootCmd.AddCommand(NewSeedPostsCommand(&configFile))
	rootCmd.AddCommand(NewAdminTokenCommand(&configFile))
	return rootCmd
}

// bootstrap loads config, logging and the store shared by every subcommand.
func bootstrap(cmd *cobra.Command, configFile string) (config.FileConfig, store.Store, *app.App, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return cfg, nil, nil, err
	}
	logger := util.InitLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	st, err := store.Open(cfg.DatabaseURL, store.WithSQLLogLevel(sqlLogLevel(cfg.SQLLogLevel)))
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("open store: %w", err)
	}
	core, err := app.New(app.Config{Store: st, Logger: logger})
	if err != nil {
		_ = st.Close()
		return cfg, nil, nil, err
	}
	return cfg, st, core, nil
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
