package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
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
		Use:           "library",
		Short:         "Library catalog maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default ./config.yaml if present)")

	rootCmd.AddCommand(NewGenerateFakeDataCommand(&configFile))
	rootCmd.AddCommand(NewInspectCommand(&configFile))
	return rootCmd
}
