package main

import (
	"github.com/spf13/cobra"

	"librarysite/services/library/internal/app"
)

// NewInspectCommand prints the stored catalog.
func NewInspectCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "List genres, authors, books and copies in their default order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, caps, err := openCatalog(cmd, *configFile)
			if err != nil {
				return err
			}
			defer st.Close()
			return app.Inspect(cmd.OutOrStdout(), st, caps)
		},
	}
}
