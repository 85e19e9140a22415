package main

import "github.com/spf13/cobra"

func NewSeedPostsCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-posts",
		Short: "Insert the demo blog posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, core, err := bootstrap(cmd, *configFile)
			if err != nil {
				return err
			}
			defer st.Close()

			created := core.SeedPosts()
			for _, p := range created {
				cmd.Printf("[OK] Created post %d: %s\n", p.ID, p.Title)
			}
			cmd.Println("Demo posts created!")
			return nil
		},
	}
}
