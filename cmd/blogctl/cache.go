package main

import (
	"github.com/spf13/cobra"
)

func newCacheCmd(env *cliEnv) *cobra.Command {
	c := &cobra.Command{
		Use:   "cache",
		Short: "Manage the page cache",
	}
	c.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every cached page so the next request renders fresh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settingPath, err := cmd.Flags().GetString("app_config_path")
			if err != nil {
				return err
			}
			pageCache, err := env.openPageCache(cmd.Context(), settingPath)
			if err != nil {
				return err
			}
			if err := pageCache.Clear(cmd.Context()); err != nil {
				return err
			}
			cmd.Println("✅ page cache cleared")
			return nil
		},
	})
	return c
}
