package main

import (
	"context"

	"github.com/Luismorlan/blogmux/app_setting"
	"github.com/Luismorlan/blogmux/cache"
	"github.com/Luismorlan/blogmux/server"
	"github.com/Luismorlan/blogmux/store"
	"github.com/Luismorlan/blogmux/utils"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// cliEnv opens the backends a command works on. Commands only open what
// they use, so group commands never need redis.
type cliEnv struct {
	openDB        func() (*gorm.DB, error)
	openPageCache func(ctx context.Context, settingPath string) (cache.PageCache, error)
}

func newPostgresEnv() *cliEnv {
	return &cliEnv{
		openDB: utils.GetDBConnection,
		openPageCache: func(ctx context.Context, settingPath string) (cache.PageCache, error) {
			setting, err := app_setting.ParseServerAppSetting(settingPath)
			if err != nil {
				return nil, err
			}
			return server.NewPageCache(ctx, setting)
		},
	}
}

func (e *cliEnv) store() (*store.Store, error) {
	db, err := e.openDB()
	if err != nil {
		return nil, err
	}
	return store.New(db), nil
}

// newRootCmd assembles blogctl, the admin tool for the blog's content.
func newRootCmd(env *cliEnv) *cobra.Command {
	root := &cobra.Command{
		Use:           "blogctl [command] [flags]",
		Short:         "blogctl: manage groups, users and caches of the blog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("app_config_path", "cmd/server/config.yaml", "path to server app config")

	root.AddCommand(newMigrateCmd(env))
	root.AddCommand(newGroupCmd(env))
	root.AddCommand(newUserCmd(env))
	root.AddCommand(newCacheCmd(env))
	return root
}

func newMigrateCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := env.openDB()
			if err != nil {
				return err
			}
			if err := utils.DatabaseSetupAndMigration(db); err != nil {
				return err
			}
			cmd.Println("✅ schema is up to date")
			return nil
		},
	}
}
