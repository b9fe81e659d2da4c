package main

import (
	"fmt"

	"github.com/Luismorlan/blogmux/model"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newGroupCmd(env *cliEnv) *cobra.Command {
	group := &cobra.Command{
		Use:   "group",
		Short: "Manage post groups",
	}
	group.AddCommand(newGroupCreateCmd(env))
	group.AddCommand(newGroupListCmd(env))
	group.AddCommand(newGroupDeleteCmd(env))
	return group
}

func newGroupCreateCmd(env *cliEnv) *cobra.Command {
	var title, slug, description string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group posts can be filed under",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" || slug == "" {
				return errors.New("--title and --slug are required")
			}
			st, err := env.store()
			if err != nil {
				return err
			}
			group := &model.Group{Title: title, Slug: slug, Description: description}
			if err := st.CreateGroup(group); err != nil {
				return err
			}
			cmd.Printf("✅ created group %d %s\n", group.Id, group.Slug)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "group title, at most 200 characters")
	cmd.Flags().StringVar(&slug, "slug", "", "unique url name of the group")
	cmd.Flags().StringVar(&description, "description", "", "group description")
	return cmd
}

func newGroupListCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every group",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := env.store()
			if err != nil {
				return err
			}
			groups, err := st.ListGroups()
			if err != nil {
				return err
			}
			if len(groups) == 0 {
				cmd.Println("🤷 no groups")
				return nil
			}
			for _, g := range groups {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", g.Id, g.Slug, g.Title)
			}
			return nil
		},
	}
}

func newGroupDeleteCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [slug]",
		Short: "Delete a group, its posts stay without a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := env.store()
			if err != nil {
				return err
			}
			group, err := st.GetGroupBySlug(args[0])
			if err != nil {
				return err
			}
			if err := st.DeleteGroup(group); err != nil {
				return err
			}
			cmd.Printf("🗑 deleted group %s\n", group.Slug)
			return nil
		},
	}
}
