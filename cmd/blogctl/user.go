package main

import (
	"github.com/spf13/cobra"
)

func newUserCmd(env *cliEnv) *cobra.Command {
	user := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	user.AddCommand(&cobra.Command{
		Use:   "delete [username]",
		Short: "Delete a user with their posts, comments and follows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := env.store()
			if err != nil {
				return err
			}
			user, err := st.GetUserByUsername(args[0])
			if err != nil {
				return err
			}
			if err := st.DeleteUser(user); err != nil {
				return err
			}
			cmd.Printf("🗑 deleted user %s\n", user.Username)
			return nil
		},
	})
	return user
}
