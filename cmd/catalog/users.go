package main

import (
	"github.com/spf13/cobra"

	"library-catalog/internal/domains/user"
)

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "Manage accounts"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts (admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := a.c.UserService.List(cmd.Context())
			if err != nil {
				return err
			}
			printUsers(a.out, users)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.c.UserService.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printUsers(a.out, []user.User{*u})
			return nil
		},
	}

	var patch user.UserRequest
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Edit an account (admin or the account owner)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := a.c.UserService.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			req := user.RequestFromUser(*current)
			flags := cmd.Flags()
			if flags.Changed("name") {
				req.Name = patch.Name
			}
			if flags.Changed("nick") {
				req.NickName = patch.NickName
			}
			if flags.Changed("email") {
				req.Email = patch.Email
			}
			if flags.Changed("admin") {
				req.IsAdmin = patch.IsAdmin
			}
			// the API requires the password on every update
			if req.Password, err = readPassword("Password: "); err != nil {
				return err
			}

			u, err := a.c.UserService.Update(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			a.printf("updated %s\n", u.Email)
			return nil
		},
	}
	userFlags(update, &patch)

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an account (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.c.UserService.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printf("%s\n", res.Message)
			return nil
		},
	}

	cmd.AddCommand(list, show, update, del)
	return cmd
}
