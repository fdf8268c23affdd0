package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"library-catalog/internal/domains/user"
)

// readPassword masks input on a terminal and reads one line otherwise.
func readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func newLoginCmd(a *app) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}
			u, err := a.c.UserService.Login(cmd.Context(), user.LoginRequest{Email: email, Password: password})
			if err != nil {
				return err
			}
			a.printf("logged in as %s (%s)\n", u.Email, u.Role())

			saved, err := a.c.SavedBooks.Refresh(cmd.Context(), u.ID)
			if err != nil {
				return err
			}
			a.printf("%d saved books\n", len(saved))
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.c.UserService.Logout(cmd.Context()); err != nil {
				return err
			}
			a.printf("logged out\n")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := a.c.UserService.Current(cmd.Context())
			if err != nil {
				return err
			}
			a.printf("%s <%s> %s id=%s\n", u.Name, u.Email, u.Role(), u.ID)
			return nil
		},
	}
}

// userFlags binds the account fields shared by register and users update.
func userFlags(cmd *cobra.Command, req *user.UserRequest) {
	cmd.Flags().StringVar(&req.Name, "name", "", "full name")
	cmd.Flags().StringVar(&req.NickName, "nick", "", "nick name")
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "email")
	cmd.Flags().BoolVar(&req.IsAdmin, "admin", false, "grant admin (admins only)")
}

func newRegisterCmd(a *app) *cobra.Command {
	var req user.UserRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account (and log in when not already an admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readPassword("New password: ")
			if err != nil {
				return err
			}
			req.Password = password

			u, err := a.c.UserService.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.printf("registered %s id=%s\n", u.Email, u.ID)
			return nil
		},
	}
	userFlags(cmd, &req)
	return cmd
}
