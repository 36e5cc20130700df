package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskdesk/taskdesk-go/internal/model"
)

func (c *cli) signupCmd() *cobra.Command {
	var req model.SignupRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create the local account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := c.app.Sessions.SignupAsync(cmd.Context(), req).Wait(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signup successful for %s. You can now log in.\n", user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (8+ characters)")

	return cmd
}

func (c *cli) loginCmd() *cobra.Command {
	var req model.LoginRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the local account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := c.app.Sessions.LoginAsync(cmd.Context(), req).Wait(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s!\n", user.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password")

	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Sessions.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "You've been logged out.")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, ok, err := c.app.Sessions.Restore(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, "Not logged in.")
				return nil
			}

			lastLogin, err := c.app.Sessions.LastLogin(cmd.Context())
			if err != nil {
				return err
			}
			if lastLogin == "" {
				lastLogin = "N/A"
			}
			fmt.Fprintf(out, "Name:        %s\n", user.Name)
			fmt.Fprintf(out, "Email:       %s\n", user.Email)
			fmt.Fprintf(out, "Member since %s\n", user.SignupDate)
			fmt.Fprintf(out, "Last login:  %s\n", lastLogin)
			return nil
		},
	}
}

func (c *cli) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the profile",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "rename [name]",
		Short: "Change the display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireLogin(cmd.Context()); err != nil {
				return err
			}
			user, err := c.app.Sessions.UpdateProfileNameAsync(cmd.Context(), args[0]).Wait(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile updated: %s\n", user.Name)
			return nil
		},
	})

	return cmd
}
