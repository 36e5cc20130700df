package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme [light|dark]",
		Short: "Show or set the display theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				theme, err := c.app.Preferences.Theme(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), theme)
				return nil
			}

			theme, err := c.app.Preferences.SetTheme(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme switched to %s mode.\n", theme)
			return nil
		},
	}
}

func (c *cli) filterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filter [all|active|completed]",
		Short: "Show or set the default task filter",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				filter, err := c.app.Preferences.Filter(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), filter)
				return nil
			}

			filter, err := c.app.Preferences.SetFilter(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task filter set to %s.\n", filter)
			return nil
		},
	}
}
