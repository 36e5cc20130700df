package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/taskdesk/taskdesk-go/internal/app"
	"github.com/taskdesk/taskdesk-go/internal/config"
	"github.com/taskdesk/taskdesk-go/internal/service"
)

var Version = "dev"

// opener builds the App a command runs against.
type opener func(ctx context.Context, driver, dsn string) (*app.App, error)

type cli struct {
	driver string
	dsn    string
	open   opener
	app    *app.App
}

func main() {
	// A missing .env is normal for a CLI; a broken one is worth a warning.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("reading .env failed", "error", err)
	}
	cfg := config.Load()

	open := func(ctx context.Context, driver, dsn string) (*app.App, error) {
		return app.Open(ctx, driver, dsn, service.Options{
			Latency:     cfg.Latency,
			DeleteGrace: cfg.DeleteGrace,
		})
	}

	rootCmd, c := newRootCmd(cfg, open)
	if err := c.execute(rootCmd); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config, open opener) (*cobra.Command, *cli) {
	c := &cli{open: open}

	rootCmd := &cobra.Command{
		Use:           "taskdesk",
		Short:         "taskdesk - a personal task list with a local login",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd.Context(), c.driver, c.dsn)
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.driver, "driver", cfg.StoreDriver, "Store driver (sqlite3, mysql, memory)")
	rootCmd.PersistentFlags().StringVar(&c.dsn, "db", cfg.StoreDSN, "Store DSN or sqlite file path")

	rootCmd.AddCommand(c.signupCmd())
	rootCmd.AddCommand(c.loginCmd())
	rootCmd.AddCommand(c.logoutCmd())
	rootCmd.AddCommand(c.whoamiCmd())
	rootCmd.AddCommand(c.profileCmd())
	rootCmd.AddCommand(c.taskCmd())
	rootCmd.AddCommand(c.themeCmd())
	rootCmd.AddCommand(c.filterCmd())

	return rootCmd, c
}

// execute runs the command tree and releases the store afterwards, including
// when the command failed.
func (c *cli) execute(rootCmd *cobra.Command) error {
	err := rootCmd.Execute()
	if c.app != nil {
		if closeErr := c.app.Close(); err == nil {
			err = closeErr
		}
		c.app = nil
	}
	return err
}

// requireLogin fails unless a session is active.
func (c *cli) requireLogin(ctx context.Context) error {
	if _, err := c.app.Sessions.Current(ctx); err != nil {
		return fmt.Errorf("%w: run `taskdesk login` first", err)
	}
	return nil
}
