package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taskdesk/taskdesk-go/internal/model"
)

func (c *cli) taskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the task list",
	}

	cmd.AddCommand(c.taskAddCmd())
	cmd.AddCommand(c.taskListCmd())
	cmd.AddCommand(c.taskShowCmd())
	cmd.AddCommand(c.taskToggleCmd("done", "Toggle a task between active and completed", "completed"))
	cmd.AddCommand(c.taskToggleCmd("star", "Toggle the important flag of a task", "important"))
	cmd.AddCommand(c.taskRemoveCmd())

	return cmd
}

func (c *cli) taskAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [text...]",
		Short: "Add a task to the top of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireLogin(cmd.Context()); err != nil {
				return err
			}
			task, err := c.app.Tasks.AddTask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %d: %s\n", task.ID, task.Text)
			return nil
		},
	}
}

func (c *cli) taskListCmd() *cobra.Command {
	var (
		filter string
		search string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, important and newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := c.requireLogin(ctx); err != nil {
				return err
			}

			f := model.Filter(filter)
			if f == "" {
				stored, err := c.app.Preferences.Filter(ctx)
				if err != nil {
					return err
				}
				f = stored
			}

			tasks, err := c.app.Tasks.ListView(ctx, f, search)
			if err != nil {
				return err
			}
			counts, err := c.app.Tasks.Counts(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(model.TaskListResponse{Filter: f, Search: search, Tasks: tasks, Counts: counts})
			}
			printTasks(out, tasks)
			fmt.Fprintf(out, "%d active, %d completed, %d total (%d%% done)\n",
				counts.Active, counts.Completed, counts.Total, counts.Progress)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "all, active or completed (default: saved filter)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only tasks containing this text")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")

	return cmd
}

func printTasks(out io.Writer, tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks.")
		return
	}
	for _, t := range tasks {
		done, star := " ", " "
		if t.Completed {
			done = "x"
		}
		if t.Important {
			star = "!"
		}
		fmt.Fprintf(out, "[%s] %s %d  %s\n", done, star, t.ID, t.Text)
	}
}

func (c *cli) taskShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a single task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			if err := c.requireLogin(cmd.Context()); err != nil {
				return err
			}
			task, err := c.app.Tasks.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(task)
		},
	}
}

func (c *cli) taskToggleCmd(use, short, flag string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			if err := c.requireLogin(cmd.Context()); err != nil {
				return err
			}

			var task model.Task
			var on bool
			if flag == "completed" {
				task, err = c.app.Tasks.ToggleComplete(cmd.Context(), id)
				on = task.Completed
			} else {
				task, err = c.app.Tasks.ToggleImportant(cmd.Context(), id)
				on = task.Important
			}
			if err != nil {
				return err
			}

			state := flag
			if !on {
				state = "not " + flag
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %q marked %s.\n", task.Text, state)
			return nil
		},
	}
}

func (c *cli) taskRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			if err := c.requireLogin(cmd.Context()); err != nil {
				return err
			}

			pending, err := c.app.Tasks.DeleteTask(cmd.Context(), id)
			if err != nil {
				return err
			}
			// The process must outlive the grace window for the removal to land.
			task, err := pending.Wait(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %q deleted.\n", task.Text)
			return nil
		},
	}
}

func parseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}
