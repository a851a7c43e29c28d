package cli

import (
	"fmt"
	"time"

	"github.com/TWRT/task-tracker/internal/models"
	"github.com/TWRT/task-tracker/internal/service"
	"github.com/spf13/cobra"
)

func (c *CLI) newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		c.newTaskAddCmd(),
		c.newTaskListCmd(),
		c.newTaskShowCmd(),
		c.newTaskEditCmd(),
		c.newTaskStatusCmd(),
		c.newTaskAssignCmd(),
		c.newTaskAutoAssignCmd(),
		c.newTaskUnassignCmd(),
		c.newTaskDeleteCmd(),
	)

	return cmd
}

func (c *CLI) newTaskAddCmd() *cobra.Command {
	var (
		title       string
		description string
		due         string
		priority    string
		assignee    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prio, err := models.ParsePriority(priority)
			if err != nil {
				return err
			}

			var assigneeId *int64
			if assignee != "" {
				member, err := c.members.GetByName(assignee)
				if err != nil {
					return err
				}
				assigneeId = &member.Id
			}

			id, err := c.tasks.Add(title, description, due, prio, assigneeId)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%stask added with id %d\n", c.check(), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "task title (required)")
	cmd.Flags().StringVar(&description, "description", "", "task description")
	cmd.Flags().StringVar(&due, "due", "", "due date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&priority, "priority", "medium", "low, medium or high")
	cmd.Flags().StringVar(&assignee, "assignee", "", "member name to assign")

	return cmd
}

func (c *CLI) newTaskListCmd() *cobra.Command {
	var (
		status   string
		assignee string
		priority string
		dueFrom  string
		dueTo    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter models.TaskFilter

			if status != "" {
				st, err := models.ParseStatus(status)
				if err != nil {
					return err
				}
				filter.Status = &st
			}
			if assignee != "" {
				member, err := c.members.GetByName(assignee)
				if err != nil {
					return err
				}
				filter.AssigneeId = &member.Id
			}
			if priority != "" {
				prio, err := models.ParsePriority(priority)
				if err != nil {
					return err
				}
				filter.Priority = &prio
			}
			if dueFrom != "" {
				from, err := parseDateFlag("due-from", dueFrom)
				if err != nil {
					return err
				}
				filter.DueFrom = &from
			}
			if dueTo != "" {
				to, err := parseDateFlag("due-to", dueTo)
				if err != nil {
					return err
				}
				filter.DueTo = &to
			}

			tasks, err := c.tasks.List(filter)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no tasks found")
				return nil
			}

			names, err := c.memberNames()
			if err != nil {
				return err
			}
			for _, task := range tasks {
				c.printTask(cmd.OutOrStdout(), task, names)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (open, in_progress, done)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "filter by member name")
	cmd.Flags().StringVar(&priority, "priority", "", "filter by priority")
	cmd.Flags().StringVar(&dueFrom, "due-from", "", "earliest due date, YYYY-MM-DD")
	cmd.Flags().StringVar(&dueTo, "due-to", "", "latest due date, YYYY-MM-DD")

	return cmd
}

func (c *CLI) newTaskShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseId(args[0])
			if err != nil {
				return err
			}

			task, err := c.tasks.Get(id)
			if err != nil {
				return err
			}

			names, err := c.memberNames()
			if err != nil {
				return err
			}

			c.printTask(cmd.OutOrStdout(), task, names)
			if task.Description != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", task.Description)
			}
			return nil
		},
	}
}

func (c *CLI) newTaskEditCmd() *cobra.Command {
	var (
		title       string
		description string
		due         string
		priority    string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseId(args[0])
			if err != nil {
				return err
			}

			var update service.TaskUpdate
			if cmd.Flags().Changed("title") {
				update.Title = &title
			}
			if cmd.Flags().Changed("description") {
				update.Description = &description
			}
			if cmd.Flags().Changed("due") {
				update.DueDate = &due
			}
			if cmd.Flags().Changed("priority") {
				prio, err := models.ParsePriority(priority)
				if err != nil {
					return err
				}
				update.Priority = &prio
			}

			if err := c.tasks.Update(id, update); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%stask %d updated\n", c.check(), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&due, "due", "", "new due date, YYYY-MM-DD")
	cmd.Flags().StringVar(&priority, "priority", "", "new priority")

	return cmd
}

func (c *CLI) newTaskStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <open|in_progress|done>",
		Short: "Move a task through its lifecycle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseId(args[0])
			if err != nil {
				return err
			}
			status, err := models.ParseStatus(args[1])
			if err != nil {
				return err
			}

			if err := c.tasks.UpdateStatus(id, status); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%stask %d is now %s\n", c.check(), id, status)
			return nil
		},
	}
}

func (c *CLI) newTaskAssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <id> <member>",
		Short: "Assign a task to a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseId(args[0])
			if err != nil {
				return err
			}
			member, err := c.members.GetByName(args[1])
			if err != nil {
				return err
			}

			if err := c.tasks.Assign(id, member.Id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%stask %d assigned to %s\n", c.check(), id, member.Name)
			return nil
		},
	}
}

func (c *CLI) newTaskAutoAssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auto-assign <id>",
		Short: "Assign a task to the least-loaded member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseId(args[0])
			if err != nil {
				return err
			}

			member, err := c.tasks.AutoAssign(id)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%stask %d assigned to %s\n", c.check(), id, member.Name)
			return nil
		},
	}
}

func (c *CLI) newTaskUnassignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <id>",
		Short: "Remove a task's assignee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseId(args[0])
			if err != nil {
				return err
			}

			if err := c.tasks.Unassign(id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%stask %d unassigned\n", c.check(), id)
			return nil
		},
	}
}

func (c *CLI) newTaskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseId(args[0])
			if err != nil {
				return err
			}

			if err := c.tasks.Delete(id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%stask %d deleted\n", c.check(), id)
			return nil
		},
	}
}

func parseDateFlag(name, value string) (time.Time, error) {
	t, err := time.Parse(service.DueDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: --%s %q is not in YYYY-MM-DD form", models.ErrValidation, name, value)
	}
	return t, nil
}
