package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newMemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage team members",
	}

	cmd.AddCommand(
		c.newMemberAddCmd(),
		c.newMemberListCmd(),
		c.newMemberWorkloadCmd(),
		c.newMemberTodoCmd(),
		c.newMemberDeleteCmd(),
	)

	return cmd
}

func (c *CLI) newMemberAddCmd() *cobra.Command {
	var (
		name  string
		email string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a team member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := c.members.Add(name, email)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%smember %s added with id %d\n", c.check(), name, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "member name (required)")
	cmd.Flags().StringVar(&email, "email", "", "member email, used for reminders")

	return cmd
}

func (c *CLI) newMemberListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List team members and their workload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := c.members.List()
			if err != nil {
				return err
			}
			if len(members) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no members yet")
				return nil
			}

			for _, m := range members {
				workload, err := c.members.Workload(m.Id)
				if err != nil {
					return err
				}
				email := m.Email
				if email == "" {
					email = "no email"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "#%d %s (%s) — %d open tasks\n", m.Id, m.Name, email, workload)
			}
			return nil
		},
	}
}

func (c *CLI) newMemberWorkloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "workload <member>",
		Short: "Show how many unfinished tasks a member has",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			member, err := c.members.GetByName(args[0])
			if err != nil {
				return err
			}

			workload, err := c.members.Workload(member.Id)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s has %d open tasks\n", member.Name, workload)
			return nil
		},
	}
}

func (c *CLI) newMemberTodoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "todo <member>",
		Short: "Print a member's to-do list, highest priority first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			member, err := c.members.GetByName(args[0])
			if err != nil {
				return err
			}

			todo, err := c.members.TodoList(member.Id)
			if err != nil {
				return err
			}
			if len(todo) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s has nothing to do\n", member.Name)
				return nil
			}

			names, err := c.memberNames()
			if err != nil {
				return err
			}
			for _, task := range todo {
				c.printTask(cmd.OutOrStdout(), task, names)
			}
			return nil
		},
	}
}

func (c *CLI) newMemberDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <member>",
		Short: "Delete a member with no assigned tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			member, err := c.members.GetByName(args[0])
			if err != nil {
				return err
			}

			if err := c.members.Delete(member.Id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%smember %s deleted\n", c.check(), member.Name)
			return nil
		},
	}
}
