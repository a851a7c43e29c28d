package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newRemindCmd() *cobra.Command {
	var (
		window int
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Email reminders for tasks nearing their due date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun {
				tasks, err := c.reminders.DueSoon(window)
				if err != nil {
					return err
				}
				if len(tasks) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "nothing due soon")
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
			}

			if !c.cfg.EmailConfigured() {
				return fmt.Errorf("email is not configured: set SMTP_HOST, SMTP_USERNAME, SMTP_PASSWORD and SMTP_FROM")
			}

			sent, err := c.reminders.SendReminders(window)
			fmt.Fprintf(cmd.OutOrStdout(), "%s%d reminders sent\n", c.check(), sent)
			return err
		},
	}

	cmd.Flags().IntVar(&window, "window", c.cfg.ReminderWindowDays, "days ahead to look for due tasks")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list due tasks without sending mail")

	return cmd
}
