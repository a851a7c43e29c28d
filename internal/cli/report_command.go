package cli

import (
	"fmt"

	"github.com/TWRT/task-tracker/internal/models"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func (c *CLI) newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Summarize tasks, overdue work and team productivity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.reports.Generate()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Total tasks: %d\n", report.TotalTasks)
			for _, status := range []models.Status{models.StatusOpen, models.StatusInProgress, models.StatusDone} {
				fmt.Fprintf(out, "  %-12s %d\n", status, report.ByStatus[status])
			}

			if len(report.Overdue) > 0 {
				names, err := c.memberNames()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\nOverdue (%d):\n", len(report.Overdue))
				for _, task := range report.Overdue {
					fmt.Fprint(out, "  ")
					c.printTask(out, task, names)
				}
			}

			if len(report.Productivity) > 0 {
				fmt.Fprintln(out, "\nTeam:")
				for _, p := range report.Productivity {
					fmt.Fprintf(out, "  %s: %d/%d done (%s), %d in flight\n",
						p.MemberName,
						p.CompletedTasks,
						p.TotalTasks,
						humanize.FtoaWithDigits(p.CompletionRate*100, 1)+"%",
						p.Workload,
					)
				}
			}

			return nil
		},
	}
}
