package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/TWRT/task-tracker/internal/config"
	"github.com/TWRT/task-tracker/internal/models"
	"github.com/TWRT/task-tracker/internal/service"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type CLI struct {
	tasks     *service.TaskService
	members   *service.MemberService
	reports   *service.ReportService
	reminders *service.ReminderService
	cfg       *config.Config
	decorated bool
}

func New(
	tasks *service.TaskService,
	members *service.MemberService,
	reports *service.ReportService,
	reminders *service.ReminderService,
	cfg *config.Config,
) *CLI {
	return &CLI{
		tasks:     tasks,
		members:   members,
		reports:   reports,
		reminders: reminders,
		cfg:       cfg,
		decorated: isatty.IsTerminal(os.Stdout.Fd()),
	}
}

func (c *CLI) NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "task-tracker",
		Short:         "Track tasks, team workload and deadline reminders",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		c.newTaskCmd(),
		c.newMemberCmd(),
		c.newReportCmd(),
		c.newRemindCmd(),
	)

	return root
}

// check mirrors the ✅ prefix the tool prints on a terminal; plain output
// stays clean for pipes.
func (c *CLI) check() string {
	if c.decorated {
		return "✅ "
	}
	return ""
}

func (c *CLI) printTask(w io.Writer, task models.Task, memberNames map[int64]string) {
	assignee := "unassigned"
	if task.AssigneeId != nil {
		if name, ok := memberNames[*task.AssigneeId]; ok {
			assignee = name
		} else {
			assignee = fmt.Sprintf("member %d", *task.AssigneeId)
		}
	}

	fmt.Fprintf(w, "#%d [%s] %s (%s) — due %s (%s), %s\n",
		task.Id,
		task.Status,
		task.Title,
		task.Priority,
		task.DueDate.Format(service.DueDateLayout),
		humanize.Time(task.DueDate),
		assignee,
	)
}

func (c *CLI) memberNames() (map[int64]string, error) {
	members, err := c.members.List()
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(members))
	for _, m := range members {
		names[m.Id] = m.Name
	}
	return names, nil
}

func parseId(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a task id", models.ErrValidation, arg)
	}
	return id, nil
}
