package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/TWRT/task-tracker/internal/mailer"
	"github.com/TWRT/task-tracker/internal/models"
	"github.com/TWRT/task-tracker/internal/repository"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type ReminderService struct {
	taskRepo   *repository.TaskRepository
	memberRepo *repository.MemberRepository
	mailer     mailer.Mailer
	now        func() time.Time
}

func NewReminderService(taskRepo *repository.TaskRepository, memberRepo *repository.MemberRepository, m mailer.Mailer) *ReminderService {
	return &ReminderService{
		taskRepo:   taskRepo,
		memberRepo: memberRepo,
		mailer:     m,
		now:        time.Now,
	}
}

// DueSoon returns unfinished tasks due within [today, today+windowDays],
// ordered by due date, then id.
func (s *ReminderService) DueSoon(windowDays int) ([]models.Task, error) {
	if windowDays < 0 {
		return nil, fmt.Errorf("%w: window must not be negative", models.ErrValidation)
	}

	today := dateOnly(s.now())
	until := today.AddDate(0, 0, windowDays)

	tasks, err := s.taskRepo.List(models.TaskFilter{DueFrom: &today, DueTo: &until})
	if err != nil {
		return nil, err
	}

	var due []models.Task
	for _, t := range tasks {
		if t.Status != models.StatusDone {
			due = append(due, t)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if !due[i].DueDate.Equal(due[j].DueDate) {
			return due[i].DueDate.Before(due[j].DueDate)
		}
		return due[i].Id < due[j].Id
	})

	return due, nil
}

// SendReminders mails one reminder per due-soon task.
func (s *ReminderService) SendReminders(windowDays int) (int, error) {
	tasks, err := s.DueSoon(windowDays)
	if err != nil {
		return 0, err
	}
	return s.Notify(tasks)
}

// Notify mails one reminder per task. A failed send is logged and does not
// stop the batch; failures come back aggregated in a single error after
// every task has been attempted. Returns the number of reminders actually
// sent.
func (s *ReminderService) Notify(tasks []models.Task) (int, error) {
	logger := log.WithField("batch_id", uuid.NewString())

	sent := 0
	var failures []string
	for _, task := range tasks {
		if task.AssigneeId == nil {
			logger.WithField("task_id", task.Id).Warn("task has no assignee, skipping reminder")
			continue
		}

		member, err := s.memberRepo.Get(*task.AssigneeId)
		if err != nil {
			logger.WithField("task_id", task.Id).WithError(err).Error("resolve reminder recipient")
			failures = append(failures, fmt.Sprintf("task %d: %v", task.Id, err))
			continue
		}
		if member.Email == "" {
			logger.WithFields(log.Fields{"task_id": task.Id, "member_id": member.Id}).Warn("member has no email, skipping reminder")
			continue
		}

		subject := fmt.Sprintf("Reminder: task %q due soon", task.Title)
		if err := s.mailer.Send(member.Email, subject, reminderBody(task, member)); err != nil {
			logger.WithFields(log.Fields{"task_id": task.Id, "to": member.Email}).WithError(err).Error("reminder delivery failed")
			failures = append(failures, fmt.Sprintf("task %d: %v", task.Id, err))
			continue
		}

		logger.WithFields(log.Fields{"task_id": task.Id, "to": member.Email}).Info("reminder sent")
		sent++
	}

	if len(failures) > 0 {
		return sent, fmt.Errorf("%w: %d of %d reminders failed (%s)",
			models.ErrMailDelivery, len(failures), len(tasks), strings.Join(failures, "; "))
	}

	return sent, nil
}

func reminderBody(task models.Task, member models.Member) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", member.Name)
	b.WriteString("This is a reminder that the following task is due soon:\n\n")
	fmt.Fprintf(&b, "Title: %s\n", task.Title)
	if task.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", task.Description)
	}
	fmt.Fprintf(&b, "Due date: %s\n", task.DueDate.Format(DueDateLayout))
	fmt.Fprintf(&b, "Priority: %s\n\n", task.Priority)
	b.WriteString("Please make sure it is completed on time.\n")
	return b.String()
}
