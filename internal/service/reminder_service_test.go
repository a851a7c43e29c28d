package service

import (
	"errors"
	"testing"
	"time"

	"github.com/TWRT/task-tracker/internal/models"
)

type fakeMailer struct {
	sent   []string
	failTo map[string]bool
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.failTo[to] {
		return errors.New("smtp said no")
	}
	m.sent = append(m.sent, to)
	return nil
}

func TestDueSoonWindow(t *testing.T) {
	taskRepo, memberRepo := newTestRepos(t)
	tasks := NewTaskService(taskRepo, memberRepo)
	reminders := NewReminderService(taskRepo, memberRepo, &fakeMailer{})

	if _, err := tasks.Add("Write spec", "", "2024-01-10", models.PriorityMedium, nil); err != nil {
		t.Fatalf("add: %v", err)
	}

	reminders.now = fixedClock(2024, time.January, 8)
	due, err := reminders.DueSoon(5)
	if err != nil {
		t.Fatalf("due soon: %v", err)
	}
	if len(due) != 1 || due[0].Title != "Write spec" {
		t.Fatalf("got %v, want the one task", due)
	}

	reminders.now = fixedClock(2024, time.January, 20)
	due, err = reminders.DueSoon(5)
	if err != nil {
		t.Fatalf("due soon: %v", err)
	}
	if len(due) != 0 {
		t.Fatalf("got %d tasks, want none", len(due))
	}
}

func TestDueSoonOrderAndDoneExclusion(t *testing.T) {
	taskRepo, memberRepo := newTestRepos(t)
	tasks := NewTaskService(taskRepo, memberRepo)
	reminders := NewReminderService(taskRepo, memberRepo, &fakeMailer{})
	reminders.now = fixedClock(2024, time.January, 8)

	laterId, err := tasks.Add("later", "", "2024-01-12", models.PriorityLow, nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	soonId, err := tasks.Add("soon", "", "2024-01-09", models.PriorityLow, nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	tieId, err := tasks.Add("tie", "", "2024-01-12", models.PriorityLow, nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	doneId, err := tasks.Add("done already", "", "2024-01-09", models.PriorityLow, nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := tasks.UpdateStatus(doneId, models.StatusDone); err != nil {
		t.Fatalf("done: %v", err)
	}

	due, err := reminders.DueSoon(7)
	if err != nil {
		t.Fatalf("due soon: %v", err)
	}

	var ids []int64
	for _, task := range due {
		if task.Status == models.StatusDone {
			t.Fatalf("done task %d leaked into due-soon", task.Id)
		}
		ids = append(ids, task.Id)
	}

	want := []int64{soonId, laterId, tieId}
	if len(ids) != len(want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("got %v, want %v", ids, want)
		}
	}
}

func TestSendRemindersPartialFailure(t *testing.T) {
	taskRepo, memberRepo := newTestRepos(t)
	tasks := NewTaskService(taskRepo, memberRepo)
	members := NewMemberService(memberRepo, taskRepo)

	mail := &fakeMailer{failTo: map[string]bool{"bob@example.com": true}}
	reminders := NewReminderService(taskRepo, memberRepo, mail)
	reminders.now = fixedClock(2024, time.January, 8)

	aliceId, err := members.Add("alice", "alice@example.com")
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	bobId, err := members.Add("bob", "bob@example.com")
	if err != nil {
		t.Fatalf("add member: %v", err)
	}

	if _, err := tasks.Add("for alice", "", "2024-01-09", models.PriorityLow, &aliceId); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := tasks.Add("for bob", "", "2024-01-09", models.PriorityLow, &bobId); err != nil {
		t.Fatalf("add: %v", err)
	}
	// no assignee, silently skipped
	if _, err := tasks.Add("unowned", "", "2024-01-09", models.PriorityLow, nil); err != nil {
		t.Fatalf("add: %v", err)
	}

	sent, err := reminders.SendReminders(2)
	if !errors.Is(err, models.ErrMailDelivery) {
		t.Fatalf("expected aggregated mail delivery error, got %v", err)
	}
	if sent != 1 {
		t.Fatalf("sent %d reminders, want 1", sent)
	}
	if len(mail.sent) != 1 || mail.sent[0] != "alice@example.com" {
		t.Fatalf("delivered to %v, want alice only", mail.sent)
	}
}

func TestSendRemindersAllGood(t *testing.T) {
	taskRepo, memberRepo := newTestRepos(t)
	tasks := NewTaskService(taskRepo, memberRepo)
	members := NewMemberService(memberRepo, taskRepo)

	mail := &fakeMailer{}
	reminders := NewReminderService(taskRepo, memberRepo, mail)
	reminders.now = fixedClock(2024, time.January, 8)

	aliceId, err := members.Add("alice", "alice@example.com")
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	if _, err := tasks.Add("for alice", "", "2024-01-10", models.PriorityLow, &aliceId); err != nil {
		t.Fatalf("add: %v", err)
	}

	sent, err := reminders.SendReminders(5)
	if err != nil {
		t.Fatalf("send reminders: %v", err)
	}
	if sent != 1 {
		t.Fatalf("sent %d, want 1", sent)
	}
}
