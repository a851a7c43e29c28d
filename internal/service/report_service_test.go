package service

import (
	"testing"
	"time"

	"github.com/TWRT/task-tracker/internal/models"
)

func TestReportTotalsMatchStatusCounts(t *testing.T) {
	taskRepo, memberRepo := newTestRepos(t)
	tasks := NewTaskService(taskRepo, memberRepo)
	reports := NewReportService(taskRepo, memberRepo)
	reports.now = fixedClock(2024, time.January, 8)

	if _, err := tasks.Add("open task", "", "2024-01-10", models.PriorityLow, nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	progressId, err := tasks.Add("busy task", "", "2024-01-12", models.PriorityLow, nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := tasks.UpdateStatus(progressId, models.StatusInProgress); err != nil {
		t.Fatalf("progress: %v", err)
	}
	doneId, err := tasks.Add("done task", "", "2024-01-05", models.PriorityLow, nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := tasks.UpdateStatus(doneId, models.StatusDone); err != nil {
		t.Fatalf("done: %v", err)
	}

	report, err := reports.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	sum := 0
	for _, n := range report.ByStatus {
		sum += n
	}
	if report.TotalTasks != sum {
		t.Fatalf("total %d != sum of status counts %d", report.TotalTasks, sum)
	}
	if report.TotalTasks != 3 {
		t.Fatalf("got %d tasks, want 3", report.TotalTasks)
	}
}

func TestReportOverdue(t *testing.T) {
	taskRepo, memberRepo := newTestRepos(t)
	tasks := NewTaskService(taskRepo, memberRepo)
	reports := NewReportService(taskRepo, memberRepo)
	reports.now = fixedClock(2024, time.January, 8)

	lateId, err := tasks.Add("late", "", "2024-01-01", models.PriorityHigh, nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := tasks.Add("on time", "", "2024-01-08", models.PriorityLow, nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	finishedId, err := tasks.Add("late but done", "", "2024-01-02", models.PriorityLow, nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := tasks.UpdateStatus(finishedId, models.StatusDone); err != nil {
		t.Fatalf("done: %v", err)
	}

	report, err := reports.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(report.Overdue) != 1 {
		t.Fatalf("got %d overdue tasks, want 1", len(report.Overdue))
	}
	if report.Overdue[0].Id != lateId {
		t.Fatalf("overdue task %d, want %d", report.Overdue[0].Id, lateId)
	}
}

func TestReportProductivity(t *testing.T) {
	taskRepo, memberRepo := newTestRepos(t)
	tasks := NewTaskService(taskRepo, memberRepo)
	members := NewMemberService(memberRepo, taskRepo)
	reports := NewReportService(taskRepo, memberRepo)
	reports.now = fixedClock(2024, time.January, 8)

	aliceId, err := members.Add("alice", "alice@example.com")
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	if _, err := members.Add("idle", ""); err != nil {
		t.Fatalf("add member: %v", err)
	}

	doneId, err := tasks.Add("shipped", "", "2024-01-05", models.PriorityLow, &aliceId)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := tasks.UpdateStatus(doneId, models.StatusDone); err != nil {
		t.Fatalf("done: %v", err)
	}
	if _, err := tasks.Add("pending", "", "2024-01-20", models.PriorityLow, &aliceId); err != nil {
		t.Fatalf("add: %v", err)
	}

	report, err := reports.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(report.Productivity) != 2 {
		t.Fatalf("got %d productivity rows, want 2", len(report.Productivity))
	}

	alice := report.Productivity[0]
	if alice.MemberName != "alice" {
		t.Fatalf("rows not in member order: %+v", report.Productivity)
	}
	if alice.CompletedTasks != 1 || alice.TotalTasks != 2 || alice.Workload != 1 {
		t.Fatalf("alice stats wrong: %+v", alice)
	}
	if alice.CompletionRate != 0.5 {
		t.Fatalf("completion rate %v, want 0.5", alice.CompletionRate)
	}

	idle := report.Productivity[1]
	if idle.TotalTasks != 0 || idle.CompletionRate != 0 {
		t.Fatalf("idle member should have zero stats: %+v", idle)
	}
}
