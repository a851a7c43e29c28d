package service

import (
	"errors"
	"testing"

	"github.com/TWRT/task-tracker/internal/models"
)

func TestMemberAddValidation(t *testing.T) {
	taskRepo, memberRepo := newTestRepos(t)
	svc := NewMemberService(memberRepo, taskRepo)

	if _, err := svc.Add("  ", ""); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("empty name: expected validation error, got %v", err)
	}

	if _, err := svc.Add("erin", "erin@example.com"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add("erin", "other@example.com"); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("duplicate name: expected validation error, got %v", err)
	}
}

func TestWorkloadCountsNonDoneTasks(t *testing.T) {
	taskRepo, memberRepo := newTestRepos(t)
	members := NewMemberService(memberRepo, taskRepo)
	tasks := NewTaskService(taskRepo, memberRepo)

	id, err := members.Add("frank", "")
	if err != nil {
		t.Fatalf("add member: %v", err)
	}

	var taskIds []int64
	for i := 0; i < 3; i++ {
		taskId, err := tasks.Add("work", "", "2024-06-01", models.PriorityLow, &id)
		if err != nil {
			t.Fatalf("add task: %v", err)
		}
		taskIds = append(taskIds, taskId)
	}

	if err := tasks.UpdateStatus(taskIds[0], models.StatusDone); err != nil {
		t.Fatalf("complete task: %v", err)
	}

	workload, err := members.Workload(id)
	if err != nil {
		t.Fatalf("workload: %v", err)
	}
	if workload != 2 {
		t.Fatalf("got workload %d, want 2", workload)
	}

	if _, err := members.Workload(999); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("unknown member: expected not found, got %v", err)
	}
}

func TestMemberDeleteGuard(t *testing.T) {
	taskRepo, memberRepo := newTestRepos(t)
	members := NewMemberService(memberRepo, taskRepo)
	tasks := NewTaskService(taskRepo, memberRepo)

	id, err := members.Add("grace", "")
	if err != nil {
		t.Fatalf("add member: %v", err)
	}

	taskId, err := tasks.Add("blocker", "", "2024-06-01", models.PriorityLow, &id)
	if err != nil {
		t.Fatalf("add task: %v", err)
	}

	if err := members.Delete(id); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("delete with tasks: expected validation error, got %v", err)
	}

	// completing is not enough, the reference must go away
	if err := tasks.UpdateStatus(taskId, models.StatusDone); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := members.Delete(id); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("delete with done task: expected validation error, got %v", err)
	}

	if err := tasks.Delete(taskId); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if err := members.Delete(id); err != nil {
		t.Fatalf("delete member: %v", err)
	}
}

func TestTodoListOrdering(t *testing.T) {
	taskRepo, memberRepo := newTestRepos(t)
	members := NewMemberService(memberRepo, taskRepo)
	tasks := NewTaskService(taskRepo, memberRepo)

	id, err := members.Add("heidi", "")
	if err != nil {
		t.Fatalf("add member: %v", err)
	}

	if _, err := tasks.Add("low", "", "2024-06-01", models.PriorityLow, &id); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := tasks.Add("high late", "", "2024-06-10", models.PriorityHigh, &id); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := tasks.Add("high early", "", "2024-06-05", models.PriorityHigh, &id); err != nil {
		t.Fatalf("add: %v", err)
	}
	doneId, err := tasks.Add("finished", "", "2024-06-02", models.PriorityHigh, &id)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := tasks.UpdateStatus(doneId, models.StatusDone); err != nil {
		t.Fatalf("complete: %v", err)
	}

	todo, err := members.TodoList(id)
	if err != nil {
		t.Fatalf("todo list: %v", err)
	}

	var titles []string
	for _, task := range todo {
		titles = append(titles, task.Title)
	}
	want := []string{"high early", "high late", "low"}
	if len(titles) != len(want) {
		t.Fatalf("got %v, want %v", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("got %v, want %v", titles, want)
		}
	}
}
