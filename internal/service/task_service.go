package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/TWRT/task-tracker/internal/models"
	"github.com/TWRT/task-tracker/internal/repository"
)

const DueDateLayout = "2006-01-02"

type TaskService struct {
	taskRepo   *repository.TaskRepository
	memberRepo *repository.MemberRepository
	now        func() time.Time
}

func NewTaskService(taskRepo *repository.TaskRepository, memberRepo *repository.MemberRepository) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		memberRepo: memberRepo,
		now:        time.Now,
	}
}

type TaskUpdate struct {
	Title       *string
	Description *string
	DueDate     *string
	Priority    *models.Priority
}

func (s *TaskService) Add(title, description, dueDate string, priority models.Priority, assigneeId *int64) (int64, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, fmt.Errorf("%w: title is required", models.ErrValidation)
	}

	due, err := parseDueDate(dueDate)
	if err != nil {
		return 0, err
	}

	if priority < models.PriorityLow || priority > models.PriorityHigh {
		return 0, fmt.Errorf("%w: priority %d out of range", models.ErrValidation, priority)
	}

	if assigneeId != nil {
		if _, err := s.memberRepo.Get(*assigneeId); err != nil {
			return 0, err
		}
	}

	task := &models.Task{
		Title:       title,
		Description: description,
		DueDate:     due,
		Priority:    priority,
		Status:      models.StatusOpen,
		AssigneeId:  assigneeId,
		CreatedAt:   s.now().UTC().Truncate(time.Second),
	}

	return s.taskRepo.Create(task)
}

func (s *TaskService) Get(id int64) (models.Task, error) {
	return s.taskRepo.Get(id)
}

func (s *TaskService) List(filter models.TaskFilter) ([]models.Task, error) {
	return s.taskRepo.List(filter)
}

func (s *TaskService) Delete(id int64) error {
	return s.taskRepo.Delete(id)
}

func (s *TaskService) Update(id int64, update TaskUpdate) error {
	task, err := s.taskRepo.Get(id)
	if err != nil {
		return err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return fmt.Errorf("%w: title is required", models.ErrValidation)
		}
		task.Title = title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.DueDate != nil {
		due, err := parseDueDate(*update.DueDate)
		if err != nil {
			return err
		}
		task.DueDate = due
	}
	if update.Priority != nil {
		if *update.Priority < models.PriorityLow || *update.Priority > models.PriorityHigh {
			return fmt.Errorf("%w: priority %d out of range", models.ErrValidation, *update.Priority)
		}
		task.Priority = *update.Priority
	}

	return s.taskRepo.Update(&task)
}

// UpdateStatus enforces the forward-only lifecycle. Re-setting the current
// status is a no-op rather than an error.
func (s *TaskService) UpdateStatus(id int64, next models.Status) error {
	task, err := s.taskRepo.Get(id)
	if err != nil {
		return err
	}

	if task.Status == next {
		return nil
	}
	if !task.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, task.Status, next)
	}

	task.Status = next
	return s.taskRepo.Update(&task)
}

func (s *TaskService) Assign(id, memberId int64) error {
	task, err := s.taskRepo.Get(id)
	if err != nil {
		return err
	}
	if _, err := s.memberRepo.Get(memberId); err != nil {
		return err
	}

	task.AssigneeId = &memberId
	return s.taskRepo.Update(&task)
}

func (s *TaskService) Unassign(id int64) error {
	task, err := s.taskRepo.Get(id)
	if err != nil {
		return err
	}

	task.AssigneeId = nil
	return s.taskRepo.Update(&task)
}

// AutoAssign hands the task to the member with the fewest non-done tasks.
// Ties go to the member created first.
func (s *TaskService) AutoAssign(id int64) (models.Member, error) {
	task, err := s.taskRepo.Get(id)
	if err != nil {
		return models.Member{}, err
	}

	members, err := s.memberRepo.List()
	if err != nil {
		return models.Member{}, err
	}
	if len(members) == 0 {
		return models.Member{}, fmt.Errorf("%w: no members to assign", models.ErrNotFound)
	}

	var best models.Member
	bestLoad := -1
	for _, m := range members {
		load, err := s.taskRepo.CountOpenByAssignee(m.Id)
		if err != nil {
			return models.Member{}, err
		}
		if bestLoad == -1 || load < bestLoad {
			best = m
			bestLoad = load
		}
	}

	task.AssigneeId = &best.Id
	if err := s.taskRepo.Update(&task); err != nil {
		return models.Member{}, err
	}

	return best, nil
}

func parseDueDate(value string) (time.Time, error) {
	due, err := time.Parse(DueDateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: due date %q is not in YYYY-MM-DD form", models.ErrValidation, value)
	}
	return due, nil
}

// dateOnly truncates to a calendar date in UTC, matching how due dates are
// stored.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
