package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/TWRT/task-tracker/internal/models"
	"github.com/TWRT/task-tracker/internal/repository"
)

type MemberService struct {
	memberRepo *repository.MemberRepository
	taskRepo   *repository.TaskRepository
}

func NewMemberService(memberRepo *repository.MemberRepository, taskRepo *repository.TaskRepository) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		taskRepo:   taskRepo,
	}
}

func (s *MemberService) Add(name, email string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: name is required", models.ErrValidation)
	}

	if _, err := s.memberRepo.GetByName(name); err == nil {
		return 0, fmt.Errorf("%w: member %q already exists", models.ErrValidation, name)
	} else if !errors.Is(err, models.ErrNotFound) {
		return 0, err
	}

	return s.memberRepo.Create(&models.Member{Name: name, Email: strings.TrimSpace(email)})
}

func (s *MemberService) Get(id int64) (models.Member, error) {
	return s.memberRepo.Get(id)
}

func (s *MemberService) GetByName(name string) (models.Member, error) {
	return s.memberRepo.GetByName(name)
}

func (s *MemberService) List() ([]models.Member, error) {
	return s.memberRepo.List()
}

// Workload is always derived from task rows, never cached.
func (s *MemberService) Workload(id int64) (int, error) {
	if _, err := s.memberRepo.Get(id); err != nil {
		return 0, err
	}
	return s.taskRepo.CountOpenByAssignee(id)
}

// Delete refuses while any task, done or not, still references the member.
func (s *MemberService) Delete(id int64) error {
	if _, err := s.memberRepo.Get(id); err != nil {
		return err
	}

	count, err := s.taskRepo.CountByAssignee(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: member %d still has %d assigned tasks", models.ErrValidation, id, count)
	}

	return s.memberRepo.Delete(id)
}

// TodoList returns the member's unfinished tasks, highest priority first,
// earliest due date breaking ties.
func (s *MemberService) TodoList(id int64) ([]models.Task, error) {
	if _, err := s.memberRepo.Get(id); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.List(models.TaskFilter{AssigneeId: &id})
	if err != nil {
		return nil, err
	}

	var todo []models.Task
	for _, t := range tasks {
		if t.Status != models.StatusDone {
			todo = append(todo, t)
		}
	}

	sort.Slice(todo, func(i, j int) bool {
		if todo[i].Priority != todo[j].Priority {
			return todo[i].Priority > todo[j].Priority
		}
		if !todo[i].DueDate.Equal(todo[j].DueDate) {
			return todo[i].DueDate.Before(todo[j].DueDate)
		}
		return todo[i].Id < todo[j].Id
	})

	return todo, nil
}
