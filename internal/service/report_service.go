package service

import (
	"time"

	"github.com/TWRT/task-tracker/internal/models"
	"github.com/TWRT/task-tracker/internal/repository"
)

type ReportService struct {
	taskRepo   *repository.TaskRepository
	memberRepo *repository.MemberRepository
	now        func() time.Time
}

func NewReportService(taskRepo *repository.TaskRepository, memberRepo *repository.MemberRepository) *ReportService {
	return &ReportService{
		taskRepo:   taskRepo,
		memberRepo: memberRepo,
		now:        time.Now,
	}
}

// Generate aggregates the current store state. It reads everything once and
// has no side effects, so two calls against the same state produce the same
// report.
func (s *ReportService) Generate() (models.Report, error) {
	tasks, err := s.taskRepo.List(models.TaskFilter{})
	if err != nil {
		return models.Report{}, err
	}
	members, err := s.memberRepo.List()
	if err != nil {
		return models.Report{}, err
	}

	today := dateOnly(s.now())

	report := models.Report{
		TotalTasks: len(tasks),
		ByStatus:   make(map[models.Status]int),
		ByAssignee: make(map[int64]int),
	}

	per := make(map[int64]*models.MemberProductivity, len(members))
	for _, m := range members {
		per[m.Id] = &models.MemberProductivity{MemberId: m.Id, MemberName: m.Name}
	}

	for _, t := range tasks {
		report.ByStatus[t.Status]++

		if t.Status != models.StatusDone && t.DueDate.Before(today) {
			report.Overdue = append(report.Overdue, t)
		}

		if t.AssigneeId == nil {
			continue
		}
		report.ByAssignee[*t.AssigneeId]++

		p, ok := per[*t.AssigneeId]
		if !ok {
			continue
		}
		p.TotalTasks++
		if t.Status == models.StatusDone {
			p.CompletedTasks++
		} else {
			p.Workload++
		}
	}

	for _, m := range members {
		p := per[m.Id]
		if p.TotalTasks > 0 {
			p.CompletionRate = float64(p.CompletedTasks) / float64(p.TotalTasks)
		}
		report.Productivity = append(report.Productivity, *p)
	}

	return report, nil
}
