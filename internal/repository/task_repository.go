package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/TWRT/task-tracker/internal/models"
)

// Dates are stored as text so round-trips stay exact regardless of the
// driver's type affinity.
const (
	dateLayout     = "2006-01-02"
	datetimeLayout = time.RFC3339
)

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(task *models.Task) (int64, error) {
	query := `
	INSERT INTO tasks (title, description, due_date, priority, status, assignee_id, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		task.Title,
		task.Description,
		task.DueDate.Format(dateLayout),
		int(task.Priority),
		string(task.Status),
		assigneeArg(task.AssigneeId),
		task.CreatedAt.Format(datetimeLayout),
	)

	if err != nil {
		return 0, fmt.Errorf("create task: %w", err)
	}

	return result.LastInsertId()
}

func (r *TaskRepository) Get(id int64) (models.Task, error) {
	query := `
		SELECT id, title, description, due_date, priority, status, assignee_id, created_at
		FROM tasks WHERE id = ?
	`

	task, err := scanTask(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("%w: task %d", models.ErrNotFound, id)
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task %d: %w", id, err)
	}

	return task, nil
}

func (r *TaskRepository) Update(task *models.Task) error {
	query := `
		UPDATE tasks SET title = ?, description = ?, due_date = ?, priority = ?, status = ?, assignee_id = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		task.Title,
		task.Description,
		task.DueDate.Format(dateLayout),
		int(task.Priority),
		string(task.Status),
		assigneeArg(task.AssigneeId),
		task.Id,
	)
	if err != nil {
		return fmt.Errorf("update task %d: %w", task.Id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: task %d", models.ErrNotFound, task.Id)
	}

	return nil
}

func (r *TaskRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: task %d", models.ErrNotFound, id)
	}

	return nil
}

// List returns tasks matching the filter in insertion (id) order.
func (r *TaskRepository) List(filter models.TaskFilter) ([]models.Task, error) {
	query := `
		SELECT id, title, description, due_date, priority, status, assignee_id, created_at
		FROM tasks
	`

	var conds []string
	var args []any
	if filter.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.AssigneeId != nil {
		conds = append(conds, "assignee_id = ?")
		args = append(args, *filter.AssigneeId)
	}
	if filter.Priority != nil {
		conds = append(conds, "priority = ?")
		args = append(args, int(*filter.Priority))
	}
	if filter.DueFrom != nil {
		conds = append(conds, "due_date >= ?")
		args = append(args, filter.DueFrom.Format(dateLayout))
	}
	if filter.DueTo != nil {
		conds = append(conds, "due_date <= ?")
		args = append(args, filter.DueTo.Format(dateLayout))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// CountOpenByAssignee counts the member's tasks with status != done.
func (r *TaskRepository) CountOpenByAssignee(memberId int64) (int, error) {
	query := `SELECT COUNT(*) FROM tasks WHERE assignee_id = ? AND status != ?`

	var count int
	err := r.db.QueryRow(query, memberId, string(models.StatusDone)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count open tasks for member %d: %w", memberId, err)
	}

	return count, nil
}

// CountByAssignee counts all tasks referencing the member, any status.
func (r *TaskRepository) CountByAssignee(memberId int64) (int, error) {
	query := `SELECT COUNT(*) FROM tasks WHERE assignee_id = ?`

	var count int
	err := r.db.QueryRow(query, memberId).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count tasks for member %d: %w", memberId, err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var task models.Task
	var due, created string
	var priority int
	var status string
	var assignee sql.NullInt64

	err := row.Scan(
		&task.Id,
		&task.Title,
		&task.Description,
		&due,
		&priority,
		&status,
		&assignee,
		&created,
	)
	if err != nil {
		return models.Task{}, err
	}

	task.DueDate, err = time.Parse(dateLayout, due)
	if err != nil {
		return models.Task{}, fmt.Errorf("parse due date %q: %w", due, err)
	}
	task.CreatedAt, err = time.Parse(datetimeLayout, created)
	if err != nil {
		return models.Task{}, fmt.Errorf("parse created at %q: %w", created, err)
	}
	task.Priority = models.Priority(priority)
	task.Status = models.Status(status)
	if assignee.Valid {
		task.AssigneeId = &assignee.Int64
	}

	return task, nil
}

func assigneeArg(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
