package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/TWRT/task-tracker/internal/models"
)

type MemberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Create(member *models.Member) (int64, error) {
	query := `INSERT INTO members (name, email) VALUES (?, ?)`

	result, err := r.db.Exec(query, member.Name, member.Email)
	if err != nil {
		return 0, fmt.Errorf("create member: %w", err)
	}

	return result.LastInsertId()
}

func (r *MemberRepository) Get(id int64) (models.Member, error) {
	query := `SELECT id, name, email FROM members WHERE id = ?`

	var m models.Member
	err := r.db.QueryRow(query, id).Scan(&m.Id, &m.Name, &m.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Member{}, fmt.Errorf("%w: member %d", models.ErrNotFound, id)
	}
	if err != nil {
		return models.Member{}, fmt.Errorf("get member %d: %w", id, err)
	}

	return m, nil
}

func (r *MemberRepository) GetByName(name string) (models.Member, error) {
	query := `SELECT id, name, email FROM members WHERE name = ?`

	var m models.Member
	err := r.db.QueryRow(query, name).Scan(&m.Id, &m.Name, &m.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Member{}, fmt.Errorf("%w: member %q", models.ErrNotFound, name)
	}
	if err != nil {
		return models.Member{}, fmt.Errorf("get member %q: %w", name, err)
	}

	return m, nil
}

func (r *MemberRepository) List() ([]models.Member, error) {
	query := `SELECT id, name, email FROM members ORDER BY id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.Id, &m.Name, &m.Email); err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

func (r *MemberRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete member %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: member %d", models.ErrNotFound, id)
	}

	return nil
}
