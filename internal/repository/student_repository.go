package repository

import (
	"context"
	"fmt"

	"github.com/MadinaDev2107/Group-Manager/internal/model"
	"github.com/jmoiron/sqlx"
)

type StudentRepository interface {
	FindAll(ctx context.Context, filters []model.Filter) ([]*model.Student, error)
	// Create inserts every student in one transaction; ids are set only on commit.
	Create(ctx context.Context, students ...*model.Student) error
	UpdateWhere(ctx context.Context, student *model.Student, filters []model.Filter) ([]*model.Student, error)
	DeleteWhere(ctx context.Context, filters []model.Filter) (int64, error)
}

type studentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) FindAll(ctx context.Context, filters []model.Filter) ([]*model.Student, error) {
	students := []*model.Student{}
	if model.AnyNoMatch(filters) {
		return students, nil
	}

	where, args, err := buildWhere(model.StudentColumns, filters, 1)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, fullname, age, group_id, status
		FROM students
		WHERE %s
		ORDER BY id ASC
	`, where)

	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, err
	}
	if students == nil {
		students = []*model.Student{}
	}
	return students, nil
}

func (r *studentRepository) Create(ctx context.Context, students ...*model.Student) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ids := make([]int64, len(students))
	for i, student := range students {
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO students (fullname, age, group_id, status)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, student.Fullname, student.Age, student.GroupID, student.Status).Scan(&ids[i])
		if err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	for i := range students {
		students[i].ID = &ids[i]
	}
	return nil
}

func (r *studentRepository) UpdateWhere(ctx context.Context, student *model.Student, filters []model.Filter) ([]*model.Student, error) {
	students := []*model.Student{}
	if model.AnyNoMatch(filters) {
		return students, nil
	}

	where, args, err := buildWhere(model.StudentColumns, filters, 5)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE students SET
			fullname = $1, age = $2, group_id = $3, status = $4, updated_at = NOW()
		WHERE %s
		RETURNING id, fullname, age, group_id, status
	`, where)

	args = append([]interface{}{student.Fullname, student.Age, student.GroupID, student.Status}, args...)
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, err
	}
	if students == nil {
		students = []*model.Student{}
	}
	return students, nil
}

func (r *studentRepository) DeleteWhere(ctx context.Context, filters []model.Filter) (int64, error) {
	if model.AnyNoMatch(filters) {
		return 0, nil
	}

	where, args, err := buildWhere(model.StudentColumns, filters, 1)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM students WHERE %s", where), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

var _ StudentRepository = (*studentRepository)(nil)
