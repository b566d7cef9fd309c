package repository

import (
	"context"
	"fmt"

	"github.com/MadinaDev2107/Group-Manager/internal/model"
	"github.com/jmoiron/sqlx"
)

type GroupRepository interface {
	FindAll(ctx context.Context, filters []model.Filter) ([]*model.Group, error)
	// Create inserts every group in one transaction; ids are set only on commit.
	Create(ctx context.Context, groups ...*model.Group) error
	UpdateWhere(ctx context.Context, group *model.Group, filters []model.Filter) ([]*model.Group, error)
	DeleteWhere(ctx context.Context, filters []model.Filter) (int64, error)
}

type groupRepository struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) FindAll(ctx context.Context, filters []model.Filter) ([]*model.Group, error) {
	groups := []*model.Group{}
	if model.AnyNoMatch(filters) {
		return groups, nil
	}

	where, args, err := buildWhere(model.GroupColumns, filters, 1)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT id, name, status FROM groups WHERE %s ORDER BY id ASC", where)
	if err := r.db.SelectContext(ctx, &groups, query, args...); err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []*model.Group{}
	}
	return groups, nil
}

func (r *groupRepository) Create(ctx context.Context, groups ...*model.Group) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ids := make([]int64, len(groups))
	for i, group := range groups {
		err := tx.QueryRowxContext(ctx,
			"INSERT INTO groups (name, status) VALUES ($1, $2) RETURNING id",
			group.Name, group.Status,
		).Scan(&ids[i])
		if err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	for i := range groups {
		groups[i].ID = &ids[i]
	}
	return nil
}

func (r *groupRepository) UpdateWhere(ctx context.Context, group *model.Group, filters []model.Filter) ([]*model.Group, error) {
	groups := []*model.Group{}
	if model.AnyNoMatch(filters) {
		return groups, nil
	}

	where, args, err := buildWhere(model.GroupColumns, filters, 3)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE groups SET name = $1, status = $2, updated_at = NOW()
		WHERE %s
		RETURNING id, name, status
	`, where)

	args = append([]interface{}{group.Name, group.Status}, args...)
	if err := r.db.SelectContext(ctx, &groups, query, args...); err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []*model.Group{}
	}
	return groups, nil
}

func (r *groupRepository) DeleteWhere(ctx context.Context, filters []model.Filter) (int64, error) {
	if model.AnyNoMatch(filters) {
		return 0, nil
	}

	where, args, err := buildWhere(model.GroupColumns, filters, 1)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM groups WHERE %s", where), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

var _ GroupRepository = (*groupRepository)(nil)
